package ui

import (
	"strings"
	"testing"

	"ddd/internal/buildpipeline"
)

func TestApplyEventTracksFiles(t *testing.T) {
	m := NewProgressModel("build", []string{"a.ddd"}, nil).(*progressModel)

	events := []buildpipeline.Event{
		{Stage: buildpipeline.StageDiscover, Status: buildpipeline.StatusWorking},
		{File: "a.ddd", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking},
		{File: "b.ddd", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusQueued},
		{File: "a.ddd", Stage: buildpipeline.StageRender, Status: buildpipeline.StatusDone},
		{File: "a.ddd", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusSkipped},
		{File: "b.ddd", Stage: buildpipeline.StageBuild, Status: buildpipeline.StatusError},
		// late events must not revive a finished file
		{File: "b.ddd", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusWorking},
	}
	for _, ev := range events {
		m.applyEvent(ev)
	}

	if m.stageLabel != "discovering" {
		t.Errorf("stage label = %q", m.stageLabel)
	}
	if len(m.items) != 2 {
		t.Fatalf("items = %+v", m.items)
	}
	want := map[string]string{"a.ddd": "unchanged", "b.ddd": "error"}
	for _, it := range m.items {
		if it.status != want[it.path] || !it.finished {
			t.Errorf("%s: status=%q finished=%v", it.path, it.status, it.finished)
		}
	}

	view := m.View()
	if !strings.Contains(view, "a.ddd") || !strings.Contains(view, "error") {
		t.Errorf("view lacks file rows:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"averyverylongname", 10, "aver..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
