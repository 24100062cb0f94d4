package observ

import (
	"strings"
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	idx := tm.Begin("parse")
	tm.End(idx, "12 nodes")
	tm.Track("render", func() {})
	tm.End(99, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.TotalMS != 2 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.Phases[0].Note != "12 nodes" {
		t.Errorf("note = %q", rep.Phases[0].Note)
	}
	if tm.Duration("render") != time.Millisecond || tm.Duration("missing") != 0 {
		t.Errorf("durations = %v", tm.Phases())
	}
	sum := tm.Summary()
	for _, want := range []string{"parse", "render", "// 12 nodes", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if rep := NewTimer().Report(); rep.Phases != nil || rep.TotalMS != 0 {
		t.Errorf("empty report = %+v", rep)
	}
}
