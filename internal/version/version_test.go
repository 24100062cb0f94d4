package version

import (
	"strings"
	"testing"
)

func TestColoredPlain(t *testing.T) {
	if got := Colored(false); got != Version {
		t.Errorf("Colored(false) = %q, want %q", got, Version)
	}
}

func TestColoredKeepsSuffix(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3-rc1"
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Errorf("Colored(true) = %q", got)
	}

	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Errorf("non-semver version altered: %q", got)
	}
}

func TestInfoOptionalFields(t *testing.T) {
	origCommit, origMsg, origDate := GitCommit, GitMessage, BuildDate
	t.Cleanup(func() { GitCommit, GitMessage, BuildDate = origCommit, origMsg, origDate })

	GitCommit, GitMessage, BuildDate = "", "", ""
	if got := Info(false); got != "ddd "+Version+"\n" {
		t.Errorf("Info = %q", got)
	}

	GitCommit, GitMessage, BuildDate = "abc123", "fix parser", "2024-01-15T10:30:00Z"
	got := Info(false)
	for _, want := range []string{"commit: abc123 (fix parser)", "built:  2024-01-15T10:30:00Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("Info lacks %q:\n%s", want, got)
		}
	}
}
