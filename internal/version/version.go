package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the ddd CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored returns Version with major, minor and patch painted separately.
// Anything that is not a dotted triple is returned unchanged.
func Colored(enabled bool) string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if !enabled || len(parts) != 3 {
		return Version
	}
	paint := func(c *color.Color, s string) string {
		c.EnableColor()
		return c.Sprint(s)
	}
	out := paint(versionMajorColor, parts[0]) + "." + paint(versionMinorColor, parts[1]) + "." + paint(versionPatchColor, parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Info is the multi-line text printed by `ddd version`.
func Info(useColor bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ddd %s\n", Colored(useColor))
	if GitCommit != "" {
		fmt.Fprintf(&b, "commit: %s", GitCommit)
		if GitMessage != "" {
			fmt.Fprintf(&b, " (%s)", GitMessage)
		}
		b.WriteByte('\n')
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "built:  %s\n", BuildDate)
	}
	return b.String()
}
