package diagfmt

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"

	"ddd/internal/model"
)

// FormatModelPretty prints the semantic model as an indented outline.
func FormatModelPretty(w io.Writer, ctx *model.Context, useColor bool) error {
	head := color.New(color.FgCyan, color.Bold)
	name := color.New(color.Bold)
	for _, c := range []*color.Color{head, name} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", head.Sprint("namespace"), ctx.Namespace)
	if ctx.Extern != "" {
		fmt.Fprintf(&b, "%s %s\n", head.Sprint("extern"), ctx.Extern)
	}
	for _, u := range ctx.Usings {
		fmt.Fprintf(&b, "%s %s\n", head.Sprint("using"), u)
	}
	for _, id := range slices.Sorted(maps.Keys(ctx.Fragments)) {
		f := ctx.Fragments[id]
		fmt.Fprintf(&b, "%s %s = %s %s\n", head.Sprint("fragment"), id, f.Type, f.Name)
	}

	for _, e := range append([]*model.Entity{ctx.Root()}, ctx.Entities()...) {
		if e == ctx.Root() && e.Modifiers.Len() == 0 && len(e.Messages) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", head.Sprint("entity"), name.Sprint(e.Name))
		for _, m := range e.FixedMembers {
			fmt.Fprintf(&b, "  fixed %s %s\n", m.Type, m.Name)
		}
		for _, mod := range e.Modifiers.Names() {
			fmt.Fprintf(&b, "  modifier %s = %s\n", mod, strings.Join(e.Modifiers.Values(mod), ", "))
		}
		for _, m := range e.Messages {
			fmt.Fprintf(&b, "  %s %s\n", m.Kind, m.Name)
		}
	}

	for _, m := range ctx.Contracts {
		fmt.Fprintf(&b, "%s %s", head.Sprint(m.Kind), name.Sprint(m.Name))
		if m.HasModifiers() {
			fmt.Fprintf(&b, " (%s)", strings.Join(m.ModifierValues(), ", "))
		}
		b.WriteByte('\n')
		for _, mem := range m.Members {
			fmt.Fprintf(&b, "  %s %s", mem.Type, mem.Name)
			if mem.Alias != "" && mem.Alias != mem.Name {
				fmt.Fprintf(&b, " <- %s", mem.Alias)
			}
			b.WriteByte('\n')
		}
		if m.HasStringRepresentation() {
			fmt.Fprintf(&b, "  display %s\n", m.StringRepresentation)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
