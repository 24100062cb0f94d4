package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ddd/internal/diag"
	"ddd/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	loc, gutter, caret    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.loc, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettyOne(w, p, d, fs, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, p palette, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	var b strings.Builder
	f := fs.Get(d.Primary.File)
	if f != nil {
		start, _ := fs.Resolve(d.Primary)
		b.WriteString(p.loc.Sprintf("%s:%d:%d:", displayPath(f.Path, opts.PathMode, opts.BaseDir), start.Line, start.Col))
		b.WriteByte(' ')
	}
	b.WriteString(p.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()))
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteByte('\n')

	if f != nil {
		writeSnippet(&b, p, f, fs, d.Primary, int(opts.Context))
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			b.WriteString(p.note.Sprint("note"))
			if nf := fs.Get(n.Span.File); nf != nil {
				pos, _ := fs.Resolve(n.Span)
				fmt.Fprintf(&b, " %s:%d:%d", displayPath(nf.Path, opts.PathMode, opts.BaseDir), pos.Line, pos.Col)
			}
			b.WriteString(": ")
			b.WriteString(n.Msg)
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSnippet(b *strings.Builder, p palette, f *source.File, fs *source.FileSet, sp source.Span, context int) {
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	first := max(int(start.Line)-context, 1)
	last := int(start.Line) + context
	width := len(strconv.Itoa(last))

	for ln := first; ln <= last; ln++ {
		if ln > int(start.Line) && ln > len(f.LineIdx)+1 {
			break
		}
		text := f.GetLine(uint32(ln)) // #nosec G115 -- line numbers come from uint32
		fmt.Fprintf(b, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), text)
		if ln != int(start.Line) {
			continue
		}
		// подчёркивание считаем в ширине колонок, а не в байтах
		col := int(start.Col) - 1
		col = min(col, len(text))
		pad := runewidth.StringWidth(text[:col])
		n := 1
		if end.Line == start.Line && end.Col > start.Col {
			stop := min(int(end.Col)-1, len(text))
			n = max(runewidth.StringWidth(text[col:stop]), 1)
		}
		fmt.Fprintf(b, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), p.caret.Sprint("^"+strings.Repeat("~", n-1)))
	}
}
