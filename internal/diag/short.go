package diag

import (
	"fmt"
	"strings"

	"ddd/internal/source"
)

// FormatShort renders diagnostics one per line:
//
//	ERROR SEM3001 path/to/file.ddd:3:5 unknown fragment 'id'
//
// The order is the bag order; call Bag.Sort first for stable output.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	var b strings.Builder
	write := func(sev, code string, sp source.Span, msg string) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		path, line, col := locate(fs, sp)
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", sev, code, path, line, col, sanitizeMessage(msg))
	}
	for _, d := range diags {
		write(d.Severity.String(), d.Code.ID(), d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			write("NOTE", d.Code.ID(), n.Span, n.Msg)
		}
	}
	return b.String()
}

func locate(fs *source.FileSet, sp source.Span) (path string, line, col uint32) {
	if fs == nil {
		return "<unknown>", 0, 0
	}
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>", 0, 0
	}
	pos := f.Position(sp.Start)
	return f.Path, pos.Line, pos.Col
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	return strings.ReplaceAll(msg, "\n", " ")
}
