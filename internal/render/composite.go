package render

import (
	"fmt"
	"strconv"
	"strings"
)

// compositeEngine implements .NET composite formatting: {N} is replaced by
// the N-th argument, {{ and }} are literal braces.
type compositeEngine struct{}

func (compositeEngine) Name() string { return EngineComposite }

func (compositeEngine) Compile(slot Slot, text string) (Template, error) {
	parts, err := parseComposite(text)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", slot, err)
	}
	return compositeTemplate{slot: slot, parts: parts}, nil
}

// part is either literal text or, when index >= 0, an argument reference.
type part struct {
	lit   string
	index int
}

type compositeTemplate struct {
	slot  Slot
	parts []part
}

func (t compositeTemplate) Execute(args Args) (string, error) {
	values := args.Positional()
	var b strings.Builder
	for _, p := range t.parts {
		if p.index < 0 {
			b.WriteString(p.lit)
			continue
		}
		if p.index >= len(values) {
			return "", fmt.Errorf("template %s: index {%d} out of range, slot takes %d argument(s)", t.slot, p.index, len(values))
		}
		fmt.Fprint(&b, values[p.index])
	}
	return b.String(), nil
}

// Format is a one-shot composite format, mostly for callers outside the renderer.
func Format(format string, args ...any) (string, error) {
	parts, err := parseComposite(format)
	if err != nil {
		return "", err
	}
	return compositeTemplate{slot: "format", parts: parts}.Execute(positional(args))
}

type positional []any

func (p positional) Positional() []any { return p }

func parseComposite(text string) ([]part, error) {
	var (
		parts []part
		lit   strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, part{lit: lit.String(), index: -1})
			lit.Reset()
		}
	}
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch ch {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unclosed '{' at offset %d", i)
			}
			spec := text[i+1 : i+1+end]
			n, err := strconv.Atoi(strings.TrimSpace(spec))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid placeholder {%s} at offset %d", spec, i)
			}
			flush()
			parts = append(parts, part{index: n})
			i += end + 1
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("unescaped '}' at offset %d", i)
		default:
			lit.WriteByte(ch)
		}
	}
	flush()
	return parts, nil
}
