package fuzztests

import (
	"testing"

	"ddd/internal/diag"
	"ddd/internal/lexer"
	"ddd/internal/source"
	"ddd/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.ddd", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for range len(file.Content) + 2 {
			tok := lx.Next()
			if tok.Span.Start < prevEnd {
				t.Fatalf("token %s at %v overlaps previous end %d", tok.Kind, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				return
			}
		}
		t.Fatalf("lexer did not reach EOF within %d tokens", len(file.Content)+2)
	})
}
