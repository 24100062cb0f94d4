// Package token defines lexical token kinds and trivia for the ddd contract notation.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - String literals keep their quotes in Text; the Builder records them verbatim.
//   - Message keywords (command, event, ...) and `ref` are identifiers.
//     They are recognized by the parser and the semantic layer, not the lexer.
package token
