package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// StringLit represents a double-quoted string literal.
	StringLit

	// KwNamespace represents the 'namespace' keyword.
	KwNamespace // namespace
	// KwExtern represents the 'extern' keyword.
	KwExtern // extern
	// KwUsing represents the 'using' keyword.
	KwUsing // using
	// KwFragment represents the 'fragment' keyword.
	KwFragment // fragment
	// KwModifier represents the 'modifier' keyword.
	KwModifier // modifier
	// KwEntity represents the 'entity' keyword.
	KwEntity // entity
	// KwDisplay represents the 'display' keyword (string representation marker).
	KwDisplay // display

	Assign    // =
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Question  // ?
	Bang      // !
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Lt        // <
	Gt        // >
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	StringLit:   "StringLit",
	KwNamespace: "KwNamespace",
	KwExtern:    "KwExtern",
	KwUsing:     "KwUsing",
	KwFragment:  "KwFragment",
	KwModifier:  "KwModifier",
	KwEntity:    "KwEntity",
	KwDisplay:   "KwDisplay",
	Assign:      "Assign",
	Semicolon:   "Semicolon",
	Comma:       "Comma",
	Dot:         "Dot",
	Question:    "Question",
	Bang:        "Bang",
	LParen:      "LParen",
	RParen:      "RParen",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	Lt:          "Lt",
	Gt:          "Gt",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
