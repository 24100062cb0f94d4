package sema

import (
	"fmt"

	"ddd/internal/diag"
	"ddd/internal/source"
)

// ErrorKind classifies a build failure.
type ErrorKind uint8

const (
	KindSyntax ErrorKind = iota + 1
	KindUnknownFragment
	KindUnknownInclude
	KindUndeclaredModifierReference
	KindMultipleStringRepresentations
	KindUnexpectedToken
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindUnknownFragment:
		return "UnknownFragment"
	case KindUnknownInclude:
		return "UnknownInclude"
	case KindUndeclaredModifierReference:
		return "UndeclaredModifierReference"
	case KindMultipleStringRepresentations:
		return "MultipleStringRepresentations"
	case KindUnexpectedToken:
		return "UnexpectedToken"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// Error is the single failure a build can produce. Which of Name, Entity and
// Text are set depends on Kind.
type Error struct {
	Kind   ErrorKind
	Line   uint32
	Span   source.Span
	Name   string // fragment id, include target, modifier or message name
	Entity string // owning entity for modifier references
	Text   string // offending node text for syntax errors
}

// Sentinels for errors.Is. Only Kind is compared.
var (
	ErrSyntax                        = &Error{Kind: KindSyntax}
	ErrUnknownFragment               = &Error{Kind: KindUnknownFragment}
	ErrUnknownInclude                = &Error{Kind: KindUnknownInclude}
	ErrUndeclaredModifierReference   = &Error{Kind: KindUndeclaredModifierReference}
	ErrMultipleStringRepresentations = &Error{Kind: KindMultipleStringRepresentations}
	ErrUnexpectedToken               = &Error{Kind: KindUnexpectedToken}
)

func (e *Error) Error() string {
	return e.Message()
}

// Message is the human readable text without the kind prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case KindSyntax:
		return fmt.Sprintf("line %d: syntax error near %q", e.Line, e.Text)
	case KindUnknownFragment:
		return fmt.Sprintf("line %d: unknown fragment: %s", e.Line, e.Name)
	case KindUnknownInclude:
		return fmt.Sprintf("unknown include '%s'", e.Name)
	case KindUndeclaredModifierReference:
		return fmt.Sprintf("entity '%s' does not have modifier reference: '%s'", e.Entity, e.Name)
	case KindMultipleStringRepresentations:
		return fmt.Sprintf("only one string representation per message (%s)", e.Name)
	case KindUnexpectedToken:
		return fmt.Sprintf("line %d: unexpected token: %s", e.Line, e.Text)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Code maps the error to its diagnostic code.
func (e *Error) Code() diag.Code {
	switch e.Kind {
	case KindSyntax:
		return diag.SynErrorNode
	case KindUnknownFragment:
		return diag.SemaUnknownFragment
	case KindUnknownInclude:
		return diag.SemaUnknownInclude
	case KindUndeclaredModifierReference:
		return diag.SemaUndeclaredModifierReference
	case KindMultipleStringRepresentations:
		return diag.SemaMultipleStringRepresentations
	case KindUnexpectedToken:
		return diag.SemaUnexpectedToken
	default:
		return diag.UnknownCode
	}
}
