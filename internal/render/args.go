package render

// Args is the data handed to one template execution. Positional engines use
// Positional; named engines use the struct fields directly.
type Args interface {
	Positional() []any
}

type noArgs struct{}

func (noArgs) Positional() []any { return nil }

// NameArgs feeds slots that take a single name: interface name, using,
// namespace open and string representation.
type NameArgs struct {
	Name string
}

func (a NameArgs) Positional() []any { return []any{a.Name} }

type InterfaceMemberArgs struct {
	Name string
	Kind string
}

func (a InterfaceMemberArgs) Positional() []any { return []any{a.Name, a.Kind} }

type ClassArgs struct {
	Name      string
	Namespace string
	Kind      string
	Modifiers string
}

func (a ClassArgs) Positional() []any { return []any{a.Name, a.Namespace, a.Kind, a.Modifiers} }

// BaseArgs feeds ClassBase.
type BaseArgs struct {
	Bases string
}

func (a BaseArgs) Positional() []any { return []any{a.Bases} }

type MemberArgs struct {
	Ordinal int
	Type    string
	Name    string
}

func (a MemberArgs) Positional() []any { return []any{a.Ordinal, a.Type, a.Name} }
