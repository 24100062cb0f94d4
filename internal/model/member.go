package model

// MemberKind tags a resolved block member.
type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberStringRepresentation
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberStringRepresentation:
		return "string-representation"
	default:
		return "unknown"
	}
}

// Member is a single field of a message or entity. Type is empty for the
// string representation marker. Alias records where the member came from
// (fragment id or own name) and is only used for diagnostics.
type Member struct {
	Type  string
	Name  string
	Alias string
	Kind  MemberKind
}

func NewField(typ, name, alias string) Member {
	return Member{Type: typ, Name: name, Alias: alias, Kind: MemberField}
}

func NewStringRepresentation(name string) Member {
	return Member{Name: name, Alias: name, Kind: MemberStringRepresentation}
}

// IsField reports whether m is a plain field.
func (m Member) IsField() bool { return m.Kind == MemberField }

// Fragment is a reusable (type, name) pair referenced by identifier.
type Fragment struct {
	Type string `json:"type" msgpack:"type"`
	Name string `json:"name" msgpack:"name"`
}

// Member turns the fragment into a field aliased to id.
func (f Fragment) Member(id string) Member {
	return NewField(f.Type, f.Name, id)
}

// Modifier is one declared value of a named modifier slot.
type Modifier struct {
	Name  string `json:"name" msgpack:"name"`
	Value string `json:"value" msgpack:"value"`
}
