package model

import (
	"slices"
)

// Message is one command, event or other keyword declaration.
type Message struct {
	Kind      string
	Name      string
	Modifiers []Modifier
	Members   []Member
	// StringRepresentation is the member name of the display field; empty if unset.
	StringRepresentation string
}

func NewMessage(kind, name string, modifiers []Modifier) *Message {
	return &Message{
		Kind:      kind,
		Name:      name,
		Modifiers: modifiers,
	}
}

func (m *Message) HasStringRepresentation() bool {
	return m.StringRepresentation != ""
}

// HasModifiers reports whether the message was declared with modifier references.
func (m *Message) HasModifiers() bool {
	return len(m.Modifiers) != 0
}

// HasModifier reports whether any attached modifier is called name.
func (m *Message) HasModifier(name string) bool {
	return slices.ContainsFunc(m.Modifiers, func(mod Modifier) bool {
		return mod.Name == name
	})
}

// ModifierValues returns the attached values in attachment order.
func (m *Message) ModifierValues() []string {
	out := make([]string, len(m.Modifiers))
	for i, mod := range m.Modifiers {
		out[i] = mod.Value
	}
	return out
}

// AddMembers appends members in order.
func (m *Message) AddMembers(members ...Member) {
	m.Members = append(m.Members, members...)
}
