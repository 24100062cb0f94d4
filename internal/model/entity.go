package model

import (
	"maps"
)

// RootEntityName names the implicit entity that owns top-level declarations.
const RootEntityName = "default"

// Entity is a named lexical scope.
type Entity struct {
	Name         string
	Fragments    map[string]Fragment
	FixedMembers []Member
	Messages     []*Message
	Modifiers    *ModifierTable
}

// NewEntity creates an entity whose fragment map starts as a copy of the
// fragments visible in parent. parent may be nil.
func NewEntity(name string, parent *Entity) *Entity {
	e := &Entity{
		Name:      name,
		Fragments: make(map[string]Fragment),
		Modifiers: NewModifierTable(),
	}
	if parent != nil {
		maps.Copy(e.Fragments, parent.Fragments)
	}
	return e
}

// ModifiedMessages returns the messages declared with at least one modifier.
func (e *Entity) ModifiedMessages() []*Message {
	var out []*Message
	for _, m := range e.Messages {
		if m.HasModifiers() {
			out = append(out, m)
		}
	}
	return out
}
