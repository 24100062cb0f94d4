package model

import (
	"slices"
)

// ModifierTable maps a modifier name to its ordered values. Declaring a name
// replaces its whole list; values are never merged.
type ModifierTable struct {
	values map[string][]string
	order  []string
}

func NewModifierTable() *ModifierTable {
	return &ModifierTable{values: make(map[string][]string)}
}

// Declare installs values under name, discarding whatever was there.
func (t *ModifierTable) Declare(name string, values ...string) {
	if _, ok := t.values[name]; !ok {
		t.order = append(t.order, name)
	}
	t.values[name] = slices.Clone(values)
}

// Values returns a copy of the list for name, nil if undeclared.
func (t *ModifierTable) Values(name string) []string {
	return slices.Clone(t.values[name])
}

// Has reports whether name has at least one value.
func (t *ModifierTable) Has(name string) bool {
	return len(t.values[name]) != 0
}

// Names returns declared names in first-declaration order.
func (t *ModifierTable) Names() []string {
	return slices.Clone(t.order)
}

func (t *ModifierTable) Len() int {
	return len(t.order)
}
