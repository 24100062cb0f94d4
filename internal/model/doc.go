// Package model holds the semantic model of one compiled contract file:
// the Context with its entity stack, and the entities, messages, members,
// fragments and modifiers the builder populates.
//
// The types are plain data. The only behaviour is the bookkeeping needed to
// keep their invariants: ModifierTable replaces lists atomically, Entity copies
// the fragments visible at declaration, Context keeps declaration order.
package model
