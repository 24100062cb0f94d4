package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"ddd/internal/model"
)

// ExportFormat selects the model serialisation.
type ExportFormat string

const (
	ExportJSON    ExportFormat = "json"
	ExportMsgpack ExportFormat = "msgpack"
)

// ParseExportFormat accepts a format name case-insensitively.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(s)); f {
	case ExportJSON, ExportMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("unknown model format %q (want json or msgpack)", s)
	}
}

// ModelSnapshot is the serialisable view of a built Context.
type ModelSnapshot struct {
	Namespace string                    `json:"namespace,omitempty" msgpack:"namespace,omitempty"`
	Extern    string                    `json:"extern,omitempty" msgpack:"extern,omitempty"`
	Usings    []string                  `json:"usings,omitempty" msgpack:"usings,omitempty"`
	Fragments map[string]model.Fragment `json:"fragments,omitempty" msgpack:"fragments,omitempty"`
	Entities  []EntitySnapshot          `json:"entities,omitempty" msgpack:"entities,omitempty"`
	Contracts []MessageSnapshot         `json:"contracts" msgpack:"contracts"`
}

type EntitySnapshot struct {
	Name         string             `json:"name" msgpack:"name"`
	FixedMembers []MemberSnapshot   `json:"fixed_members,omitempty" msgpack:"fixed_members,omitempty"`
	Modifiers    []ModifierSnapshot `json:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
	Messages     []string           `json:"messages,omitempty" msgpack:"messages,omitempty"`
}

type ModifierSnapshot struct {
	Name   string   `json:"name" msgpack:"name"`
	Values []string `json:"values" msgpack:"values"`
}

type MessageSnapshot struct {
	Kind                 string           `json:"kind" msgpack:"kind"`
	Name                 string           `json:"name" msgpack:"name"`
	Modifiers            []model.Modifier `json:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
	Members              []MemberSnapshot `json:"members" msgpack:"members"`
	StringRepresentation string           `json:"string_representation,omitempty" msgpack:"string_representation,omitempty"`
}

// MemberSnapshot spells the member kind out instead of its numeric tag.
type MemberSnapshot struct {
	Kind  string `json:"kind" msgpack:"kind"`
	Type  string `json:"type,omitempty" msgpack:"type,omitempty"`
	Name  string `json:"name" msgpack:"name"`
	Alias string `json:"alias,omitempty" msgpack:"alias,omitempty"`
}

// Snapshot copies ctx into its serialisable form. The root entity is
// included only when it declared modifiers or owns messages.
func Snapshot(ctx *model.Context) ModelSnapshot {
	snap := ModelSnapshot{
		Namespace: ctx.Namespace,
		Extern:    ctx.Extern,
		Usings:    ctx.Usings,
		Fragments: ctx.Fragments,
		Contracts: make([]MessageSnapshot, 0, len(ctx.Contracts)),
	}
	entities := ctx.Entities()
	if root := ctx.Root(); root.Modifiers.Len() > 0 || len(root.Messages) > 0 {
		entities = append([]*model.Entity{root}, entities...)
	}
	for _, e := range entities {
		snap.Entities = append(snap.Entities, snapshotEntity(e))
	}
	for _, m := range ctx.Contracts {
		snap.Contracts = append(snap.Contracts, snapshotMessage(m))
	}
	return snap
}

func snapshotEntity(e *model.Entity) EntitySnapshot {
	es := EntitySnapshot{
		Name:         e.Name,
		FixedMembers: snapshotMembers(e.FixedMembers),
	}
	for _, name := range e.Modifiers.Names() {
		es.Modifiers = append(es.Modifiers, ModifierSnapshot{Name: name, Values: e.Modifiers.Values(name)})
	}
	for _, m := range e.Messages {
		es.Messages = append(es.Messages, m.Name)
	}
	return es
}

func snapshotMessage(m *model.Message) MessageSnapshot {
	return MessageSnapshot{
		Kind:                 m.Kind,
		Name:                 m.Name,
		Modifiers:            m.Modifiers,
		Members:              snapshotMembers(m.Members),
		StringRepresentation: m.StringRepresentation,
	}
}

func snapshotMembers(members []model.Member) []MemberSnapshot {
	if len(members) == 0 {
		return nil
	}
	out := make([]MemberSnapshot, len(members))
	for i, m := range members {
		out[i] = MemberSnapshot{Kind: m.Kind.String(), Type: m.Type, Name: m.Name, Alias: m.Alias}
	}
	return out
}

// ExportModel writes ctx to w in the given format. Both encodings are
// deterministic: JSON sorts map keys itself, msgpack is told to.
func ExportModel(w io.Writer, ctx *model.Context, format ExportFormat) error {
	snap := Snapshot(ctx)
	switch format {
	case ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
	case ExportMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
	default:
		return fmt.Errorf("unknown model format %q", format)
	}
	return nil
}

// DecodeModelSnapshot reads a msgpack snapshot written by ExportModel.
func DecodeModelSnapshot(r io.Reader) (ModelSnapshot, error) {
	var snap ModelSnapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return ModelSnapshot{}, fmt.Errorf("failed to decode model: %w", err)
	}
	return snap, nil
}
