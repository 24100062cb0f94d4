package render

import (
	"fmt"
	"strconv"
	"strings"

	"ddd/internal/model"
)

// Renderer holds compiled templates and can render any number of contexts.
// It is safe for concurrent use: rendering keeps all state on the stack.
type Renderer struct {
	cfg       Templates
	engine    Engine
	templates map[Slot]Template
}

// New compiles every slot of cfg with the configured engine and dry-runs each
// template so that configuration errors surface before any model is rendered.
func New(cfg Templates) (*Renderer, error) {
	engine, err := LookupEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	return NewWithEngine(cfg, engine)
}

// NewWithEngine is New with an explicit engine, ignoring cfg.Engine.
func NewWithEngine(cfg Templates, engine Engine) (*Renderer, error) {
	r := &Renderer{
		cfg:       cfg,
		engine:    engine,
		templates: make(map[Slot]Template),
	}
	for _, def := range cfg.slots() {
		if def.text == "" {
			continue
		}
		tmpl, err := engine.Compile(def.slot, def.text)
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.Execute(def.proto); err != nil {
			return nil, err
		}
		r.templates[def.slot] = tmpl
	}
	return r, nil
}

// Render is New followed by Renderer.Render.
func Render(ctx *model.Context, cfg Templates) (string, error) {
	r, err := New(cfg)
	if err != nil {
		return "", err
	}
	return r.Render(ctx)
}

// Engine returns the engine the renderer was built with.
func (r *Renderer) Engine() Engine { return r.engine }

// Render emits, in order: header, usings, namespace open, one interface per
// entity owning qualifying messages, one class per message, namespace close.
// The same context always renders to the same bytes.
func (r *Renderer) Render(ctx *model.Context) (string, error) {
	w := &writer{indent: r.cfg.Indent}

	if err := r.emit(w, 0, SlotHeader, noArgs{}); err != nil {
		return "", err
	}
	if w.Len() > 0 {
		w.blank()
	}

	if len(ctx.Usings) > 0 && r.has(SlotUsing) {
		for _, u := range ctx.Usings {
			if err := r.emit(w, 0, SlotUsing, NameArgs{Name: u}); err != nil {
				return "", err
			}
		}
		w.blank()
	}

	depth := 0
	inNamespace := ctx.Namespace != "" && r.has(SlotNamespaceOpen)
	if inNamespace {
		if err := r.emit(w, 0, SlotNamespaceOpen, NameArgs{Name: ctx.Namespace}); err != nil {
			return "", err
		}
		depth = 1
	}

	first := true
	separate := func() {
		if !first {
			w.blank()
		}
		first = false
	}

	for _, entity := range ctx.Entities() {
		qualifying := r.qualifying(entity)
		if len(qualifying) == 0 {
			continue
		}
		separate()
		if err := r.renderInterface(w, depth, entity, qualifying); err != nil {
			return "", err
		}
	}

	namespace := classNamespace(ctx)
	for _, msg := range ctx.Contracts {
		separate()
		if err := r.renderClass(w, depth, msg, namespace); err != nil {
			return "", err
		}
	}

	if inNamespace {
		if err := r.emit(w, 0, SlotNamespaceClose, noArgs{}); err != nil {
			return "", err
		}
	}
	return w.String(), nil
}

// qualifying returns the messages of e that belong to its aggregate interface.
func (r *Renderer) qualifying(e *model.Entity) []*model.Message {
	marker := r.cfg.InterfaceModifier
	if marker == "" || !r.has(SlotInterfaceName) {
		return nil
	}
	var out []*model.Message
	for _, m := range e.Messages {
		if (marker == AnyModifier && m.HasModifiers()) || m.HasModifier(marker) {
			out = append(out, m)
		}
	}
	return out
}

func (r *Renderer) renderInterface(w *writer, depth int, e *model.Entity, msgs []*model.Message) error {
	if err := r.emit(w, depth, SlotInterfaceName, NameArgs{Name: e.Name}); err != nil {
		return err
	}
	if err := r.emit(w, depth, SlotBlockOpen, noArgs{}); err != nil {
		return err
	}
	for _, m := range msgs {
		if err := r.emit(w, depth+1, SlotInterfaceMember, InterfaceMemberArgs{Name: m.Name, Kind: m.Kind}); err != nil {
			return err
		}
	}
	return r.emit(w, depth, SlotBlockClose, noArgs{})
}

func (r *Renderer) renderClass(w *writer, depth int, m *model.Message, namespace string) error {
	bases := strings.Join(m.ModifierValues(), ", ")
	head, err := r.execute(SlotClassName, ClassArgs{
		Name:      m.Name,
		Namespace: namespace,
		Kind:      m.Kind,
		Modifiers: bases,
	})
	if err != nil {
		return err
	}
	if bases != "" {
		tail, err := r.execute(SlotClassBase, BaseArgs{Bases: bases})
		if err != nil {
			return err
		}
		head += tail
	}
	if r.has(SlotClassName) {
		w.lines(depth, head)
	}
	if err := r.emit(w, depth, SlotBlockOpen, noArgs{}); err != nil {
		return err
	}
	for i, member := range m.Members {
		if err := r.emit(w, depth+1, SlotMember, MemberArgs{Ordinal: i + 1, Type: member.Type, Name: member.Name}); err != nil {
			return err
		}
	}
	if m.HasStringRepresentation() {
		if err := r.emit(w, depth+1, SlotStringRepresentation, NameArgs{Name: m.StringRepresentation}); err != nil {
			return err
		}
	}
	return r.emit(w, depth, SlotBlockClose, noArgs{})
}

// emit executes slot and writes its lines at depth. Unset slots emit nothing.
func (r *Renderer) emit(w *writer, depth int, slot Slot, args Args) error {
	if !r.has(slot) {
		return nil
	}
	text, err := r.execute(slot, args)
	if err != nil {
		return err
	}
	w.lines(depth, text)
	return nil
}

// execute runs slot without writing; unset slots yield "".
func (r *Renderer) execute(slot Slot, args Args) (string, error) {
	tmpl, ok := r.templates[slot]
	if !ok {
		return "", nil
	}
	text, err := tmpl.Execute(args)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", slot, err)
	}
	return text, nil
}

func (r *Renderer) has(slot Slot) bool {
	_, ok := r.templates[slot]
	return ok
}

// classNamespace is the extern marker verbatim when set, else the quoted namespace.
func classNamespace(ctx *model.Context) string {
	if ctx.Extern != "" {
		return ctx.Extern
	}
	return strconv.Quote(ctx.Namespace)
}

type writer struct {
	strings.Builder
	indent string
}

// lines writes text line by line, indenting every non-empty line.
func (w *writer) lines(depth int, text string) {
	for line := range strings.SplitSeq(text, "\n") {
		if line != "" {
			for range depth {
				w.WriteString(w.indent)
			}
			w.WriteString(line)
		}
		w.WriteByte('\n')
	}
}

func (w *writer) blank() {
	w.WriteByte('\n')
}
