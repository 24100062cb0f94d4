package model

// Context accumulates the state of one compile.
type Context struct {
	Namespace string
	Extern    string
	Usings    []string
	Fragments map[string]Fragment
	Contracts []*Message

	stack []*Entity
}

// NewContext returns a context with the root entity already pushed.
func NewContext() *Context {
	c := &Context{
		Fragments: make(map[string]Fragment),
	}
	c.stack = append(c.stack, NewEntity(RootEntityName, nil))
	return c
}

// CurrentEntity is the most recently pushed entity.
func (c *Context) CurrentEntity() *Entity {
	return c.stack[len(c.stack)-1]
}

// Root returns the implicit entity created with the context.
func (c *Context) Root() *Entity {
	return c.stack[0]
}

// PushEntity makes e current. Entities are never popped.
func (c *Context) PushEntity(e *Entity) {
	c.stack = append(c.stack, e)
}

// Entities returns declared entities in push order, root excluded.
func (c *Context) Entities() []*Entity {
	out := make([]*Entity, len(c.stack)-1)
	copy(out, c.stack[1:])
	return out
}

// DeclareFragment stores f under id globally and in the current entity.
func (c *Context) DeclareFragment(id string, f Fragment) {
	c.Fragments[id] = f
	c.CurrentEntity().Fragments[id] = f
}

// AddContract appends m to the global sequence and to the current entity.
func (c *Context) AddContract(m *Message) {
	c.Contracts = append(c.Contracts, m)
	e := c.CurrentEntity()
	e.Messages = append(e.Messages, m)
}

// MessagesNamed returns every declared message called name.
func (c *Context) MessagesNamed(name string) []*Message {
	var out []*Message
	for _, m := range c.Contracts {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}
