package render

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

const (
	EngineComposite  = "composite"
	EngineGoTemplate = "gotemplate"
)

// Engine compiles template text for one slot.
type Engine interface {
	Name() string
	Compile(slot Slot, text string) (Template, error)
}

// Template is a compiled slot template.
type Template interface {
	Execute(args Args) (string, error)
}

var (
	enginesMu sync.RWMutex
	engines   = map[string]Engine{}
)

// RegisterEngine makes e available by name. Registering a name twice replaces
// the earlier engine.
func RegisterEngine(e Engine) {
	enginesMu.Lock()
	defer enginesMu.Unlock()
	engines[e.Name()] = e
}

// LookupEngine returns the engine called name; empty selects composite.
func LookupEngine(name string) (Engine, error) {
	if name == "" {
		name = EngineComposite
	}
	enginesMu.RLock()
	defer enginesMu.RUnlock()
	if e, ok := engines[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("unknown template engine %q (available: %v)", name, engineNamesLocked())
}

// EngineNames lists registered engines alphabetically.
func EngineNames() []string {
	enginesMu.RLock()
	defer enginesMu.RUnlock()
	return engineNamesLocked()
}

func engineNamesLocked() []string {
	return slices.Sorted(maps.Keys(engines))
}

func init() {
	RegisterEngine(compositeEngine{})
	RegisterEngine(goTemplateEngine{})
}
