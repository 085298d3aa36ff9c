package analysis

import (
	"fmt"
	"sort"
	"sync"
)

// Analysis is the hook a runner drives: Init once, Analyze for every
// event, Finalize once after the last event.
type Analysis interface {
	Name() string
	Init(hs *Histos) error
	Analyze(evt *Event) error
	Finalize() error
}

// Factory creates a fresh, uninitialized analysis instance.
type Factory func() Analysis

var registry = struct {
	sync.RWMutex
	m map[string]Factory
}{
	m: make(map[string]Factory),
}

// Register makes an analysis available by name. It panics if the name is
// already taken or the factory is nil.
func Register(name string, f Factory) {
	registry.Lock()
	defer registry.Unlock()

	if f == nil {
		panic("analysis: nil factory for " + name)
	}
	if _, dup := registry.m[name]; dup {
		panic("analysis: Register called twice for " + name)
	}
	registry.m[name] = f
}

// New returns a new instance of the named analysis.
func New(name string) (Analysis, error) {
	registry.RLock()
	f, ok := registry.m[name]
	registry.RUnlock()

	if !ok {
		return nil, fmt.Errorf("analysis: unknown analysis %q", name)
	}
	return f(), nil
}

// Names lists the registered analyses in lexical order.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()

	names := make([]string, 0, len(registry.m))
	for name := range registry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
