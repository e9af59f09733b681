package properties

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"pctl/logic"
)

// Property is one parsed formula, optionally carrying a user-facing name.
type Property struct {
	ID      uint32
	Name    string
	Formula logic.Formula
}

// Registry holds the properties of one model-checking run. Names, when
// present, are unique; unnamed properties are allowed and only reachable
// through All.
type Registry struct {
	mu    sync.Mutex
	props []*Property
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(name string, f logic.Formula) (*Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name != "" && r.hasProperty(name) {
		return nil, fmt.Errorf("property with name '%s' already exists", name)
	}

	p := &Property{
		ID:      uuid.New().ID(),
		Name:    name,
		Formula: f,
	}

	r.props = append(r.props, p)

	return p, nil
}

func (r *Registry) Get(name string) *Property {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return nil
	}

	for _, p := range r.props {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// All returns the properties in insertion order.
func (r *Registry) All() []*Property {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Property, len(r.props))
	copy(out, r.props)

	return out
}

func (r *Registry) hasProperty(name string) bool {
	for _, p := range r.props {
		if p.Name == name {
			return true
		}
	}

	return false
}
