package persona

import (
	"errors"
	"fmt"
)

// ErrUnknownPersona is returned when a name is not present in the registry.
var ErrUnknownPersona = errors.New("unknown persona")

// Persona is an immutable named system-prompt template.
type Persona struct {
	Name         string `yaml:"name" json:"name"`
	SystemPrompt string `yaml:"system" json:"system"`
	DisplayLabel string `yaml:"label" json:"label"`
}

// Registry maps persona names to personas and preserves definition order.
type Registry struct {
	byName map[string]Persona
	order  []string
}

// NewRegistry builds a registry from personas in definition order.
// Later duplicates replace earlier entries without changing their position,
// which is what lets an overlay swap a built-in prompt in place.
func NewRegistry(personas ...Persona) *Registry {
	r := &Registry{byName: make(map[string]Persona, len(personas))}
	for _, p := range personas {
		if p.DisplayLabel == "" {
			p.DisplayLabel = p.Name
		}
		if _, seen := r.byName[p.Name]; !seen {
			r.order = append(r.order, p.Name)
		}
		r.byName[p.Name] = p
	}
	return r
}

// Get returns the persona for name.
func (r *Registry) Get(name string) (Persona, error) {
	p, ok := r.byName[name]
	if !ok {
		return Persona{}, fmt.Errorf("%w: %q", ErrUnknownPersona, name)
	}
	return p, nil
}

// List returns all personas in definition order.
func (r *Registry) List() []Persona {
	out := make([]Persona, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len reports the number of registered personas.
func (r *Registry) Len() int { return len(r.order) }
