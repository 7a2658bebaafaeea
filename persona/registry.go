package persona

import (
	"fmt"
	"math/rand"
	"sort"
)

// RegistryOptions configures a Registry instance.
//
// Use functional options with NewRegistry to override defaults.
type RegistryOptions struct {
	// Catalog is the persona set to load. Defaults to BuiltinCatalog().
	Catalog []Persona
}

// Registry is the static catalog of personas. It is immutable after
// construction and safe for concurrent reads from multiple orchestration
// runs.
type Registry struct {
	byID  map[string]Persona
	order []string // catalog order, kept stable for List/IDs
}

// NewRegistry creates a registry from the builtin catalog or a custom one.
// Duplicate persona ids are rejected.
func NewRegistry(optFns ...func(o *RegistryOptions)) (*Registry, error) {
	opts := RegistryOptions{Catalog: BuiltinCatalog()}
	for _, fn := range optFns {
		fn(&opts)
	}

	r := &Registry{byID: make(map[string]Persona, len(opts.Catalog))}
	for _, p := range opts.Catalog {
		if p.ID == "" || p.DisplayName == "" {
			return nil, fmt.Errorf("persona requires id and display name: %+v", p)
		}
		if _, exists := r.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate persona id: %s", p.ID)
		}
		r.byID[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r, nil
}

// Get returns the persona with the given id.
func (r *Registry) Get(id string) (Persona, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// List returns all personas in catalog order.
func (r *Registry) List() []Persona {
	out := make([]Persona, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// IDs returns all persona ids in catalog order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered personas.
func (r *Registry) Len() int { return len(r.order) }

// Sample returns n distinct persona ids drawn uniformly at random using the
// provided source. n is clamped to the registry size. The result is sorted
// for deterministic comparison in callers that do not care about order.
func (r *Registry) Sample(rng *rand.Rand, n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(r.order) {
		n = len(r.order)
	}
	perm := rng.Perm(len(r.order))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, r.order[idx])
	}
	sort.Strings(out)
	return out
}
