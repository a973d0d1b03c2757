package effect

import (
	"fmt"
	"sort"
)

// Registry is the immutable effect catalog for one hunter variant.
// It is read-only after construction and safe for concurrent lookups.
type Registry struct {
	variant Variant
	effects map[string]Effect
}

// ForVariant returns the shared registry for the given variant.
//
// Postcondition: the returned registry resolves exactly the effect IDs of
// that variant; IDs belonging to any other variant miss.
func ForVariant(v Variant) (*Registry, error) {
	switch v {
	case Borge:
		return borgeRegistry, nil
	case Ozzy:
		return ozzyRegistry, nil
	default:
		return nil, fmt.Errorf("effect: unknown hunter variant %q", v)
	}
}

// Variant returns the variant this registry belongs to.
func (r *Registry) Variant() Variant { return r.variant }

// Get returns the effect definition for id.
func (r *Registry) Get(id string) (Effect, error) {
	e, ok := r.effects[id]
	if !ok {
		return Effect{}, &UnknownEffectError{Variant: r.variant, ID: id}
	}
	return e, nil
}

// Magnitude resolves the magnitude of effect id at the given invested
// points.
//
// Precondition: points >= 0.
// Postcondition: returns an UnknownEffectError if id is not in this
// variant's catalog.
func (r *Registry) Magnitude(id string, points int) (float64, error) {
	e, ok := r.effects[id]
	if !ok {
		return 0, &UnknownEffectError{Variant: r.variant, ID: id}
	}
	return e.Magnitude(points), nil
}

// Has reports whether id resolves in this registry.
func (r *Registry) Has(id string) bool {
	_, ok := r.effects[id]
	return ok
}

// IDs returns the sorted effect identifiers of this variant.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.effects))
	for id := range r.effects {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// newRegistry builds a registry from a list of effects.
// Panics on a duplicate ID: catalogs are package data, a duplicate is a
// programming error, not an input error.
func newRegistry(v Variant, effects []Effect) *Registry {
	m := make(map[string]Effect, len(effects))
	for _, e := range effects {
		if _, dup := m[e.ID]; dup {
			panic("effect: duplicate effect ID " + e.ID + " in " + string(v) + " catalog")
		}
		m[e.ID] = e
	}
	return &Registry{variant: v, effects: m}
}
