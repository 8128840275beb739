package di

import (
	"context"
	"fmt"

	"github.com/sghaida/typereg/typeid"
)

// Component is the type-erased view of a Descriptor.
//
// Only *Descriptor[T] implements Component, so everything registered in a
// Catalog was declared through Provide0..Provide4.
type Component interface {
	Name() string
	Output() typeid.ID
	Dependencies() []typeid.ID

	build(ctx context.Context, c *Container) (AnyHandle, error)
	isNil() bool
}

// Catalog holds descriptors by name so bootstrap code can drive builds from
// data, e.g. a plan file listing component names.
//
// It is intentionally:
// - order preserving (Names reports registration order)
// - passive (it never decides build order)
// - bootstrap only (not safe for concurrent mutation)
type Catalog struct {
	items map[string]Component
	order []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{items: map[string]Component{}}
}

// Register adds components under their names.
//
// Either all components are added or none: a nil component, an empty name, or
// a name that is already registered (or repeated within comps) fails the whole call.
func (cat *Catalog) Register(comps ...Component) error {
	seen := make(map[string]struct{}, len(comps))
	for _, comp := range comps {
		if comp == nil || comp.isNil() {
			return ErrNilDescriptor
		}
		name := comp.Name()
		if name == "" {
			return ErrEmptyComponentName
		}
		if _, ok := cat.items[name]; ok {
			return DuplicateComponentError{Name: name}
		}
		if _, ok := seen[name]; ok {
			return DuplicateComponentError{Name: name}
		}
		seen[name] = struct{}{}
	}

	for _, comp := range comps {
		cat.items[comp.Name()] = comp
		cat.order = append(cat.order, comp.Name())
	}
	return nil
}

// MustRegister is Register for package-level catalogs. It panics on error and
// returns the catalog for chaining.
func (cat *Catalog) MustRegister(comps ...Component) *Catalog {
	if err := cat.Register(comps...); err != nil {
		panic(fmt.Errorf("di: catalog register: %w", err))
	}
	return cat
}

// Lookup returns the component registered under name.
func (cat *Catalog) Lookup(name string) (Component, bool) {
	comp, ok := cat.items[name]
	return comp, ok
}

// Names returns component names in registration order.
func (cat *Catalog) Names() []string {
	out := make([]string, len(cat.order))
	copy(out, cat.order)
	return out
}

// Len returns the number of registered components.
func (cat *Catalog) Len() int { return len(cat.order) }

// BuildPlan builds the named components into c, in exactly the given order.
//
// It stops at the first failure and returns the handles built before it
// together with the error. Unknown names fail with UnknownComponentError.
// The catalog does not reorder names to satisfy dependencies; a plan that
// lists a component before its dependencies fails with MissingDependencyError.
func (cat *Catalog) BuildPlan(ctx context.Context, c *Container, names []string) ([]AnyHandle, error) {
	built := make([]AnyHandle, 0, len(names))
	for _, name := range names {
		comp, ok := cat.items[name]
		if !ok {
			return built, UnknownComponentError{Name: name}
		}
		h, err := comp.build(ctx, c)
		if err != nil {
			return built, err
		}
		built = append(built, h)
	}
	return built, nil
}
