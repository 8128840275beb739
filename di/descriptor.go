package di

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sghaida/typereg/hmap"
	"github.com/sghaida/typereg/typeid"
)

// Descriptor declares how to build a component producing T: its name, the
// ordered identities of its dependencies, and a constructor over their handles.
//
// Descriptors are created with Provide0..Provide4. The number and types of the
// dependencies are part of the constructor's signature, so a descriptor whose
// declared dependencies disagree with its constructor does not compile.
//
//	var MySQL = di.Provide0("MySQL", func() Database {
//	    return Database{Name: "MySQL"}
//	})
//
//	var Web = di.Provide1("WebServer", func(db *di.Handle[Database]) WebServer {
//	    return WebServer{DB: db}
//	})
//
// A Descriptor is immutable and may be shared between containers.
type Descriptor[T any] struct {
	name string
	deps []typeid.ID

	// resolve looks up every dependency in declaration order and returns the
	// bound constructor, or the first failure.
	resolve func(m *hmap.Map) (func() T, error)
}

var _ Component = (*Descriptor[struct{}])(nil)

// Name returns the component name given at declaration.
func (d *Descriptor[T]) Name() string { return d.name }

// Output returns the identity of T.
func (d *Descriptor[T]) Output() typeid.ID { return typeid.Of[T]() }

// Dependencies returns the declared dependency identities in order.
func (d *Descriptor[T]) Dependencies() []typeid.ID { return slices.Clone(d.deps) }

// String returns "name(dep, dep) -> output".
func (d *Descriptor[T]) String() string {
	names := make([]string, len(d.deps))
	for i, id := range d.deps {
		names[i] = id.String()
	}
	return fmt.Sprintf("%s(%s) -> %s", d.name, strings.Join(names, ", "), d.Output())
}

func (d *Descriptor[T]) isNil() bool { return d == nil }

func (d *Descriptor[T]) build(ctx context.Context, c *Container) (AnyHandle, error) {
	h, err := BuildContext(ctx, c, d)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Provide0 declares a component without dependencies.
func Provide0[T any](name string, fn func() T) *Descriptor[T] {
	return &Descriptor[T]{
		name: name,
		resolve: func(*hmap.Map) (func() T, error) {
			if fn == nil {
				return nil, NilConstructorError{Component: name}
			}
			return fn, nil
		},
	}
}

// Provide1 declares a component with one dependency.
func Provide1[D1, T any](name string, fn func(*Handle[D1]) T) *Descriptor[T] {
	return &Descriptor[T]{
		name: name,
		deps: []typeid.ID{typeid.Of[D1]()},
		resolve: func(m *hmap.Map) (func() T, error) {
			if fn == nil {
				return nil, NilConstructorError{Component: name}
			}
			d1, err := lookup[D1](m)
			if err != nil {
				return nil, err
			}
			return func() T { return fn(d1) }, nil
		},
	}
}

// Provide2 declares a component with two dependencies.
func Provide2[D1, D2, T any](name string, fn func(*Handle[D1], *Handle[D2]) T) *Descriptor[T] {
	return &Descriptor[T]{
		name: name,
		deps: []typeid.ID{typeid.Of[D1](), typeid.Of[D2]()},
		resolve: func(m *hmap.Map) (func() T, error) {
			if fn == nil {
				return nil, NilConstructorError{Component: name}
			}
			d1, err := lookup[D1](m)
			if err != nil {
				return nil, err
			}
			d2, err := lookup[D2](m)
			if err != nil {
				return nil, err
			}
			return func() T { return fn(d1, d2) }, nil
		},
	}
}

// Provide3 declares a component with three dependencies.
func Provide3[D1, D2, D3, T any](name string, fn func(*Handle[D1], *Handle[D2], *Handle[D3]) T) *Descriptor[T] {
	return &Descriptor[T]{
		name: name,
		deps: []typeid.ID{typeid.Of[D1](), typeid.Of[D2](), typeid.Of[D3]()},
		resolve: func(m *hmap.Map) (func() T, error) {
			if fn == nil {
				return nil, NilConstructorError{Component: name}
			}
			d1, err := lookup[D1](m)
			if err != nil {
				return nil, err
			}
			d2, err := lookup[D2](m)
			if err != nil {
				return nil, err
			}
			d3, err := lookup[D3](m)
			if err != nil {
				return nil, err
			}
			return func() T { return fn(d1, d2, d3) }, nil
		},
	}
}

// Provide4 declares a component with four dependencies.
func Provide4[D1, D2, D3, D4, T any](name string, fn func(*Handle[D1], *Handle[D2], *Handle[D3], *Handle[D4]) T) *Descriptor[T] {
	return &Descriptor[T]{
		name: name,
		deps: []typeid.ID{typeid.Of[D1](), typeid.Of[D2](), typeid.Of[D3](), typeid.Of[D4]()},
		resolve: func(m *hmap.Map) (func() T, error) {
			if fn == nil {
				return nil, NilConstructorError{Component: name}
			}
			d1, err := lookup[D1](m)
			if err != nil {
				return nil, err
			}
			d2, err := lookup[D2](m)
			if err != nil {
				return nil, err
			}
			d3, err := lookup[D3](m)
			if err != nil {
				return nil, err
			}
			d4, err := lookup[D4](m)
			if err != nil {
				return nil, err
			}
			return func() T { return fn(d1, d2, d3, d4) }, nil
		},
	}
}

// lookup returns the tracked handle for D.
func lookup[D any](m *hmap.Map) (*Handle[D], error) {
	h, ok := hmap.Get[*Handle[D]](m)
	if !ok {
		return nil, MissingDependencyError{Type: typeid.Of[D]()}
	}
	return h, nil
}
