package di

import (
	"context"

	"github.com/google/uuid"

	"github.com/sghaida/typereg/typeid"
)

// Handle is a shared reference to one built instance of T.
//
// Every holder of a Handle sees the same instance. The instance can only be
// reached while holding the handle's guard, which With, Update, WithContext and
// Load acquire and release for you; the guard is released on every exit path of
// the callback, including panics. Do not keep the *T a callback receives after
// the callback returns.
//
// Handles are created by Build and Supply. A rebuild creates a new Handle; it
// never retargets one that already exists.
type Handle[T any] struct {
	id  uuid.UUID
	sem chan struct{} // one-slot guard
	val T
}

// AnyHandle is the type-erased view of a Handle used by Catalog.
type AnyHandle interface {
	// ID is unique per built instance.
	ID() uuid.UUID
	// Type is the identity of the handle's instance type.
	Type() typeid.ID
}

var _ AnyHandle = (*Handle[struct{}])(nil)

func newHandle[T any](v T) *Handle[T] {
	return &Handle[T]{
		id:  uuid.New(),
		sem: make(chan struct{}, 1),
		val: v,
	}
}

// ID returns the instance ID. Two handles share an ID only if they are the same handle.
func (h *Handle[T]) ID() uuid.UUID { return h.id }

// Type returns the identity of T.
func (h *Handle[T]) Type() typeid.ID { return typeid.Of[T]() }

// With runs fn with exclusive access to the instance, blocking until the guard is free.
func (h *Handle[T]) With(fn func(v *T)) {
	h.lock()
	defer h.unlock()
	fn(&h.val)
}

// Update is With for callbacks that can fail. It returns fn's error.
func (h *Handle[T]) Update(fn func(v *T) error) error {
	h.lock()
	defer h.unlock()
	return fn(&h.val)
}

// WithContext is Update with a bounded wait: if ctx ends before the guard is
// acquired, fn is not called and ctx.Err() is returned.
func (h *Handle[T]) WithContext(ctx context.Context, fn func(v *T) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case h.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer h.unlock()
	return fn(&h.val)
}

// Load returns a copy of the instance taken under the guard.
func (h *Handle[T]) Load() T {
	h.lock()
	defer h.unlock()
	return h.val
}

func (h *Handle[T]) lock()   { h.sem <- struct{}{} }
func (h *Handle[T]) unlock() { <-h.sem }
