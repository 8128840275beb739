// Package typeid assigns a stable, comparable identity to Go types.
//
// An ID is a small value type: it can be used as a map key, compared with ==,
// and ordered with Compare. IDs are handed out from a process-local sequence
// the first time a type is seen, so they are never reused and two IDs are equal
// only when they represent the same type.
//
//	a := typeid.Of[Database]()
//	b := typeid.For(reflect.TypeFor[Database]())
//	a == b // true
//
// Identities are only meaningful inside the process that created them. They are
// not persisted and must not be sent to other processes.
package typeid

import (
	"reflect"
	"sync"
	"sync/atomic"
)

var (
	typeToID sync.Map // reflect.Type -> ID
	idToType sync.Map // ID -> reflect.Type

	nextID atomic.Uint64
)

// ID identifies a Go type for the lifetime of the process.
//
// The zero ID identifies no type.
type ID struct {
	n uint64
}

// Of returns the identity of T.
//
// Interface types are identified as themselves, not by the dynamic type of a
// value, so Of[error]() and Of[*MyError]() differ.
func Of[T any]() ID {
	return For(reflect.TypeFor[T]())
}

// For returns the identity of t. It panics if t is nil.
func For(t reflect.Type) ID {
	if t == nil {
		panic("typeid: nil reflect.Type")
	}
	if v, ok := typeToID.Load(t); ok {
		return v.(ID)
	}
	return forSlow(t)
}

func forSlow(t reflect.Type) ID {
	id := ID{n: nextID.Add(1)}
	// Store the reverse mapping first so any goroutine that observes id in
	// typeToID can also resolve it back to t.
	idToType.Store(id, t)

	v, loaded := typeToID.LoadOrStore(t, id)
	if loaded {
		// Another goroutine registered t first; drop our sequence number.
		idToType.Delete(id)
		return v.(ID)
	}
	return id
}

// Type returns the reflect.Type the identity was created for, or nil for the
// zero ID.
func (id ID) Type() reflect.Type {
	if id.IsZero() {
		return nil
	}
	v, ok := idToType.Load(id)
	if !ok {
		return nil
	}
	return v.(reflect.Type)
}

// IsZero reports whether id identifies no type.
func (id ID) IsZero() bool { return id.n == 0 }

// Compare orders identities by the sequence in which their types were first
// seen. It returns -1, 0 or +1.
func (id ID) Compare(other ID) int {
	switch {
	case id.n < other.n:
		return -1
	case id.n > other.n:
		return 1
	default:
		return 0
	}
}

// String returns the Go spelling of the type, e.g. "webapp.Database" or "*event.Dispatcher".
func (id ID) String() string {
	t := id.Type()
	if t == nil {
		return "<invalid type>"
	}
	return t.String()
}
