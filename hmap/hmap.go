// Package hmap provides a heterogeneous map: one container holding at most one
// value per Go type, indexed by the type's identity.
//
//	var m hmap.Map
//	hmap.Set(&m, Config{Port: 8080})
//	cfg, ok := hmap.Get[Config](&m)
//
// The slot for type T can only be written through Set[T] or GetOrInit[T], so a
// value read back for T is always a T. Callers never see a type assertion and
// there is no error path for a wrong type, because a wrong type cannot be
// stored in the first place.
//
// A Map is not safe for concurrent mutation. Owners that share a Map between
// goroutines must synchronize access themselves.
package hmap

import (
	"slices"

	"github.com/sghaida/typereg/typeid"
)

// Map holds at most one value per type. The zero Map is empty and ready to use.
type Map struct {
	// typeid.Of[T]() -> *T
	slots map[typeid.ID]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{slots: make(map[typeid.ID]any)}
}

// Set stores v under T's identity, replacing and discarding any previous T.
//
// Pointers obtained from GetMut before the call keep pointing at the discarded
// value; they do not observe v.
func Set[T any](m *Map, v T) {
	if m.slots == nil {
		m.slots = make(map[typeid.ID]any)
	}
	box := new(T)
	*box = v
	m.slots[typeid.Of[T]()] = box
}

// Has reports whether a value of type T is stored.
func Has[T any](m *Map) bool {
	_, ok := m.slots[typeid.Of[T]()]
	return ok
}

// Get returns a copy of the stored T, or the zero T and false when absent.
func Get[T any](m *Map) (T, bool) {
	box, ok := slot[T](m)
	if !ok {
		var zero T
		return zero, false
	}
	return *box, true
}

// GetMut returns a pointer to the stored T, or nil and false when absent.
// Writes through the pointer are visible to later Get calls until the next Set[T].
func GetMut[T any](m *Map) (*T, bool) {
	return slot[T](m)
}

// GetOrInit returns a pointer to the stored T, first storing init() when T is
// absent. init is not called when a value is present.
func GetOrInit[T any](m *Map, init func() T) *T {
	if box, ok := slot[T](m); ok {
		return box
	}
	var v T
	if init != nil {
		v = init()
	}
	Set(m, v)
	box, _ := slot[T](m)
	return box
}

// Len returns the number of stored types.
func (m *Map) Len() int { return len(m.slots) }

// IDs returns the identities of the stored types ordered by typeid.ID.Compare.
func (m *Map) IDs() []typeid.ID {
	ids := make([]typeid.ID, 0, len(m.slots))
	for id := range m.slots {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, typeid.ID.Compare)
	return ids
}

// slot is the only place a stored value is converted back to its static type.
// Set and GetOrInit are the only writers of the slot for typeid.Of[T](), and
// both store a *T, so the assertion holds.
func slot[T any](m *Map) (*T, bool) {
	raw, ok := m.slots[typeid.Of[T]()]
	if !ok {
		return nil, false
	}
	return raw.(*T), true
}
