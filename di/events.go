package di

import (
	"github.com/google/uuid"

	"github.com/sghaida/typereg/typeid"
)

// Built is triggered after a component was built or supplied and is now the
// tracked handle for its type.
type Built struct {
	// Component is the descriptor name; empty for supplied instances.
	Component string
	Type      typeid.ID
	Handle    uuid.UUID

	// Replaced is the ID of the handle this one superseded, or uuid.Nil on the
	// first build. Holders of the replaced handle keep the old instance.
	Replaced uuid.UUID

	Supplied bool
}

// Rebuild reports whether the event replaced an earlier handle.
func (b Built) Rebuild() bool { return b.Replaced != uuid.Nil }

// BuildFailed is triggered when Build returns an error. The container state is unchanged.
type BuildFailed struct {
	Component string
	Type      typeid.ID
	Err       error
}
