package di

import (
	"errors"
	"strconv"

	"github.com/sghaida/typereg/typeid"
)

var (
	// ErrConstructorPanic is wrapped by the error Build returns when a
	// descriptor's constructor panics. Nothing is stored for the component.
	ErrConstructorPanic = errors.New("di: panic during construction")

	// ErrNilDescriptor is returned when Build or Catalog.Register receive a nil descriptor.
	ErrNilDescriptor = errors.New("di: nil descriptor")

	// ErrEmptyComponentName is returned by Catalog.Register for components without a name.
	ErrEmptyComponentName = errors.New("di: empty component name")
)

// MissingDependencyError is returned when a component, or one of its declared
// dependencies, has no tracked handle in the container.
//
// Build reports the first unmet dependency in declaration order.
type MissingDependencyError struct{ Type typeid.ID }

// Error implements the error interface.
func (e MissingDependencyError) Error() string {
	// Example: di: dependency "webapp.Database" missing
	return "di: dependency " + strconv.Quote(e.Type.String()) + " missing"
}

// NilConstructorError is returned when a descriptor was declared with a nil constructor.
type NilConstructorError struct{ Component string }

// Error implements the error interface.
func (e NilConstructorError) Error() string {
	return "di: nil constructor for component " + strconv.Quote(e.Component)
}

// DuplicateComponentError is returned by Catalog.Register when a name is already taken.
type DuplicateComponentError struct{ Name string }

// Error implements the error interface.
func (e DuplicateComponentError) Error() string {
	return "di: duplicate component " + strconv.Quote(e.Name)
}

// UnknownComponentError is returned by Catalog.BuildPlan for names that were never registered.
type UnknownComponentError struct{ Name string }

// Error implements the error interface.
func (e UnknownComponentError) Error() string {
	return "di: unknown component " + strconv.Quote(e.Name)
}
