package descriptor

import "errors"

var (
	// ErrNoOwner is returned when a descriptor has no owning element.
	ErrNoOwner = errors.New("descriptor has no owner")
	// ErrUnknownHandle is returned when a handle does not address a node of the graph.
	ErrUnknownHandle = errors.New("unknown descriptor handle")
	// ErrDuplicateArgument is returned when a method already declares an argument with the same name.
	ErrDuplicateArgument = errors.New("duplicate argument name")
	// ErrAttached is returned when a descriptor is added to a graph twice.
	ErrAttached = errors.New("descriptor already attached to a graph")
	// ErrSelfReference is returned when an element is linked to itself.
	ErrSelfReference = errors.New("element cannot reference itself")
)
