package descriptor

import "docgen/internal/model"

// Named is implemented by every descriptor.
type Named interface {
	GetName() string
}

// ArgumentInterface is the view of an argument used when matching across methods.
type ArgumentInterface interface {
	Named
	GetType() *model.TypeRef
}

// MethodInterface is the contract an argument consumes from the method that
// declares it.
type MethodInterface interface {
	Named
	// GetInheritedElement returns the method this one overrides or implements,
	// or nil.
	GetInheritedElement() MethodInterface
	// GetArguments returns the method's own arguments in declaration order.
	GetArguments() []ArgumentInterface
}

// MethodLink reaches the method that declares an argument. Method fails with
// ErrNoOwner when the argument is not attached to a method.
type MethodLink interface {
	Method() (MethodInterface, error)
}

// DeprecationNotifier receives a notice every time a deprecated accessor is used.
type DeprecationNotifier interface {
	Deprecated(symbol, replacement string)
}
