package descriptor

import (
	"docgen/internal/diag"
	"docgen/internal/model"
)

// Argument describes a single argument of a method or function.
//
// When no type was declared, GetType resolves it from the argument with the
// same name on the method this argument's method overrides, and keeps the
// result. That write makes Argument unsafe for concurrent use; the value it
// stores only depends on the ancestor, so racing readers would compute the same
// type twice rather than corrupt it.
type Argument struct {
	Element

	typ         *model.TypeRef
	def         *string
	byReference bool
	variadic    bool

	handle    Handle
	link      MethodLink
	notifier  DeprecationNotifier
	resolving bool
}

// NewArgument creates an argument that is not attached to any method yet.
func NewArgument(name string) *Argument {
	return &Argument{Element: Element{Name: name}}
}

// GetHandle returns the argument's handle in its graph, or NoHandle.
func (a *Argument) GetHandle() Handle {
	return a.handle
}

// SetMethodLink replaces the way the argument reaches its method. A nil link
// detaches the argument.
func (a *Argument) SetMethodLink(link MethodLink) {
	a.link = link
}

// SetNotifier sets where deprecation notices for this argument go.
func (a *Argument) SetNotifier(n DeprecationNotifier) {
	a.notifier = n
}

// Method returns the method declaring this argument.
func (a *Argument) Method() (MethodInterface, error) {
	if a.link == nil {
		return nil, ErrNoOwner
	}
	return a.link.Method()
}

// SetType stores the type, replacing any earlier value including an inherited one.
func (a *Argument) SetType(t *model.TypeRef) {
	a.typ = t
}

// GetType returns the declared type, or the type of the inherited argument
// when none was declared. A nil result is not kept, so a later SetType or a
// later link to an ancestor still takes effect.
func (a *Argument) GetType() *model.TypeRef {
	if a.typ != nil || a.resolving {
		return a.typ
	}

	a.resolving = true
	defer func() { a.resolving = false }()

	if inherited := a.GetInheritedElement(); inherited != nil {
		a.SetType(inherited.GetType())
	}

	return a.typ
}

// GetTypes returns the type as a list with at most one element.
//
// Deprecated: use GetType.
func (a *Argument) GetTypes() []*model.TypeRef {
	a.deprecations().Deprecated("Argument.GetTypes", "Argument.GetType")

	if t := a.GetType(); t != nil {
		return []*model.TypeRef{t}
	}
	return []*model.TypeRef{}
}

// GetInheritedElement returns the argument with the same name on the method
// this argument's method inherits from. It returns nil when the argument has no
// method, the method inherits nothing, or no argument matches.
func (a *Argument) GetInheritedElement() ArgumentInterface {
	method, err := a.Method()
	if err != nil || method == nil {
		return nil
	}

	inherited := method.GetInheritedElement()
	if inherited == nil {
		return nil
	}

	for _, parent := range inherited.GetArguments() {
		if parent != nil && parent.GetName() == a.GetName() {
			return parent
		}
	}

	return nil
}

// SetDefault sets the default value expression; nil means no default.
func (a *Argument) SetDefault(value *string) {
	a.def = value
}

// GetDefault returns the default value expression or nil.
func (a *Argument) GetDefault() *string {
	return a.def
}

// SetByReference sets whether the argument is passed by reference.
func (a *Argument) SetByReference(byReference bool) {
	a.byReference = byReference
}

// IsByReference reports whether the argument is passed by reference.
func (a *Argument) IsByReference() bool {
	return a.byReference
}

// SetVariadic sets whether this argument collects the trailing call arguments.
func (a *Argument) SetVariadic(variadic bool) {
	a.variadic = variadic
}

// IsVariadic reports whether this argument collects the trailing call arguments.
func (a *Argument) IsVariadic() bool {
	return a.variadic
}

func (a *Argument) deprecations() DeprecationNotifier {
	if a.notifier != nil {
		return a.notifier
	}
	return diag.Default()
}
