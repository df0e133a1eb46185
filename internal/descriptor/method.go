package descriptor

import (
	"fmt"
	"strings"

	"docgen/internal/model"
)

// Visibility of a method.
type Visibility string

const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// ParseVisibility parses a case-insensitive visibility name. The empty string
// means public.
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(strings.ToLower(s)); v {
	case "":
		return Public, nil
	case Public, Protected, Private:
		return v, nil
	}
	return "", fmt.Errorf("unknown visibility %q", s)
}

// Method describes a method of a class or a free function.
type Method struct {
	Element

	Visibility Visibility
	IsStatic   bool
	IsAbstract bool
	IsFinal    bool
	ReturnType *model.TypeRef

	// Inherits is a reference to the overridden method as recorded by an
	// analyzer, e.g. `\Shop\Repository::find()`. The linker resolves it.
	Inherits string

	graph     *Graph
	handle    Handle
	class     Handle
	inherited Handle
	arguments []Handle
}

// NewMethod creates a public method that is not attached to a graph yet.
func NewMethod(name string) *Method {
	return &Method{
		Element:    Element{Name: name},
		Visibility: Public,
	}
}

// GetHandle returns the method's handle in its graph, or NoHandle.
func (m *Method) GetHandle() Handle {
	if m == nil {
		return NoHandle
	}
	return m.handle
}

// IsFunction reports whether the method belongs to no class.
func (m *Method) IsFunction() bool {
	return m == nil || !m.class.Valid()
}

// attached reports whether m is a non-nil method owned by a graph. Accessors
// that follow handles return zero values otherwise.
func (m *Method) attached() bool {
	return m != nil && m.graph != nil
}

// GetClass returns the declaring class, or nil for functions.
func (m *Method) GetClass() *Class {
	if !m.attached() || !m.class.Valid() {
		return nil
	}
	c, err := m.graph.Class(m.class)
	if err != nil {
		return nil
	}
	return c
}

// Arguments returns the method's arguments in declaration order.
func (m *Method) Arguments() []*Argument {
	if !m.attached() {
		return nil
	}
	result := make([]*Argument, 0, len(m.arguments))
	for _, h := range m.arguments {
		if a, err := m.graph.Argument(h); err == nil {
			result = append(result, a)
		}
	}
	return result
}

// GetArguments implements MethodInterface.
func (m *Method) GetArguments() []ArgumentInterface {
	args := m.Arguments()
	result := make([]ArgumentInterface, len(args))
	for i, a := range args {
		result[i] = a
	}
	return result
}

// GetArgument returns the argument with the given name, or nil.
func (m *Method) GetArgument(name string) *Argument {
	for _, a := range m.Arguments() {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Inherited returns the method this one overrides or implements, or nil.
// A method is never its own ancestor.
func (m *Method) Inherited() *Method {
	if !m.attached() || !m.inherited.Valid() || m.inherited == m.handle {
		return nil
	}
	parent, err := m.graph.Method(m.inherited)
	if err != nil {
		return nil
	}
	return parent
}

// GetInheritedElement implements MethodInterface.
func (m *Method) GetInheritedElement() MethodInterface {
	if parent := m.Inherited(); parent != nil {
		return parent
	}
	return nil
}

// Ancestors walks the inheritance chain, nearest first. The walk stops at the
// first method seen twice.
func (m *Method) Ancestors() []*Method {
	if m == nil {
		return nil
	}
	var chain []*Method
	seen := map[*Method]bool{m: true}
	for parent := m.Inherited(); parent != nil && !seen[parent]; parent = parent.Inherited() {
		seen[parent] = true
		chain = append(chain, parent)
	}
	return chain
}
