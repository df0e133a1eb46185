package descriptor

// ClassKind distinguishes classes, interfaces and traits.
type ClassKind string

const (
	KindClass     ClassKind = "class"
	KindInterface ClassKind = "interface"
	KindTrait     ClassKind = "trait"
)

// Class describes a class, interface or trait.
type Class struct {
	Element

	Kind       ClassKind
	Visibility Visibility
	IsAbstract bool
	IsFinal    bool

	// Names recorded by an analyzer; the linker turns them into handles.
	ParentName     string
	UsesNames      []string
	InterfaceNames []string

	graph      *Graph
	handle     Handle
	parent     Handle
	uses       []Handle
	interfaces []Handle
	methods    []Handle
}

// NewClass creates a class of the given kind that is not attached to a graph yet.
func NewClass(name string, kind ClassKind) *Class {
	return &Class{
		Element:    Element{Name: name},
		Kind:       kind,
		Visibility: Public,
	}
}

// GetHandle returns the class's handle in its graph, or NoHandle.
func (c *Class) GetHandle() Handle {
	return c.handle
}

// IsInterface reports whether the class is an interface.
func (c *Class) IsInterface() bool {
	return c.Kind == KindInterface
}

// GetParent returns the parent class or nil.
func (c *Class) GetParent() *Class {
	if c.graph == nil || !c.parent.Valid() {
		return nil
	}
	p, err := c.graph.Class(c.parent)
	if err != nil {
		return nil
	}
	return p
}

// GetUses returns the traits used by the class.
func (c *Class) GetUses() []*Class {
	return c.resolve(c.uses)
}

// GetInterfaces returns the interfaces the class implements, or the
// interfaces an interface extends.
func (c *Class) GetInterfaces() []*Class {
	return c.resolve(c.interfaces)
}

// GetMethods returns the methods declared on the class.
func (c *Class) GetMethods() []*Method {
	if c.graph == nil {
		return nil
	}
	result := make([]*Method, 0, len(c.methods))
	for _, h := range c.methods {
		if m, err := c.graph.Method(h); err == nil {
			result = append(result, m)
		}
	}
	return result
}

// GetMethod returns the declared method with the given name, or nil.
func (c *Class) GetMethod(name string) *Method {
	for _, m := range c.GetMethods() {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (c *Class) resolve(handles []Handle) []*Class {
	if c.graph == nil {
		return nil
	}
	result := make([]*Class, 0, len(handles))
	for _, h := range handles {
		if other, err := c.graph.Class(h); err == nil {
			result = append(result, other)
		}
	}
	return result
}
