package descriptor

import (
	"fmt"
	"strings"
)

// Handle addresses a node inside a Graph. The zero value is NoHandle.
type Handle uint32

// NoHandle marks an absent reference.
const NoHandle Handle = 0

// Valid reports whether the handle may address a node.
func (h Handle) Valid() bool {
	return h != NoHandle
}

func (h Handle) index() int {
	return int(h) - 1
}

func handleFor(index int) Handle {
	return Handle(index + 1)
}

// Graph owns every class, method and argument of one documentation run.
// Descriptors refer to each other through handles into the graph, never
// through owning pointers.
type Graph struct {
	Name string

	classes   []*Class
	methods   []*Method
	arguments []*Argument
	notifier  DeprecationNotifier
}

// Option configures a Graph.
type Option func(*Graph)

// WithNotifier routes deprecation notices of all attached arguments to n.
func WithNotifier(n DeprecationNotifier) Option {
	return func(g *Graph) {
		g.notifier = n
	}
}

// NewGraph creates an empty graph.
func NewGraph(name string, opts ...Option) *Graph {
	g := &Graph{Name: name}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddClass attaches a class to the graph.
func (g *Graph) AddClass(c *Class) (Handle, error) {
	if c.graph != nil {
		return NoHandle, fmt.Errorf("adding class %s: %w", c.Name, ErrAttached)
	}
	g.classes = append(g.classes, c)
	c.graph = g
	c.handle = handleFor(len(g.classes) - 1)
	if c.Kind == "" {
		c.Kind = KindClass
	}
	return c.handle, nil
}

// AddMethod attaches a method to the class addressed by class. Pass NoHandle
// for free functions.
func (g *Graph) AddMethod(class Handle, m *Method) (Handle, error) {
	if m.graph != nil {
		return NoHandle, fmt.Errorf("adding method %s: %w", m.Name, ErrAttached)
	}

	var owner *Class
	if class.Valid() {
		c, err := g.Class(class)
		if err != nil {
			return NoHandle, fmt.Errorf("adding method %s: %w", m.Name, err)
		}
		owner = c
	}

	g.methods = append(g.methods, m)
	m.graph = g
	m.handle = handleFor(len(g.methods) - 1)
	m.class = class
	if owner != nil {
		owner.methods = append(owner.methods, m.handle)
	}
	return m.handle, nil
}

// AddArgument attaches an argument to the method addressed by method.
// Argument names are unique per method.
func (g *Graph) AddArgument(method Handle, a *Argument) (Handle, error) {
	if a.handle.Valid() {
		return NoHandle, fmt.Errorf("adding argument %s: %w", a.Name, ErrAttached)
	}

	m, err := g.Method(method)
	if err != nil {
		return NoHandle, fmt.Errorf("adding argument %s: %w", a.Name, err)
	}
	if m.GetArgument(a.Name) != nil {
		return NoHandle, fmt.Errorf("adding argument %s to %s: %w", a.Name, m.GetFQSEN(), ErrDuplicateArgument)
	}

	g.arguments = append(g.arguments, a)
	a.handle = handleFor(len(g.arguments) - 1)
	a.link = graphLink{graph: g, method: method}
	if g.notifier != nil && a.notifier == nil {
		a.notifier = g.notifier
	}
	m.arguments = append(m.arguments, a.handle)
	return a.handle, nil
}

// Class returns the class addressed by h.
func (g *Graph) Class(h Handle) (*Class, error) {
	if !h.Valid() || h.index() >= len(g.classes) {
		return nil, fmt.Errorf("class %d: %w", h, ErrUnknownHandle)
	}
	return g.classes[h.index()], nil
}

// Method returns the method addressed by h.
func (g *Graph) Method(h Handle) (*Method, error) {
	if !h.Valid() || h.index() >= len(g.methods) {
		return nil, fmt.Errorf("method %d: %w", h, ErrUnknownHandle)
	}
	return g.methods[h.index()], nil
}

// Argument returns the argument addressed by h.
func (g *Graph) Argument(h Handle) (*Argument, error) {
	if !h.Valid() || h.index() >= len(g.arguments) {
		return nil, fmt.Errorf("argument %d: %w", h, ErrUnknownHandle)
	}
	return g.arguments[h.index()], nil
}

// Classes returns all classes in insertion order.
func (g *Graph) Classes() []*Class {
	return g.classes
}

// Methods returns all methods, including free functions, in insertion order.
func (g *Graph) Methods() []*Method {
	return g.methods
}

// Functions returns the methods that do not belong to a class.
func (g *Graph) Functions() []*Method {
	var result []*Method
	for _, m := range g.methods {
		if !m.class.Valid() {
			result = append(result, m)
		}
	}
	return result
}

// Arguments returns all arguments in insertion order.
func (g *Graph) Arguments() []*Argument {
	return g.arguments
}

// ClassByName finds a class by FQSEN or short name. A leading backslash is
// ignored. FQSEN matches win over short-name matches.
func (g *Graph) ClassByName(name string) *Class {
	name = strings.TrimPrefix(name, `\`)
	if name == "" {
		return nil
	}

	var byShortName *Class
	for _, c := range g.classes {
		if strings.TrimPrefix(c.FQSEN, `\`) == name {
			return c
		}
		if byShortName == nil && c.Name == name {
			byShortName = c
		}
	}
	return byShortName
}

// SetInherited records that method overrides or implements ancestor.
func (g *Graph) SetInherited(method, ancestor Handle) error {
	m, err := g.Method(method)
	if err != nil {
		return err
	}
	if _, err := g.Method(ancestor); err != nil {
		return err
	}
	if method == ancestor {
		return fmt.Errorf("linking %s: %w", m.GetFQSEN(), ErrSelfReference)
	}
	m.inherited = ancestor
	return nil
}

// SetParent records the parent class of class.
func (g *Graph) SetParent(class, parent Handle) error {
	c, err := g.Class(class)
	if err != nil {
		return err
	}
	if _, err := g.Class(parent); err != nil {
		return err
	}
	if class == parent {
		return fmt.Errorf("linking %s: %w", c.GetFQSEN(), ErrSelfReference)
	}
	c.parent = parent
	return nil
}

// AddUse records that class uses the trait addressed by trait.
func (g *Graph) AddUse(class, trait Handle) error {
	c, err := g.Class(class)
	if err != nil {
		return err
	}
	if _, err := g.Class(trait); err != nil {
		return err
	}
	if class == trait {
		return fmt.Errorf("linking %s: %w", c.GetFQSEN(), ErrSelfReference)
	}
	c.uses = appendUnique(c.uses, trait)
	return nil
}

// AddInterface records that class implements or extends iface.
func (g *Graph) AddInterface(class, iface Handle) error {
	c, err := g.Class(class)
	if err != nil {
		return err
	}
	if _, err := g.Class(iface); err != nil {
		return err
	}
	if class == iface {
		return fmt.Errorf("linking %s: %w", c.GetFQSEN(), ErrSelfReference)
	}
	c.interfaces = appendUnique(c.interfaces, iface)
	return nil
}

func appendUnique(handles []Handle, h Handle) []Handle {
	for _, existing := range handles {
		if existing == h {
			return handles
		}
	}
	return append(handles, h)
}

// graphLink resolves an argument's method through the graph.
type graphLink struct {
	graph  *Graph
	method Handle
}

func (l graphLink) Method() (MethodInterface, error) {
	if l.graph == nil || !l.method.Valid() {
		return nil, ErrNoOwner
	}
	m, err := l.graph.Method(l.method)
	if err != nil {
		return nil, err
	}
	return m, nil
}
