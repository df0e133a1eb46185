// Package linker connects the descriptors of a graph: class hierarchies first,
// then the inherited element of every method.
package linker

import (
	"docgen/internal/descriptor"
	"docgen/internal/diag"
	"docgen/internal/reference"
)

// Stats summarizes a Link run.
type Stats struct {
	Relations  int // parent, trait and interface links made
	Methods    int // methods linked to the method they override
	Unresolved int // names or references that could not be resolved
	Cycles     int // classes whose parent chain loops
}

// Linker resolves the names recorded by analyzers. Broken references are
// reported as warnings and left unlinked.
type Linker struct {
	graph    *descriptor.Graph
	reporter *diag.Reporter
	cyclic   map[*descriptor.Class]bool
}

// New creates a Linker for g. A nil reporter uses diag.Default().
func New(g *descriptor.Graph, reporter *diag.Reporter) *Linker {
	if reporter == nil {
		reporter = diag.Default()
	}
	return &Linker{
		graph:    g,
		reporter: reporter,
		cyclic:   make(map[*descriptor.Class]bool),
	}
}

// Link resolves class relations and method inheritance.
func (l *Linker) Link() Stats {
	var stats Stats
	for _, c := range l.graph.Classes() {
		l.linkClass(c, &stats)
	}
	for _, m := range l.graph.Methods() {
		l.linkMethod(m, &stats)
	}
	return stats
}

func (l *Linker) linkClass(c *descriptor.Class, stats *Stats) {
	if c.ParentName != "" {
		if parent := l.lookup(c, "parent", c.ParentName, stats); parent != nil {
			l.relate(c, l.graph.SetParent(c.GetHandle(), parent.GetHandle()), stats)
		}
	}
	for _, name := range c.UsesNames {
		if trait := l.lookup(c, "trait", name, stats); trait != nil {
			l.relate(c, l.graph.AddUse(c.GetHandle(), trait.GetHandle()), stats)
		}
	}
	for _, name := range c.InterfaceNames {
		if iface := l.lookup(c, "interface", name, stats); iface != nil {
			l.relate(c, l.graph.AddInterface(c.GetHandle(), iface.GetHandle()), stats)
		}
	}
}

func (l *Linker) lookup(c *descriptor.Class, role, name string, stats *Stats) *descriptor.Class {
	found := l.graph.ClassByName(name)
	if found == nil {
		stats.Unresolved++
		l.reporter.Warn("%s: %s %s not found", c.GetFQSEN(), role, name)
	}
	return found
}

func (l *Linker) relate(c *descriptor.Class, err error, stats *Stats) {
	if err != nil {
		stats.Unresolved++
		l.reporter.Warn("%s: %v", c.GetFQSEN(), err)
		return
	}
	stats.Relations++
}

func (l *Linker) linkMethod(m *descriptor.Method, stats *Stats) {
	if m.Inherited() != nil {
		return
	}

	var ancestor *descriptor.Method
	switch {
	case m.Inherits != "":
		ancestor = l.resolveReference(m, stats)
	case m.GetClass() != nil:
		ancestor = l.findAncestor(m.GetClass(), m.Name, stats)
	}
	if ancestor == nil {
		return
	}

	if err := l.graph.SetInherited(m.GetHandle(), ancestor.GetHandle()); err != nil {
		stats.Unresolved++
		l.reporter.Warn("%s: %v", m.GetFQSEN(), err)
		return
	}
	stats.Methods++
	l.reporter.Info("%s inherits from %s", m.GetFQSEN(), ancestor.GetFQSEN())
}

func (l *Linker) resolveReference(m *descriptor.Method, stats *Stats) *descriptor.Method {
	ref, err := reference.Parse(m.Inherits)
	if err != nil {
		stats.Unresolved++
		l.reporter.Warn("%s: %v", m.GetFQSEN(), err)
		return nil
	}
	if ref.Kind() != reference.KindMethod {
		stats.Unresolved++
		l.reporter.Warn("%s: %s is not a method reference", m.GetFQSEN(), ref)
		return nil
	}

	class := l.graph.ClassByName(ref.ClassName())
	if class == nil {
		stats.Unresolved++
		l.reporter.Warn("%s: class of %s not found", m.GetFQSEN(), ref)
		return nil
	}
	ancestor := class.GetMethod(ref.MemberName())
	if ancestor == nil {
		stats.Unresolved++
		l.reporter.Warn("%s: method %s not found", m.GetFQSEN(), ref)
	}
	return ancestor
}

// findAncestor looks for a method called name above start: the traits of
// start, then each parent and its traits, then all interfaces breadth-first.
func (l *Linker) findAncestor(start *descriptor.Class, name string, stats *Stats) *descriptor.Method {
	lineage := append([]*descriptor.Class{start}, l.parentChain(start, stats)...)

	for i, c := range lineage {
		if i > 0 {
			if m := c.GetMethod(name); m != nil {
				return m
			}
		}
		for _, trait := range c.GetUses() {
			if trait == start {
				continue
			}
			if m := trait.GetMethod(name); m != nil {
				return m
			}
		}
	}

	visited := make(map[*descriptor.Class]bool, len(lineage))
	var queue []*descriptor.Class
	for _, c := range lineage {
		visited[c] = true
		queue = append(queue, c.GetInterfaces()...)
	}
	for len(queue) > 0 {
		iface := queue[0]
		queue = queue[1:]
		if visited[iface] {
			continue
		}
		visited[iface] = true
		if m := iface.GetMethod(name); m != nil {
			return m
		}
		queue = append(queue, iface.GetInterfaces()...)
	}

	return nil
}

func (l *Linker) parentChain(start *descriptor.Class, stats *Stats) []*descriptor.Class {
	var chain []*descriptor.Class
	seen := map[*descriptor.Class]bool{start: true}
	for p := start.GetParent(); p != nil; p = p.GetParent() {
		if seen[p] {
			if !l.cyclic[start] {
				l.cyclic[start] = true
				stats.Cycles++
				l.reporter.Warn("%s: parent chain loops at %s", start.GetFQSEN(), p.GetFQSEN())
			}
			break
		}
		seen[p] = true
		chain = append(chain, p)
	}
	return chain
}
