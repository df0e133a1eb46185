// Package generator renders descriptor graphs through text templates.
package generator

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"docgen/internal/config"
	"docgen/internal/descriptor"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// DefaultTemplate is the name of the built-in Markdown template.
const DefaultTemplate = "markdown.tmpl"

// Generator executes templates against descriptor graphs.
type Generator struct {
	config   *config.Config
	template *template.Template
}

// New creates a new Generator.
func New(cfg *config.Config) *Generator {
	return &Generator{
		config: cfg,
	}
}

// LoadTemplate loads a template from file.
func (g *Generator) LoadTemplate(path string) error {
	tmpl, err := template.New(filepath.Base(path)).
		Funcs(templateFuncs(g.config)).
		ParseFiles(path)
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}
	g.template = tmpl
	return nil
}

// LoadDefaultTemplate loads the built-in Markdown template.
func (g *Generator) LoadDefaultTemplate() error {
	tmpl, err := template.New(DefaultTemplate).
		Funcs(templateFuncs(g.config)).
		ParseFS(builtin, "templates/"+DefaultTemplate)
	if err != nil {
		return fmt.Errorf("loading built-in template: %w", err)
	}
	g.template = tmpl
	return nil
}

// TemplateData represents data passed to templates.
type TemplateData struct {
	Graph        *descriptor.Graph   // The whole graph
	Classes      []*descriptor.Class  // Classes to document (filtered)
	Functions    []*descriptor.Method // Free functions to document (filtered)
	Class        *descriptor.Class    // Current class (for per-class mode)
	Config       *config.Config       // Configuration
	TypeMappings map[string]string    // Type mappings for convenience
}

// Generate renders documentation for the graph. The built-in template is used
// when no template was loaded.
func (g *Generator) Generate(graph *descriptor.Graph, w io.Writer) error {
	if g.template == nil {
		if err := g.LoadDefaultTemplate(); err != nil {
			return err
		}
	}

	classes := g.filterClasses(graph.Classes())
	functions := g.filterFunctions(graph.Functions())

	if g.config.Options.PerClass {
		// Execute template once per class
		for _, c := range classes {
			data := &TemplateData{
				Graph:        graph,
				Classes:      classes,
				Functions:    functions,
				Class:        c,
				Config:       g.config,
				TypeMappings: g.config.TypeMappings,
			}
			if err := g.template.Execute(w, data); err != nil {
				return fmt.Errorf("executing template for %s: %w", c.Name, err)
			}
		}
		return nil
	}

	data := &TemplateData{
		Graph:        graph,
		Classes:      classes,
		Functions:    functions,
		Config:       g.config,
		TypeMappings: g.config.TypeMappings,
	}
	if err := g.template.Execute(w, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

// filterClasses filters classes based on configuration.
func (g *Generator) filterClasses(classes []*descriptor.Class) []*descriptor.Class {
	var result []*descriptor.Class
	for _, c := range classes {
		if g.config.ShouldIncludeClass(c.Name, c.Visibility == descriptor.Public) {
			result = append(result, c)
		}
	}
	return result
}

// filterFunctions drops non-public functions when only exported elements are documented.
func (g *Generator) filterFunctions(functions []*descriptor.Method) []*descriptor.Method {
	return visibleMethods(g.config, functions)
}

// visibleMethods drops non-public methods when only exported elements are
// documented.
func visibleMethods(cfg *config.Config, methods []*descriptor.Method) []*descriptor.Method {
	if !cfg.Options.ExportedOnly {
		return methods
	}
	var result []*descriptor.Method
	for _, m := range methods {
		if m.Visibility == descriptor.Public {
			result = append(result, m)
		}
	}
	return result
}

// inheritedMethods returns the methods a class gets from its parents and traits
// without redeclaring them, nearest first.
func inheritedMethods(c *descriptor.Class) []*descriptor.Method {
	declared := make(map[string]bool)
	for _, m := range c.GetMethods() {
		declared[m.Name] = true
	}

	var result []*descriptor.Method
	seen := map[*descriptor.Class]bool{c: true}
	collect := func(from *descriptor.Class) {
		for _, m := range from.GetMethods() {
			if !declared[m.Name] {
				declared[m.Name] = true
				result = append(result, m)
			}
		}
	}

	for _, trait := range c.GetUses() {
		if !seen[trait] {
			seen[trait] = true
			collect(trait)
		}
	}
	// Prevent infinite loops on cyclic parent chains
	for p := c.GetParent(); p != nil && !seen[p]; p = p.GetParent() {
		seen[p] = true
		collect(p)
		for _, trait := range p.GetUses() {
			if !seen[trait] {
				seen[trait] = true
				collect(trait)
			}
		}
	}
	return result
}
