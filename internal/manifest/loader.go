package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"docgen/internal/descriptor"
	"docgen/internal/model"
	"docgen/internal/parser"
	"docgen/internal/reference"
)

// Loader turns documents into graphs.
type Loader struct {
	opts []descriptor.Option
}

// New creates a Loader. The options are applied to every graph it builds.
func New(opts ...descriptor.Option) *Loader {
	return &Loader{opts: opts}
}

// LoadFile loads a document from a file (YAML or JSON based on extension).
func (l *Loader) LoadFile(path string) (*descriptor.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor document: %w", err)
	}

	doc, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, &Error{File: path, Err: err}
	}

	g, err := l.Load(doc, path)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Decode decodes a document. Unknown keys are rejected.
func Decode(data []byte, ext string) (*Document, error) {
	var doc Document
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := decodeYAML(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML document: %w", err)
		}
	case ".json":
		if err := decodeJSON(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing JSON document: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := decodeYAML(data, &doc); err != nil {
			doc = Document{}
			if err := decodeJSON(data, &doc); err != nil {
				return nil, fmt.Errorf("unable to parse document as YAML or JSON")
			}
		}
	}
	return &doc, nil
}

func decodeYAML(data []byte, doc *Document) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeJSON(data []byte, doc *Document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(doc)
}

// Load builds a graph from doc. source names the document in locations and
// errors.
func (l *Loader) Load(doc *Document, source string) (*descriptor.Graph, error) {
	name := doc.Name
	if name == "" {
		name = doc.Namespace
	}
	b := &builder{
		graph:     descriptor.NewGraph(name, l.opts...),
		namespace: strings.Trim(doc.Namespace, `\`),
		source:    source,
	}

	for i := range doc.Classes {
		if err := b.addClass(&doc.Classes[i], fmt.Sprintf("classes[%d]", i)); err != nil {
			return nil, err
		}
	}
	for i := range doc.Functions {
		path := fmt.Sprintf("functions[%d]", i)
		if err := b.addMethod(nil, &doc.Functions[i], path); err != nil {
			return nil, err
		}
	}
	return b.graph, nil
}

type builder struct {
	graph     *descriptor.Graph
	namespace string
	source    string
}

func (b *builder) fail(path string, err error) error {
	return &Error{File: b.source, Path: path, Err: err}
}

func (b *builder) location(line int) model.Location {
	return model.Location{File: b.source, Line: line}
}

// qualify returns the short name and FQSEN of a possibly qualified name.
func (b *builder) qualify(name string) (short, fqsen string) {
	if strings.Contains(name, `\`) {
		trimmed := strings.TrimPrefix(name, `\`)
		return trimmed[strings.LastIndex(trimmed, `\`)+1:], `\` + trimmed
	}
	if b.namespace == "" {
		return name, `\` + name
	}
	return name, `\` + b.namespace + `\` + name
}

func (b *builder) addClass(spec *ClassSpec, path string) error {
	if spec.Name == "" {
		return b.fail(path, fmt.Errorf("class name is required"))
	}

	kind := descriptor.ClassKind(strings.ToLower(spec.Kind))
	switch kind {
	case "":
		kind = descriptor.KindClass
	case descriptor.KindClass, descriptor.KindInterface, descriptor.KindTrait:
	default:
		return b.fail(path, fmt.Errorf("unknown class kind %q", spec.Kind))
	}

	short, fqsen := b.qualify(spec.Name)
	c := descriptor.NewClass(short, kind)
	c.FQSEN = fqsen
	c.Summary = spec.Summary
	c.Description = spec.Description
	c.Location = b.location(spec.Line)
	visibility, err := descriptor.ParseVisibility(spec.Visibility)
	if err != nil {
		return b.fail(path, err)
	}
	c.Visibility = visibility
	c.IsAbstract = spec.Abstract
	c.IsFinal = spec.Final
	c.ParentName = spec.Parent
	c.UsesNames = spec.Uses
	c.InterfaceNames = spec.Implements

	if _, err := b.graph.AddClass(c); err != nil {
		return b.fail(path, err)
	}

	for i := range spec.Methods {
		if err := b.addMethod(c, &spec.Methods[i], fmt.Sprintf("%s.methods[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addMethod(class *descriptor.Class, spec *MethodSpec, path string) error {
	if spec.Name == "" {
		return b.fail(path, fmt.Errorf("method name is required"))
	}

	m := descriptor.NewMethod(spec.Name)
	owner := descriptor.NoHandle
	if class != nil {
		owner = class.GetHandle()
		m.FQSEN = reference.Method(class.FQSEN, spec.Name)
	} else {
		_, fqsen := b.qualify(spec.Name)
		m.FQSEN = fqsen + "()"
	}
	m.Summary = spec.Summary
	m.Description = spec.Description
	m.Location = b.location(spec.Line)
	m.IsStatic = spec.Static
	m.IsAbstract = spec.Abstract || (class != nil && class.IsInterface())
	m.IsFinal = spec.Final
	m.Inherits = spec.Inherits

	visibility, err := descriptor.ParseVisibility(spec.Visibility)
	if err != nil {
		return b.fail(path, err)
	}
	m.Visibility = visibility

	if spec.Returns != "" {
		t, err := parser.ParseType(spec.Returns)
		if err != nil {
			return b.fail(path+".returns", err)
		}
		m.ReturnType = t
	}

	h, err := b.graph.AddMethod(owner, m)
	if err != nil {
		return b.fail(path, err)
	}

	for i := range spec.Arguments {
		if err := b.addArgument(h, m, &spec.Arguments[i], fmt.Sprintf("%s.arguments[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addArgument(h descriptor.Handle, m *descriptor.Method, spec *ArgumentSpec, path string) error {
	name := strings.TrimPrefix(spec.Name, "$")
	if name == "" {
		return b.fail(path, fmt.Errorf("argument name is required"))
	}

	a := descriptor.NewArgument(name)
	a.FQSEN = reference.Argument(m.FQSEN, name)
	a.Summary = spec.Summary
	a.Location = b.location(spec.Line)
	a.SetDefault(spec.Default)
	a.SetByReference(spec.ByReference)
	a.SetVariadic(spec.Variadic)

	if spec.Type != "" {
		t, err := parser.ParseType(spec.Type)
		if err != nil {
			return b.fail(path+".type", err)
		}
		a.SetType(t)
	}

	if _, err := b.graph.AddArgument(h, a); err != nil {
		return b.fail(path, err)
	}
	return nil
}
