// Package parser analyzes Go source files into descriptor graphs.
package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"docgen/internal/descriptor"
	"docgen/internal/model"
	"docgen/internal/reference"
)

// Parser parses Go source files and extracts classes, methods and arguments.
//
// Structs, interfaces and named types become classes. The first embedded struct
// becomes the parent, further embedded structs are recorded as used traits and
// embedded interfaces as extended interfaces. A struct implements every
// interface of the file whose method names it covers. The recorded names are
// resolved by the linker.
type Parser struct {
	fset *token.FileSet
	opts []descriptor.Option
}

// New creates a new Parser. The options are applied to every graph it builds.
func New(opts ...descriptor.Option) *Parser {
	return &Parser{
		fset: token.NewFileSet(),
		opts: opts,
	}
}

// ParseFile parses a single Go source file.
func (p *Parser) ParseFile(path string) (*descriptor.Graph, error) {
	return p.ParseSource(path, nil)
}

// ParseSource parses src as the contents of path. When src is nil the file is
// read from disk.
func (p *Parser) ParseSource(path string, src any) (*descriptor.Graph, error) {
	file, err := goparser.ParseFile(p.fset, path, src, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	namespace := ImportPath(filepath.Dir(path))
	if namespace == "" {
		namespace = file.Name.Name
	}

	b := &builder{
		fset:      p.fset,
		graph:     descriptor.NewGraph(namespace, p.opts...),
		namespace: namespace,
		path:      path,
		classes:   make(map[string]*descriptor.Class),
	}

	if err := b.collectTypes(file); err != nil {
		return nil, err
	}
	if err := b.collectFuncs(file); err != nil {
		return nil, err
	}
	b.detectImplementations()

	return b.graph, nil
}

type builder struct {
	fset      *token.FileSet
	graph     *descriptor.Graph
	namespace string
	path      string
	classes   map[string]*descriptor.Class
}

func (b *builder) collectTypes(file *ast.File) error {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok || typeSpec.Assign.IsValid() {
				// aliases carry no methods of their own
				continue
			}

			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}
			if _, err := b.addClass(typeSpec, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) addClass(spec *ast.TypeSpec, doc *ast.CommentGroup) (*descriptor.Class, error) {
	kind := descriptor.KindClass
	if _, ok := spec.Type.(*ast.InterfaceType); ok {
		kind = descriptor.KindInterface
	}

	c := b.newClass(spec.Name.Name, kind)
	c.Summary, c.Description = splitDoc(commentText(doc))
	c.Location = b.location(spec.Pos())
	if _, err := b.graph.AddClass(c); err != nil {
		return nil, err
	}

	switch t := spec.Type.(type) {
	case *ast.StructType:
		b.recordEmbedded(c, t.Fields)
	case *ast.InterfaceType:
		if err := b.addInterfaceMethods(c, t.Methods); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (b *builder) newClass(name string, kind descriptor.ClassKind) *descriptor.Class {
	c := descriptor.NewClass(name, kind)
	c.FQSEN = `\` + b.namespace + `\` + name
	if !ast.IsExported(name) {
		c.Visibility = descriptor.Private
	}
	b.classes[name] = c
	return c
}

// recordEmbedded records embedded structs of the same file. Embedded types from
// other packages are skipped, the linker could not resolve them anyway.
func (b *builder) recordEmbedded(c *descriptor.Class, fields *ast.FieldList) {
	if fields == nil {
		return
	}
	for _, f := range fields.List {
		if len(f.Names) != 0 {
			continue
		}
		name := receiverTypeName(f.Type)
		if name == "" {
			continue
		}
		if c.ParentName == "" {
			c.ParentName = name
		} else {
			c.UsesNames = append(c.UsesNames, name)
		}
	}
}

func (b *builder) addInterfaceMethods(c *descriptor.Class, methods *ast.FieldList) error {
	if methods == nil {
		return nil
	}
	for _, f := range methods.List {
		if len(f.Names) == 0 {
			if ident, ok := f.Type.(*ast.Ident); ok {
				c.InterfaceNames = append(c.InterfaceNames, ident.Name)
			}
			continue
		}

		fn, ok := f.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		for _, name := range f.Names {
			m := b.newMethod(c, name.Name, f.Doc, f.Pos(), fn)
			m.IsAbstract = true
			if err := b.addMethod(c, m, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) collectFuncs(file *ast.File) error {
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		var class *descriptor.Class
		if fn.Recv != nil && len(fn.Recv.List) > 0 {
			typeName := receiverTypeName(fn.Recv.List[0].Type)
			class = b.classes[typeName]
			if class == nil {
				// receiver type declared in another file of the package
				class = b.newClass(typeName, descriptor.KindClass)
				if _, err := b.graph.AddClass(class); err != nil {
					return err
				}
			}
		}

		m := b.newMethod(class, fn.Name.Name, fn.Doc, fn.Pos(), fn.Type)
		if err := b.addMethod(class, m, fn.Type); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) newMethod(class *descriptor.Class, name string, doc *ast.CommentGroup, pos token.Pos, fn *ast.FuncType) *descriptor.Method {
	m := descriptor.NewMethod(name)
	if class != nil {
		m.FQSEN = reference.Method(class.FQSEN, name)
	} else {
		m.FQSEN = `\` + b.namespace + `\` + name + "()"
	}
	if !ast.IsExported(name) {
		m.Visibility = descriptor.Private
	}
	m.Summary, m.Description = splitDoc(commentText(doc))
	m.Location = b.location(pos)
	m.ReturnType = resultType(fn.Results)
	return m
}

func (b *builder) addMethod(class *descriptor.Class, m *descriptor.Method, fn *ast.FuncType) error {
	owner := descriptor.NoHandle
	if class != nil {
		owner = class.GetHandle()
	}
	h, err := b.graph.AddMethod(owner, m)
	if err != nil {
		return err
	}
	return b.addArguments(h, m, fn.Params)
}

// addArguments adds the parameters of fn. Unnamed and blank parameters are
// named after their position ("_0", "_1", ...). Pointer parameters are passed
// by reference; "...T" parameters are variadic with element type T.
func (b *builder) addArguments(h descriptor.Handle, m *descriptor.Method, params *ast.FieldList) error {
	if params == nil {
		return nil
	}

	position := 0
	for _, field := range params.List {
		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{nil}
		}

		for _, ident := range names {
			name := ""
			if ident != nil {
				name = ident.Name
			}
			if name == "" || name == "_" {
				name = fmt.Sprintf("_%d", position)
			}

			arg := descriptor.NewArgument(name)
			arg.FQSEN = reference.Argument(m.FQSEN, name)
			arg.Location = b.location(field.Pos())

			typeExpr := field.Type
			if ellipsis, ok := typeExpr.(*ast.Ellipsis); ok {
				arg.SetVariadic(true)
				typeExpr = ellipsis.Elt
			}
			if _, ok := typeExpr.(*ast.StarExpr); ok {
				arg.SetByReference(true)
			}
			arg.SetType(typeRefFromExpr(typeExpr))

			if _, err := b.graph.AddArgument(h, arg); err != nil {
				return fmt.Errorf("%s: %w", arg.Location, err)
			}
			position++
		}
	}
	return nil
}

// detectImplementations records, for every non-interface class, the interfaces
// of the file whose method names are all declared on the class.
func (b *builder) detectImplementations() {
	classes := b.graph.Classes()
	for _, c := range classes {
		if c.IsInterface() {
			continue
		}

		declared := make(map[string]bool)
		for _, m := range c.GetMethods() {
			declared[m.Name] = true
		}

		for _, iface := range classes {
			if !iface.IsInterface() {
				continue
			}
			methods := iface.GetMethods()
			if len(methods) == 0 {
				continue
			}
			covered := true
			for _, m := range methods {
				if !declared[m.Name] {
					covered = false
					break
				}
			}
			if covered {
				c.InterfaceNames = append(c.InterfaceNames, iface.Name)
			}
		}
	}
}

func (b *builder) location(pos token.Pos) model.Location {
	return model.Location{
		File: b.path,
		Line: b.fset.Position(pos).Line,
	}
}

// commentText extracts text from a comment group.
func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}

// splitDoc splits a doc comment into its first paragraph, joined into one
// line, and the rest.
func splitDoc(text string) (summary, description string) {
	if text == "" {
		return "", ""
	}
	parts := strings.SplitN(text, "\n\n", 2)
	summary = strings.Join(strings.Fields(parts[0]), " ")
	if len(parts) == 2 {
		description = strings.TrimSpace(parts[1])
	}
	return summary, description
}
