package linker

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/internal/descriptor"
	"docgen/internal/diag"
	"docgen/internal/model"
	"docgen/internal/parser"
)

func init() {
	color.NoColor = true
}

type fixture struct {
	t     *testing.T
	graph *descriptor.Graph
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, graph: descriptor.NewGraph("test")}
}

func (f *fixture) class(name string, kind descriptor.ClassKind, configure func(*descriptor.Class)) *descriptor.Class {
	c := descriptor.NewClass(name, kind)
	c.FQSEN = `\Shop\` + name
	if configure != nil {
		configure(c)
	}
	_, err := f.graph.AddClass(c)
	require.NoError(f.t, err)
	return c
}

// method adds a method whose arguments are given as name/type pairs; an empty
// type leaves the argument untyped.
func (f *fixture) method(c *descriptor.Class, name string, args ...string) *descriptor.Method {
	m := descriptor.NewMethod(name)
	owner := descriptor.NoHandle
	if c != nil {
		owner = c.GetHandle()
		m.FQSEN = c.FQSEN + "::" + name + "()"
	}
	h, err := f.graph.AddMethod(owner, m)
	require.NoError(f.t, err)

	for i := 0; i+1 < len(args); i += 2 {
		a := descriptor.NewArgument(args[i])
		if args[i+1] != "" {
			a.SetType(&model.TypeRef{Kind: model.KindBasic, Name: args[i+1], Raw: args[i+1]})
		}
		_, err := f.graph.AddArgument(h, a)
		require.NoError(f.t, err)
	}
	return m
}

func (f *fixture) link() (Stats, string) {
	var buf bytes.Buffer
	stats := New(f.graph, diag.New(&buf, false)).Link()
	return stats, buf.String()
}

func TestLinkParentOverride(t *testing.T) {
	f := newFixture(t)
	base := f.class("Base", descriptor.KindClass, nil)
	child := f.class("Child", descriptor.KindClass, func(c *descriptor.Class) { c.ParentName = "Base" })
	baseFind := f.method(base, "find", "id", "int", "limit", "int")
	childFind := f.method(child, "find", "limit", "", "id", "")

	stats, out := f.link()

	assert.Empty(t, out)
	assert.Equal(t, Stats{Relations: 1, Methods: 1}, stats)
	assert.Same(t, baseFind, childFind.Inherited())
	assert.Equal(t, "int", childFind.GetArgument("id").GetType().Raw)
	assert.Equal(t, "int", childFind.GetArgument("limit").GetType().Raw)
}

func TestLinkGrandparent(t *testing.T) {
	f := newFixture(t)
	root := f.class("Root", descriptor.KindClass, nil)
	f.class("Middle", descriptor.KindClass, func(c *descriptor.Class) { c.ParentName = "Root" })
	leaf := f.class("Leaf", descriptor.KindClass, func(c *descriptor.Class) { c.ParentName = "Middle" })
	rootRun := f.method(root, "run", "ctx", "Context")
	leafRun := f.method(leaf, "run", "ctx", "")

	f.link()

	assert.Same(t, rootRun, leafRun.Inherited())
	assert.Equal(t, "Context", leafRun.GetArgument("ctx").GetType().Raw)
}

func TestLinkTraitBeforeParent(t *testing.T) {
	f := newFixture(t)
	base := f.class("Base", descriptor.KindClass, nil)
	trait := f.class("Loggable", descriptor.KindTrait, nil)
	child := f.class("Child", descriptor.KindClass, func(c *descriptor.Class) {
		c.ParentName = "Base"
		c.UsesNames = []string{"Loggable"}
	})
	f.method(base, "log", "message", "string")
	traitLog := f.method(trait, "log", "message", "Stringer")
	childLog := f.method(child, "log", "message", "")

	f.link()

	assert.Same(t, traitLog, childLog.Inherited())
	assert.Equal(t, "Stringer", childLog.GetArgument("message").GetType().Raw)
}

func TestLinkParentBeforeInterface(t *testing.T) {
	f := newFixture(t)
	iface := f.class("Repository", descriptor.KindInterface, nil)
	base := f.class("Base", descriptor.KindClass, nil)
	child := f.class("Child", descriptor.KindClass, func(c *descriptor.Class) {
		c.ParentName = "Base"
		c.InterfaceNames = []string{"Repository"}
	})
	f.method(iface, "find", "id", "int")
	baseFind := f.method(base, "find", "id", "int64")
	childFind := f.method(child, "find", "id", "")

	f.link()

	assert.Same(t, baseFind, childFind.Inherited())
}

func TestLinkExtendedInterface(t *testing.T) {
	f := newFixture(t)
	reader := f.class("Reader", descriptor.KindInterface, nil)
	f.class("ReadCloser", descriptor.KindInterface, func(c *descriptor.Class) { c.InterfaceNames = []string{"Reader"} })
	file := f.class("File", descriptor.KindClass, func(c *descriptor.Class) { c.InterfaceNames = []string{"ReadCloser"} })
	read := f.method(reader, "read", "buf", "[]byte")
	fileRead := f.method(file, "read", "buf", "")

	stats, _ := f.link()

	assert.Equal(t, 2, stats.Relations)
	assert.Same(t, read, fileRead.Inherited())
	assert.Equal(t, "[]byte", fileRead.GetArgument("buf").GetType().Raw)
}

func TestLinkExplicitReference(t *testing.T) {
	f := newFixture(t)
	contract := f.class("Contract", descriptor.KindInterface, nil)
	target := f.method(contract, "handle", "event", "Event")

	fn := f.method(nil, "handler", "event", "")
	fn.Inherits = `\Shop\Contract::handle()`

	stats, out := f.link()

	assert.Empty(t, out)
	assert.Equal(t, 1, stats.Methods)
	assert.Same(t, target, fn.Inherited())
	assert.Equal(t, "Event", fn.GetArgument("event").GetType().Raw)
}

func TestLinkBrokenReferences(t *testing.T) {
	tests := []struct {
		name     string
		inherits string
		warning  string
	}{
		{"syntax", "::", "parsing reference"},
		{"not a method", `\Shop\Contract::$name`, "is not a method reference"},
		{"missing class", `\Shop\Missing::handle()`, "class of"},
		{"missing method", `\Shop\Contract::missing()`, "method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.class("Contract", descriptor.KindInterface, nil)
			fn := f.method(nil, "handler", "event", "")
			fn.Inherits = tt.inherits

			stats, out := f.link()

			assert.Equal(t, 1, stats.Unresolved)
			assert.Contains(t, out, tt.warning)
			assert.Nil(t, fn.Inherited())
			assert.Nil(t, fn.GetArgument("event").GetType())
		})
	}
}

func TestLinkUnresolvedNames(t *testing.T) {
	f := newFixture(t)
	child := f.class("Child", descriptor.KindClass, func(c *descriptor.Class) {
		c.ParentName = "Missing"
		c.UsesNames = []string{"NoTrait"}
		c.InterfaceNames = []string{"NoInterface"}
	})
	run := f.method(child, "run", "x", "")

	stats, out := f.link()

	assert.Equal(t, 3, stats.Unresolved)
	assert.Contains(t, out, `\Shop\Child: parent Missing not found`)
	assert.Contains(t, out, "trait NoTrait not found")
	assert.Contains(t, out, "interface NoInterface not found")
	assert.Nil(t, run.Inherited())
	assert.Nil(t, run.GetArgument("x").GetType())
}

func TestLinkSelfParent(t *testing.T) {
	f := newFixture(t)
	f.class("Loop", descriptor.KindClass, func(c *descriptor.Class) { c.ParentName = "Loop" })

	stats, out := f.link()

	assert.Equal(t, 1, stats.Unresolved)
	assert.Contains(t, out, "cannot reference itself")
}

func TestLinkParentCycleTerminates(t *testing.T) {
	f := newFixture(t)
	a := f.class("A", descriptor.KindClass, func(c *descriptor.Class) { c.ParentName = "B" })
	b := f.class("B", descriptor.KindClass, func(c *descriptor.Class) { c.ParentName = "A" })
	aRun := f.method(a, "run", "x", "")
	bRun := f.method(b, "run", "x", "")

	stats, out := f.link()

	assert.Equal(t, 2, stats.Cycles)
	assert.Contains(t, out, "parent chain loops")
	assert.Same(t, bRun, aRun.Inherited())
	assert.Same(t, aRun, bRun.Inherited())
	assert.Nil(t, aRun.GetArgument("x").GetType())
}

func TestLinkKeepsExistingLinks(t *testing.T) {
	f := newFixture(t)
	base := f.class("Base", descriptor.KindClass, nil)
	other := f.class("Other", descriptor.KindClass, nil)
	child := f.class("Child", descriptor.KindClass, func(c *descriptor.Class) { c.ParentName = "Base" })
	f.method(base, "run")
	otherRun := f.method(other, "run")
	childRun := f.method(child, "run")
	require.NoError(t, f.graph.SetInherited(childRun.GetHandle(), otherRun.GetHandle()))

	stats, _ := f.link()

	assert.Equal(t, 0, stats.Methods)
	assert.Same(t, otherRun, childRun.Inherited())
}

func TestLinkParsedGoSource(t *testing.T) {
	src := `package shop

type Store interface {
	Get(key string, fallback ...string) string
}

type base struct{}

func (b *base) Get(key string, fallback ...string) string { return "" }

type Cache struct {
	base
}

func (c *Cache) Get(key string, fallback ...string) string { return "" }
`
	g, err := parser.New().ParseSource(filepath.Join(t.TempDir(), "cache.go"), src)
	require.NoError(t, err)

	stats := New(g, diag.New(&bytes.Buffer{}, false)).Link()

	assert.Equal(t, 0, stats.Unresolved)
	cacheGet := g.ClassByName("Cache").GetMethod("Get")
	baseGet := g.ClassByName("base").GetMethod("Get")
	storeGet := g.ClassByName("Store").GetMethod("Get")
	assert.Same(t, baseGet, cacheGet.Inherited())
	assert.Same(t, storeGet, baseGet.Inherited())
	assert.Equal(t, []*descriptor.Method{baseGet, storeGet}, cacheGet.Ancestors())
}
