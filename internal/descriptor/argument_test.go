package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/internal/model"
)

type fakeMethod struct {
	name      string
	inherited MethodInterface
	args      []ArgumentInterface
}

func (m *fakeMethod) GetName() string                      { return m.name }
func (m *fakeMethod) GetInheritedElement() MethodInterface { return m.inherited }
func (m *fakeMethod) GetArguments() []ArgumentInterface    { return m.args }

// onceLink fails the test when the argument asks for its method more than once.
type onceLink struct {
	t      *testing.T
	method MethodInterface
	calls  int
}

func (l *onceLink) Method() (MethodInterface, error) {
	l.calls++
	if l.calls > 1 {
		l.t.Errorf("method link queried %d times", l.calls)
	}
	return l.method, nil
}

type countingNotifier struct {
	notices []string
}

func (n *countingNotifier) Deprecated(symbol, replacement string) {
	n.notices = append(n.notices, symbol+"->"+replacement)
}

func typeRef(name string) *model.TypeRef {
	return &model.TypeRef{Kind: model.KindBasic, Name: name, Raw: name}
}

func strPtr(s string) *string {
	return &s
}

func argWithType(name string, t *model.TypeRef) *Argument {
	a := NewArgument(name)
	a.SetType(t)
	return a
}

func TestArgumentDefaults(t *testing.T) {
	a := NewArgument("id")

	assert.Equal(t, "id", a.GetName())
	assert.False(t, a.IsByReference())
	assert.False(t, a.IsVariadic())
	assert.Nil(t, a.GetDefault())
	assert.Nil(t, a.GetType())
	assert.Equal(t, NoHandle, a.GetHandle())
}

func TestArgumentFlagsAreIndependent(t *testing.T) {
	a := NewArgument("values")

	a.SetByReference(true)
	assert.True(t, a.IsByReference())
	assert.False(t, a.IsVariadic())

	b := NewArgument("values")
	b.SetVariadic(true)
	assert.True(t, b.IsVariadic())
	assert.False(t, b.IsByReference())
}

func TestArgumentDefaultValue(t *testing.T) {
	a := NewArgument("limit")

	a.SetDefault(strPtr("10"))
	require.NotNil(t, a.GetDefault())
	assert.Equal(t, "10", *a.GetDefault())

	a.SetDefault(nil)
	assert.Nil(t, a.GetDefault())
}

func TestArgumentLocalTypeWins(t *testing.T) {
	local := typeRef("int")
	a := argWithType("id", local)
	a.SetMethodLink(&onceLink{t: t, method: &fakeMethod{
		inherited: &fakeMethod{args: []ArgumentInterface{argWithType("id", typeRef("string"))}},
	}})

	assert.Same(t, local, a.GetType())

	a.SetMethodLink(nil)
	assert.Same(t, local, a.GetType())
}

func TestArgumentInheritsTypeOnce(t *testing.T) {
	inheritedType := typeRef("int")
	parent := &fakeMethod{name: "find", args: []ArgumentInterface{
		argWithType("other", typeRef("string")),
		argWithType("id", inheritedType),
	}}
	link := &onceLink{t: t, method: &fakeMethod{name: "find", inherited: parent}}

	a := NewArgument("id")
	a.SetMethodLink(link)

	assert.Same(t, inheritedType, a.GetType())
	assert.Same(t, inheritedType, a.GetType())
	assert.Equal(t, 1, link.calls)
}

func TestArgumentInheritanceDoesNotMutateAncestor(t *testing.T) {
	ancestor := NewArgument("id")
	parent := &fakeMethod{args: []ArgumentInterface{ancestor}}

	a := NewArgument("id")
	a.SetMethodLink(&onceLink{t: t, method: &fakeMethod{inherited: parent}})
	assert.Nil(t, a.GetType())

	ancestor.SetType(typeRef("int"))
	a.SetMethodLink(&onceLink{t: t, method: &fakeMethod{inherited: parent}})
	assert.Equal(t, "int", a.GetType().Raw)

	a.SetType(typeRef("float64"))
	assert.Equal(t, "int", ancestor.GetType().Raw)
}

func TestArgumentWithoutOwnerResolvesToNil(t *testing.T) {
	a := NewArgument("id")

	assert.NotPanics(t, func() {
		assert.Nil(t, a.GetType())
	})
	assert.Nil(t, a.GetInheritedElement())

	_, err := a.Method()
	assert.ErrorIs(t, err, ErrNoOwner)
}

func TestArgumentOwnerWithoutInheritedMethod(t *testing.T) {
	a := NewArgument("id")
	a.SetMethodLink(&onceLink{t: t, method: &fakeMethod{name: "find"}})

	assert.Nil(t, a.GetType())
	assert.Nil(t, a.GetInheritedElement())
}

func TestArgumentNoMatchingName(t *testing.T) {
	parent := &fakeMethod{args: []ArgumentInterface{argWithType("ID", typeRef("int")), argWithType("userId", typeRef("int"))}}
	a := NewArgument("id")
	a.SetMethodLink(&onceLink{t: t, method: &fakeMethod{inherited: parent}})

	assert.Nil(t, a.GetType())
}

func TestArgumentMatchesByNameNotPosition(t *testing.T) {
	parent := &fakeMethod{args: []ArgumentInterface{
		argWithType("b", typeRef("string")),
		argWithType("a", typeRef("int")),
	}}
	a := NewArgument("a")
	a.SetMethodLink(&onceLink{t: t, method: &fakeMethod{inherited: parent}})

	inherited := a.GetInheritedElement()
	require.NotNil(t, inherited)
	assert.Equal(t, "a", inherited.GetName())
	assert.Equal(t, "int", inherited.GetType().Raw)
}

func TestArgumentGetInheritedElementDoesNotCache(t *testing.T) {
	parent := &fakeMethod{args: []ArgumentInterface{argWithType("id", typeRef("int"))}}
	a := NewArgument("id")
	a.SetMethodLink(&onceLink{t: t, method: &fakeMethod{inherited: parent}})

	require.NotNil(t, a.GetInheritedElement())
	a.SetMethodLink(nil)
	assert.Nil(t, a.GetType())
}

func TestArgumentSetTypeOverwritesInherited(t *testing.T) {
	parent := &fakeMethod{args: []ArgumentInterface{argWithType("id", typeRef("int"))}}
	a := NewArgument("id")
	a.SetMethodLink(&onceLink{t: t, method: &fakeMethod{inherited: parent}})
	require.Equal(t, "int", a.GetType().Raw)

	replacement := typeRef("string")
	a.SetType(replacement)
	assert.Same(t, replacement, a.GetType())

	a.SetType(replacement)
	assert.Same(t, replacement, a.GetType())
}

func TestArgumentMissingOwnerInGraph(t *testing.T) {
	g := NewGraph("test")
	a := NewArgument("id")
	a.SetMethodLink(graphLink{graph: g, method: Handle(42)})

	_, err := a.Method()
	assert.ErrorIs(t, err, ErrUnknownHandle)
	assert.Nil(t, a.GetType())
}

// typedNilLink returns a nil *Method wrapped in a non-nil interface.
type typedNilLink struct{}

func (typedNilLink) Method() (MethodInterface, error) {
	var m *Method
	return m, nil
}

func TestArgumentTypedNilOwner(t *testing.T) {
	a := NewArgument("id")
	a.SetNotifier(&countingNotifier{})
	a.SetMethodLink(typedNilLink{})

	assert.NotPanics(t, func() {
		assert.Nil(t, a.GetType())
		assert.Nil(t, a.GetInheritedElement())
		assert.Equal(t, []*model.TypeRef{}, a.GetTypes())
	})
}

func TestArgumentTypedNilInheritedMethod(t *testing.T) {
	var parent *Method
	a := NewArgument("id")
	a.SetMethodLink(&onceLink{t: t, method: &fakeMethod{inherited: parent}})

	assert.NotPanics(t, func() {
		assert.Nil(t, a.GetType())
	})
}

func TestNilMethodAccessors(t *testing.T) {
	var m *Method

	assert.Nil(t, m.Inherited())
	assert.Nil(t, m.GetInheritedElement())
	assert.Nil(t, m.GetClass())
	assert.Empty(t, m.Arguments())
	assert.Empty(t, m.GetArguments())
	assert.Nil(t, m.GetArgument("id"))
	assert.Nil(t, m.Ancestors())
	assert.Equal(t, NoHandle, m.GetHandle())
	assert.True(t, m.IsFunction())
}

func TestArgumentGetTypes(t *testing.T) {
	n := &countingNotifier{}

	a := NewArgument("id")
	a.SetNotifier(n)
	types := a.GetTypes()
	assert.NotNil(t, types)
	assert.Empty(t, types)
	assert.Len(t, n.notices, 1)

	a.SetType(typeRef("int"))
	types = a.GetTypes()
	require.Len(t, types, 1)
	assert.Same(t, a.GetType(), types[0])
	assert.Len(t, n.notices, 2)

	assert.Equal(t, "Argument.GetTypes->Argument.GetType", n.notices[0])
}
