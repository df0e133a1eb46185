// Package model defines the value types shared by descriptors: type references,
// imports and source locations.
package model

import "fmt"

// TypeKind represents the category of a type reference.
type TypeKind string

const (
	KindNamed     TypeKind = "named"
	KindBasic     TypeKind = "basic"
	KindSlice     TypeKind = "slice"
	KindArray     TypeKind = "array"
	KindMap       TypeKind = "map"
	KindPointer   TypeKind = "pointer"
	KindInterface TypeKind = "interface"
	KindFunc      TypeKind = "func"
	KindChan      TypeKind = "chan"
)

// Import represents an import statement of an analyzed file.
type Import struct {
	Alias string // Optional alias (empty if none)
	Path  string // Import path
}

// Location points at the declaration of an element.
type Location struct {
	File string
	Line int
}

// String renders the location as file:line, or just the file when the line is unknown.
func (l Location) String() string {
	if l.Line > 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

// TypeRef is a normalized type. Descriptors store and forward it without
// interpreting it.
type TypeRef struct {
	Kind    TypeKind // Type category
	Name    string   // Type name (for named/basic types)
	Package string   // Package qualifier (e.g., "time" for time.Time)
	Elem    *TypeRef // Element type (for slice, array, pointer, chan)
	Key     *TypeRef // Key type (for maps)
	Value   *TypeRef // Value type (for maps)
	Raw     string   // Source representation
}

// FullName returns the qualified name of a TypeRef (e.g., "time.Time").
func (t *TypeRef) FullName() string {
	if t == nil {
		return ""
	}
	if t.Package != "" {
		return t.Package + "." + t.Name
	}
	return t.Name
}

// String returns the raw form of the type.
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	return t.Raw
}
