package generator

import (
	"strings"
	"text/template"

	"github.com/google/uuid"

	"docgen/internal/config"
	"docgen/internal/descriptor"
	"docgen/internal/model"
)

// untyped is shown for arguments whose type could not be resolved.
const untyped = "mixed"

// templateFuncs returns custom template functions.
func templateFuncs(cfg *config.Config) template.FuncMap {
	return template.FuncMap{
		// Type mapping
		"mapType": func(t *model.TypeRef) string {
			return mapType(cfg, t)
		},

		// Argument helpers
		"argType": func(a *descriptor.Argument) *model.TypeRef { return a.GetType() },
		// types keeps templates written against the list-shaped accessor working.
		"types": func(a *descriptor.Argument) []*model.TypeRef { return a.GetTypes() },
		"signature": func(m *descriptor.Method) string {
			return signature(cfg, m)
		},
		"notes": argumentNotes,
		"deref": deref,

		// Descriptor helpers
		"anchor": anchor,
		"methods": func(c *descriptor.Class) []*descriptor.Method {
			return visibleMethods(cfg, c.GetMethods())
		},
		"inheritedMethods": func(c *descriptor.Class) []*descriptor.Method {
			return visibleMethods(cfg, inheritedMethods(c))
		},

		// String manipulation
		"lower":     strings.ToLower,
		"upper":     strings.ToUpper,
		"trim":      strings.TrimSpace,
		"replace":   strings.ReplaceAll,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,

		// Type helpers
		"isSlice":     func(t *model.TypeRef) bool { return t != nil && t.Kind == model.KindSlice },
		"isArray":     func(t *model.TypeRef) bool { return t != nil && t.Kind == model.KindArray },
		"isMap":       func(t *model.TypeRef) bool { return t != nil && t.Kind == model.KindMap },
		"isPointer":   func(t *model.TypeRef) bool { return t != nil && t.Kind == model.KindPointer },
		"isBasic":     func(t *model.TypeRef) bool { return t != nil && t.Kind == model.KindBasic },
		"isInterface": func(t *model.TypeRef) bool { return t != nil && t.Kind == model.KindInterface },
		"elemType": func(t *model.TypeRef) *model.TypeRef {
			if t == nil {
				return nil
			}
			return t.Elem
		},

		// List helpers
		"join": strings.Join,

		// Conditional helpers
		"ternary": ternary,

		// Misc
		"notLast": func(i, length int) bool { return i < length-1 },
	}
}

// mapType maps a type to its display form.
func mapType(cfg *config.Config, t *model.TypeRef) string {
	if t == nil {
		return untyped
	}

	// Check for exact raw match first
	if mapped := cfg.MapType(t.Raw); mapped != t.Raw {
		return mapped
	}

	// Check for full name match (package.Type)
	if t.Package != "" {
		fullName := t.FullName()
		if mapped := cfg.MapType(fullName); mapped != fullName {
			return mapped
		}
	}

	// Handle composite types
	switch t.Kind {
	case model.KindSlice:
		if t.Elem != nil {
			return "[]" + mapType(cfg, t.Elem)
		}
	case model.KindMap:
		if t.Key != nil && t.Value != nil {
			return "map[" + mapType(cfg, t.Key) + "]" + mapType(cfg, t.Value)
		}
	case model.KindPointer:
		if t.Elem != nil {
			return "*" + mapType(cfg, t.Elem)
		}
	}

	if t.Raw != "" {
		return t.Raw
	}
	return t.Name
}

// signature renders a method as name(arg type, ...) result.
func signature(cfg *config.Config, m *descriptor.Method) string {
	args := m.Arguments()
	parts := make([]string, len(args))
	for i, a := range args {
		var b strings.Builder
		if a.IsByReference() {
			b.WriteString("&")
		}
		b.WriteString(a.Name)
		b.WriteString(" ")
		if a.IsVariadic() {
			b.WriteString("...")
		}
		b.WriteString(mapType(cfg, a.GetType()))
		if def := a.GetDefault(); def != nil {
			b.WriteString(" = " + *def)
		}
		parts[i] = b.String()
	}

	sig := m.Name + "(" + strings.Join(parts, ", ") + ")"
	if m.ReturnType != nil {
		sig += " " + mapType(cfg, m.ReturnType)
	}
	return sig
}

// argumentNotes lists the flags of an argument for tables.
func argumentNotes(a *descriptor.Argument) string {
	var notes []string
	if a.IsVariadic() {
		notes = append(notes, "variadic")
	}
	if a.IsByReference() {
		notes = append(notes, "by reference")
	}
	if a.GetInheritedElement() != nil {
		notes = append(notes, "inherited")
	}
	return strings.Join(notes, ", ")
}

// anchor returns a stable identifier for an element name.
func anchor(fqsen string) string {
	return "el-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(fqsen)).String()
}

// deref returns the pointed-to string or "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ternary returns a if condition is true, else b.
func ternary(condition bool, a, b string) string {
	if condition {
		return a
	}
	return b
}
