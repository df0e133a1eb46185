package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/types"
	"strings"

	"docgen/internal/model"
)

// ParseType parses a Go type expression such as "map[string][]*time.Time".
func ParseType(expr string) (*model.TypeRef, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("parsing type: empty expression")
	}
	node, err := goparser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing type %q: %w", expr, err)
	}
	if err := checkTypeExpr(node); err != nil {
		return nil, fmt.Errorf("parsing type %q: %w", expr, err)
	}
	return typeRefFromExpr(node), nil
}

// checkTypeExpr rejects expressions that are valid Go but do not denote a
// type, such as "int|string" or "f()".
func checkTypeExpr(expr ast.Expr) error {
	switch t := expr.(type) {
	case *ast.Ident, *ast.InterfaceType:
		return nil
	case *ast.SelectorExpr:
		if _, ok := t.X.(*ast.Ident); ok {
			return nil
		}
	case *ast.StarExpr:
		return checkTypeExpr(t.X)
	case *ast.ParenExpr:
		return checkTypeExpr(t.X)
	case *ast.Ellipsis:
		if t.Elt != nil {
			return checkTypeExpr(t.Elt)
		}
	case *ast.ArrayType:
		return checkTypeExpr(t.Elt)
	case *ast.MapType:
		if err := checkTypeExpr(t.Key); err != nil {
			return err
		}
		return checkTypeExpr(t.Value)
	case *ast.ChanType:
		return checkTypeExpr(t.Value)
	case *ast.FuncType:
		for _, list := range []*ast.FieldList{t.Params, t.Results} {
			if list == nil {
				continue
			}
			for _, f := range list.List {
				if err := checkTypeExpr(f.Type); err != nil {
					return err
				}
			}
		}
		return nil
	case *ast.IndexExpr:
		if err := checkTypeExpr(t.X); err != nil {
			return err
		}
		return checkTypeExpr(t.Index)
	case *ast.IndexListExpr:
		if err := checkTypeExpr(t.X); err != nil {
			return err
		}
		for _, idx := range t.Indices {
			if err := checkTypeExpr(idx); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%s is not a type", types.ExprString(expr))
}

// typeRefFromExpr converts an ast.Expr to a TypeRef.
func typeRefFromExpr(expr ast.Expr) *model.TypeRef {
	switch t := expr.(type) {
	case *ast.Ident:
		return &model.TypeRef{
			Kind: model.KindBasic,
			Name: t.Name,
			Raw:  t.Name,
		}

	case *ast.SelectorExpr:
		// Package-qualified type (e.g., time.Time)
		pkg := ""
		if ident, ok := t.X.(*ast.Ident); ok {
			pkg = ident.Name
		}
		return &model.TypeRef{
			Kind:    model.KindNamed,
			Name:    t.Sel.Name,
			Package: pkg,
			Raw:     fmt.Sprintf("%s.%s", pkg, t.Sel.Name),
		}

	case *ast.StarExpr:
		elem := typeRefFromExpr(t.X)
		return &model.TypeRef{
			Kind: model.KindPointer,
			Elem: elem,
			Raw:  "*" + elem.Raw,
		}

	case *ast.ArrayType:
		elem := typeRefFromExpr(t.Elt)
		if t.Len == nil {
			return &model.TypeRef{
				Kind: model.KindSlice,
				Elem: elem,
				Raw:  "[]" + elem.Raw,
			}
		}
		length := "..."
		if lit, ok := t.Len.(*ast.BasicLit); ok {
			length = lit.Value
		}
		return &model.TypeRef{
			Kind: model.KindArray,
			Elem: elem,
			Raw:  fmt.Sprintf("[%s]%s", length, elem.Raw),
		}

	case *ast.MapType:
		key := typeRefFromExpr(t.Key)
		value := typeRefFromExpr(t.Value)
		return &model.TypeRef{
			Kind:  model.KindMap,
			Key:   key,
			Value: value,
			Raw:   fmt.Sprintf("map[%s]%s", key.Raw, value.Raw),
		}

	case *ast.InterfaceType:
		return &model.TypeRef{
			Kind: model.KindInterface,
			Name: "interface{}",
			Raw:  "interface{}",
		}

	case *ast.ChanType:
		elem := typeRefFromExpr(t.Value)
		prefix := "chan "
		switch t.Dir {
		case ast.SEND:
			prefix = "chan<- "
		case ast.RECV:
			prefix = "<-chan "
		}
		return &model.TypeRef{
			Kind: model.KindChan,
			Name: "chan",
			Elem: elem,
			Raw:  prefix + elem.Raw,
		}

	case *ast.FuncType:
		return &model.TypeRef{
			Kind: model.KindFunc,
			Name: "func",
			Raw:  "func" + signature(t),
		}

	case *ast.Ellipsis:
		elem := typeRefFromExpr(t.Elt)
		return &model.TypeRef{
			Kind: model.KindSlice,
			Elem: elem,
			Raw:  "..." + elem.Raw,
		}

	case *ast.IndexExpr:
		// Generic instantiation with one type argument
		base := typeRefFromExpr(t.X)
		arg := typeRefFromExpr(t.Index)
		base.Raw = fmt.Sprintf("%s[%s]", base.Raw, arg.Raw)
		return base

	case *ast.IndexListExpr:
		base := typeRefFromExpr(t.X)
		args := make([]string, len(t.Indices))
		for i, idx := range t.Indices {
			args[i] = typeRefFromExpr(idx).Raw
		}
		base.Raw = fmt.Sprintf("%s[%s]", base.Raw, strings.Join(args, ", "))
		return base

	case *ast.ParenExpr:
		return typeRefFromExpr(t.X)

	default:
		return &model.TypeRef{
			Kind: model.KindBasic,
			Name: "unknown",
			Raw:  "unknown",
		}
	}
}

// signature renders the parameter and result lists of a func type.
func signature(fn *ast.FuncType) string {
	params := fieldTypes(fn.Params)
	sig := "(" + strings.Join(params, ", ") + ")"

	results := fieldTypes(fn.Results)
	switch len(results) {
	case 0:
	case 1:
		sig += " " + results[0]
	default:
		sig += " (" + strings.Join(results, ", ") + ")"
	}
	return sig
}

func fieldTypes(list *ast.FieldList) []string {
	if list == nil {
		return nil
	}
	var result []string
	for _, f := range list.List {
		raw := typeRefFromExpr(f.Type).Raw
		n := len(f.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			result = append(result, raw)
		}
	}
	return result
}

// resultType converts a result list to a single TypeRef, or nil when the
// function returns nothing.
func resultType(list *ast.FieldList) *model.TypeRef {
	results := fieldTypes(list)
	switch len(results) {
	case 0:
		return nil
	case 1:
		return typeRefFromExpr(list.List[0].Type)
	default:
		raw := "(" + strings.Join(results, ", ") + ")"
		return &model.TypeRef{Kind: model.KindBasic, Name: raw, Raw: raw}
	}
}

// receiverTypeName returns the base type name of a method receiver.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	case *ast.ParenExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	}
	return ""
}
