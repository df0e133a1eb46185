// Package reference parses structural element references such as
// `\Shop\Repository::find()`, `Shop\User::$name` or `Shop\Status::ACTIVE`.
package reference

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Kind of element a reference points at.
type Kind string

const (
	KindClass    Kind = "class"
	KindMethod   Kind = "method"
	KindProperty Kind = "property"
	KindConstant Kind = "constant"
)

// Reference is a parsed element reference.
type Reference struct {
	Global   bool     `parser:"@Backslash?"`
	Segments []string `parser:"@Ident ( Backslash @Ident )*"`
	Member   *Member  `parser:"( Separator @@ )?"`
}

// Member is the part after "::".
type Member struct {
	Property string `parser:"  Dollar @Ident"`
	Name     string `parser:"| @Ident"`
	Call     bool   `parser:"  @Call?"`
}

var refParser = participle.MustBuild[Reference](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Separator", Pattern: `::`},
		{Name: "Call", Pattern: `\(\)`},
		{Name: "Backslash", Pattern: `\\`},
		{Name: "Dollar", Pattern: `\$`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_./-]*`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// Parse parses a reference.
func Parse(s string) (*Reference, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("parsing reference: empty reference")
	}
	ref, err := refParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parsing reference %q: %w", s, err)
	}
	return ref, nil
}

// Kind reports what the reference points at.
func (r *Reference) Kind() Kind {
	switch {
	case r.Member == nil:
		return KindClass
	case r.Member.Property != "":
		return KindProperty
	case r.Member.Call:
		return KindMethod
	default:
		return KindConstant
	}
}

// ClassName returns the class part, e.g. `\Shop\Repository`.
func (r *Reference) ClassName() string {
	name := strings.Join(r.Segments, `\`)
	if r.Global {
		return `\` + name
	}
	return name
}

// ShortName returns the last segment of the class part.
func (r *Reference) ShortName() string {
	if len(r.Segments) == 0 {
		return ""
	}
	return r.Segments[len(r.Segments)-1]
}

// MemberName returns the member name without decoration, or "".
func (r *Reference) MemberName() string {
	if r.Member == nil {
		return ""
	}
	if r.Member.Property != "" {
		return r.Member.Property
	}
	return r.Member.Name
}

// String returns the canonical form of the reference.
func (r *Reference) String() string {
	var b strings.Builder
	b.WriteString(r.ClassName())
	switch r.Kind() {
	case KindMethod:
		b.WriteString("::" + r.Member.Name + "()")
	case KindProperty:
		b.WriteString("::$" + r.Member.Property)
	case KindConstant:
		b.WriteString("::" + r.Member.Name)
	}
	return b.String()
}

// Method formats a method reference for class.
func Method(class, method string) string {
	return class + "::" + method + "()"
}

// Argument formats an argument reference for a method reference.
func Argument(method, argument string) string {
	return method + "::$" + argument
}
