// Package object implements the literal-convertible domain types (spec
// component G, §4.4): FunctionDeclaration, GroupDeclaration, Either, OneOf,
// RepresentAs and Parameter, each of which round-trips to and from a
// memory.LiteralObject via ToLiteral/FromLiteral.
//
// Every type here also implements ast.Expr, so a domain value can appear
// directly in expression position (e.g. the RHS of a `let` declaration)
// before it has been interned into virtual memory.
package object

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/token"
)

// GroupField is one field of a GroupDeclaration or RepresentAs override
// list: a name with an optional default value and an optional declared
// type (spec §4.4, "GroupDeclaration").
type GroupField struct {
	Name         token.Name
	Value        ast.Expr // nil if the field has no default
	DeclaredType ast.Expr // nil if the field has no explicit type annotation
}

func fieldInitFromGroupField(f GroupField) ast.FieldInit {
	return ast.FieldInit{Name: f.Name, Value: f.Value}
}

// errTypeMismatch builds the standard FromLiteral type-name-mismatch error.
func errTypeMismatch(want, got string) error {
	return fmt.Errorf("cannot rehydrate a %q literal as a %s", got, want)
}

func format(f fmt.State, verb rune, label string) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%s)", verb, label)
		return
	}
	fmt.Fprint(f, label)
}

// walkExprs is a small helper for Walk implementations that need to visit a
// slice of possibly-nil expressions.
func walkExprs(v ast.Visitor, exprs ...ast.Expr) {
	for _, e := range exprs {
		if e != nil {
			ast.Walk(v, e)
		}
	}
}
