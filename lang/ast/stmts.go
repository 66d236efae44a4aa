package ast

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/token"
)

func (*Declaration) stmt()   {}
func (*Tail) stmt()          {}
func (*ExprStmt) stmt()      {}
func (*DefaultExtend) stmt() {}

// Declaration binds Name to the value of Init in the enclosing scope. If
// Init reduces to a Pointer, the declaration is "structural" and the
// binding is updated to that Pointer.
type Declaration struct {
	Name         token.Name
	DeclaredType Expr // optional explicit type annotation
	Init         Expr
	Tags         []Expr
	Sp           token.Span
}

func (d *Declaration) Span() token.Span { return d.Sp }
func (d *Declaration) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("let %s", d.Name.Text))
}
func (d *Declaration) Walk(v Visitor) {
	if d.DeclaredType != nil {
		Walk(v, d.DeclaredType)
	}
	Walk(v, d.Init)
	for _, t := range d.Tags {
		Walk(v, t)
	}
}

// Tail contributes its Value as the result of the enclosing block or
// function body.
type Tail struct {
	Value Expr
	Sp    token.Span
}

func (t *Tail) Span() token.Span              { return t.Sp }
func (t *Tail) Format(f fmt.State, verb rune) { format(f, verb, "tail") }
func (t *Tail) Walk(v Visitor)                { Walk(v, t.Value) }

// ExprStmt is an expression used as a statement (its value, if any, is
// discarded), valid for function calls run for side effects.
type ExprStmt struct {
	Expr Expr
	Sp   token.Span
}

func (e *ExprStmt) Span() token.Span              { return e.Sp }
func (e *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, "expr stmt") }
func (e *ExprStmt) Walk(v Visitor)                { Walk(v, e.Expr) }

// DefaultExtend registers an ad-hoc conformance (a RepresentAs-shaped
// extension) as a default in the enclosing scope, consulted by field access
// when a field is absent from the receiver's own group.
type DefaultExtend struct {
	Extension Expr
	Sp        token.Span
}

func (d *DefaultExtend) Span() token.Span              { return d.Sp }
func (d *DefaultExtend) Format(f fmt.State, verb rune) { format(f, verb, "default extend") }
func (d *DefaultExtend) Walk(v Visitor)                { Walk(v, d.Extension) }
