package ast

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

func (*Block) expr()            {}
func (*NameExpr) expr()         {}
func (*ObjectConstructor) expr() {}
func (*FieldAccess) expr()      {}
func (*FunctionCall) expr()     {}
func (*If) expr()               {}
func (*Match) expr()            {}
func (*ForEachLoop) expr()      {}
func (*Unary) expr()            {}
func (*Run) expr()              {}
func (*PointerExpr) expr()      {}
func (*Void) expr()             {}

// Block is a sequence of statements evaluated in its own inner scope. If the
// trailing Tail statement reduces to a Pointer, that pointer is the block's
// value; otherwise a residual Block is produced.
type Block struct {
	InnerScope scope.ID
	Stmts      []Stmt
	Sp         token.Span
}

func (b *Block) Span() token.Span { return b.Sp }
func (b *Block) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("block {%d stmts}", len(b.Stmts)))
}
func (b *Block) Walk(v Visitor) {
	for _, s := range b.Stmts {
		Walk(v, s)
	}
}

// NameExpr looks up an identifier in the current scope.
type NameExpr struct {
	Name token.Name
}

func (n *NameExpr) Span() token.Span { return n.Name.Span }
func (n *NameExpr) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("name %s", n.Name.Text))
}
func (n *NameExpr) Walk(Visitor) {}

// FieldInit is one field/value pair in an ObjectConstructor.
type FieldInit struct {
	Name  token.Name
	Value Expr
	Tags  []Expr
}

// ObjectConstructor builds an instance of a group (or the compiler-internal
// Object/Module/Group types) from named field initializers.
type ObjectConstructor struct {
	Type   Expr // the group (or Group/Module/Object) being constructed
	Fields []FieldInit
	Sp     token.Span
}

func (o *ObjectConstructor) Span() token.Span { return o.Sp }
func (o *ObjectConstructor) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("object constructor {%d fields}", len(o.Fields)))
}
func (o *ObjectConstructor) Walk(v Visitor) {
	if o.Type != nil {
		Walk(v, o.Type)
	}
	for _, fi := range o.Fields {
		if fi.Value != nil {
			Walk(v, fi.Value)
		}
		for _, t := range fi.Tags {
			Walk(v, t)
		}
	}
}

// FieldAccessKind selects the dispatch policy for the '.' operator,
// mirroring LiteralObject.field_access_type.
type FieldAccessKind int

const (
	AccessNormal FieldAccessKind = iota
	AccessEither
	AccessGroup
)

// FieldAccess is a '.' expression, e.g. x.y.
type FieldAccess struct {
	Receiver Expr
	Field    token.Name
	Sp       token.Span
}

func (a *FieldAccess) Span() token.Span { return a.Sp }
func (a *FieldAccess) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("field access .%s", a.Field.Text))
}
func (a *FieldAccess) Walk(v Visitor) { Walk(v, a.Receiver) }

// FunctionCall is a call expression. CompileTimeArgs and RuntimeArgs are
// kept distinct because a call only reduces to a Pointer once every
// compile-time argument is known and, separately, drives transpilation to
// runtime code whenever any runtime argument is not.
type FunctionCall struct {
	Callee          Expr
	CompileTimeArgs []Expr
	RuntimeArgs     []Expr
	Sp              token.Span
}

func (c *FunctionCall) Span() token.Span { return c.Sp }
func (c *FunctionCall) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("call {%d comptime, %d runtime args}", len(c.CompileTimeArgs), len(c.RuntimeArgs)))
}
func (c *FunctionCall) Walk(v Visitor) {
	Walk(v, c.Callee)
	for _, a := range c.CompileTimeArgs {
		Walk(v, a)
	}
	for _, a := range c.RuntimeArgs {
		Walk(v, a)
	}
}

// If is a conditional expression. False is nil if there is no else branch.
type If struct {
	Cond  Expr
	True  *Block
	False *Block
	Sp    token.Span
}

func (i *If) Span() token.Span { return i.Sp }
func (i *If) Format(f fmt.State, verb rune) { format(f, verb, "if") }
func (i *If) Walk(v Visitor) {
	Walk(v, i.Cond)
	if i.True != nil {
		Walk(v, i.True)
	}
	if i.False != nil {
		Walk(v, i.False)
	}
}

// MatchBranch is one arm of a Match expression: a declared type to test the
// scrutinee's assignability against, an optional bound name, and a body.
type MatchBranch struct {
	Type Expr
	Bind *token.Name
	Body *Block
}

// Match evaluates its scrutinee and dispatches to the first branch whose
// declared type the scrutinee is assignable to.
type Match struct {
	Scrutinee Expr
	Branches  []MatchBranch
	Sp        token.Span
}

func (m *Match) Span() token.Span { return m.Sp }
func (m *Match) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("match {%d branches}", len(m.Branches)))
}
func (m *Match) Walk(v Visitor) {
	Walk(v, m.Scrutinee)
	for _, b := range m.Branches {
		Walk(v, b.Type)
		Walk(v, b.Body)
	}
}

// ForEachLoop iterates a List literal, binding each element to Binding in
// the body's inner scope.
type ForEachLoop struct {
	Binding  token.Name
	Iterable Expr
	Body     *Block
	Sp       token.Span
}

func (l *ForEachLoop) Span() token.Span { return l.Sp }
func (l *ForEachLoop) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("foreach %s", l.Binding.Text))
}
func (l *ForEachLoop) Walk(v Visitor) {
	Walk(v, l.Iterable)
	Walk(v, l.Body)
}

// UnaryOp identifies the operator of a Unary expression.
type UnaryOp int

const (
	// UnaryOptional is the '?' operator. The evaluator reduces its operand and
	// returns the operand's pointer unchanged (or a residual Unary); it does
	// not expand to a match against Nothing.
	UnaryOptional UnaryOp = iota
)

// Unary is a prefix unary expression.
type Unary struct {
	Op      UnaryOp
	Operand Expr
	Sp      token.Span
}

func (u *Unary) Span() token.Span { return u.Sp }
func (u *Unary) Format(f fmt.State, verb rune) { format(f, verb, "unary") }
func (u *Unary) Walk(v Visitor) { Walk(v, u.Operand) }

// Run marks a sub-tree that must be deferred to runtime. Its argument is
// evaluated at compile time as far as it will go (so `run (1 + 2)` becomes
// `run 3`); the Run node itself never reduces away.
type Run struct {
	Inner Expr
	Sp    token.Span
}

func (r *Run) Span() token.Span { return r.Sp }
func (r *Run) Format(f fmt.State, verb rune) { format(f, verb, "run") }
func (r *Run) Walk(v Visitor) { Walk(v, r.Inner) }

// PointerExpr is the fully-evaluated form: Addr is the int value of a
// memory.Pointer. ast does not import the memory package (to avoid an
// import cycle, since memory's LiteralObject internal fields can hold
// Exprs); callers convert with memory.Pointer(expr.Addr).
type PointerExpr struct {
	Addr int
	Sp   token.Span
}

func (p *PointerExpr) Span() token.Span { return p.Sp }
func (p *PointerExpr) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("pointer #%d", p.Addr))
}
func (p *PointerExpr) Walk(Visitor) {}

// Void is the absence of a value (e.g. the result of a suppressed
// side-effecting builtin call).
type Void struct {
	Sp token.Span
}

func (v *Void) Span() token.Span { return v.Sp }
func (v *Void) Format(f fmt.State, verb rune) { format(f, verb, "void") }
func (v *Void) Walk(Visitor)                 {}
