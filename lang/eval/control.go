package eval

import (
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
)

// asResidualBlock wraps a non-Block evaluation result (a Pointer or other
// residual expression) back into a one-statement Tail block, so control-flow
// rules that must always produce a *ast.Block for their branches (If,
// ForEachLoop) can treat "fully reduced" and "still residual" uniformly.
func asResidualBlock(value ast.Expr, original *ast.Block) *ast.Block {
	if b, ok := value.(*ast.Block); ok {
		return b
	}
	return &ast.Block{InnerScope: original.InnerScope, Stmts: []ast.Stmt{&ast.Tail{Value: value, Sp: original.Sp}}, Sp: original.Sp}
}

// isTruePointer reports whether e is exactly the prelude's Boolean true
// singleton (spec §4.3, "If": "reduces to the global true pointer").
func (c *Context) isTruePointer(e ast.Expr) bool {
	ptr, ok := e.(*ast.PointerExpr)
	return ok && memory.Pointer(ptr.Addr) == c.TruePointer
}

// evalIf implements the If rule (spec §4.3, "If") together with the
// side-effect suppression design note (spec §5, "Side-effect stack"): once
// the condition is not statically true, both branches are folded as far as
// possible with side effects disabled, and a residual If is returned.
func (c *Context) evalIf(n *ast.If) (ast.Expr, error) {
	cond, err := c.EvalExpr(n.Cond)
	if err != nil {
		return nil, err
	}

	if c.isTruePointer(cond) {
		pop := c.PushSideEffects(true)
		defer pop()
		return c.EvalBlock(n.True)
	}

	pop := c.PushSideEffects(false)
	defer pop()

	trueResult, err := c.EvalBlock(n.True)
	if err != nil {
		return nil, err
	}
	trueBlock := asResidualBlock(trueResult, n.True)

	var falseBlock *ast.Block
	if n.False != nil {
		falseResult, err := c.EvalBlock(n.False)
		if err != nil {
			return nil, err
		}
		falseBlock = asResidualBlock(falseResult, n.False)
	}

	return &ast.If{Cond: cond, True: trueBlock, False: falseBlock, Sp: n.Sp}, nil
}

// evalMatch implements the Match rule (spec §4.3, "Match").
func (c *Context) evalMatch(m *ast.Match) (ast.Expr, error) {
	scrutinee, err := c.EvalExpr(m.Scrutinee)
	if err != nil {
		return nil, err
	}
	scrutPtr, scrutineeKnown := scrutinee.(*ast.PointerExpr)

	branches := make([]ast.MatchBranch, len(m.Branches))
	for i, b := range m.Branches {
		t, err := c.EvalExpr(b.Type)
		if err != nil {
			return nil, err
		}
		branches[i] = ast.MatchBranch{Type: t, Bind: b.Bind, Body: b.Body}

		if !scrutineeKnown {
			continue
		}
		typePtr, ok := t.(*ast.PointerExpr)
		if !ok {
			continue
		}
		if !c.isAssignableTo(memory.Pointer(scrutPtr.Addr), memory.Pointer(typePtr.Addr)) {
			continue
		}
		if b.Bind != nil {
			if err := c.Scopes.DeclareNewVariableIn(b.Body.InnerScope, *b.Bind, scrutinee); err != nil {
				return nil, err
			}
		}
		return c.EvalBlock(b.Body)
	}

	return &ast.Match{Scrutinee: scrutinee, Branches: branches, Sp: m.Sp}, nil
}

// evalForEach implements the ForEach rule (spec §4.3, "ForEach"). List
// literals store their elements as an internal pointer list keyed "elements"
// (SPEC_FULL.md addition: spec.md names List as an iterable literal but
// does not fix its internal encoding).
func (c *Context) evalForEach(l *ast.ForEachLoop) (ast.Expr, error) {
	iterable, err := c.EvalExpr(l.Iterable)
	if err != nil {
		return nil, err
	}

	ptr, ok := iterable.(*ast.PointerExpr)
	if !ok {
		body, err := c.EvalBlock(l.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForEachLoop{Binding: l.Binding, Iterable: iterable, Body: asResidualBlock(body, l.Body), Sp: l.Sp}, nil
	}

	obj, ok := c.Mem.Get(memory.Pointer(ptr.Addr))
	if !ok || obj.TypeName.Text != "List" {
		return &ast.ForEachLoop{Binding: l.Binding, Iterable: iterable, Body: l.Body, Sp: l.Sp}, nil
	}
	elements, ok := obj.InternalFields["elements"].PointerList()
	if !ok {
		return nil, &Error{Kind: ErrInternal, Message: "List literal missing internal field \"elements\"", Span: l.Sp}
	}

	for _, elemPtr := range elements {
		elem := ast.Expr(&ast.PointerExpr{Addr: int(elemPtr), Sp: l.Sp})
		if err := c.Scopes.ReassignVariableFrom(l.Body.InnerScope, l.Binding, elem); err != nil {
			if err2 := c.Scopes.DeclareNewVariableIn(l.Body.InnerScope, l.Binding, elem); err2 != nil {
				return nil, err2
			}
		}
		result, err := c.EvalBlock(l.Body)
		if err != nil {
			return nil, err
		}
		if rp, ok := result.(*ast.PointerExpr); ok {
			return rp, nil
		}
	}
	return &ast.Void{Sp: l.Sp}, nil
}

// evalUnary implements the Unary rule (spec §4.3, "Unary `?`").
func (c *Context) evalUnary(u *ast.Unary) (ast.Expr, error) {
	operand, err := c.EvalExpr(u.Operand)
	if err != nil {
		return nil, err
	}
	if _, ok := operand.(*ast.PointerExpr); !ok {
		return &ast.Unary{Op: u.Op, Operand: operand, Sp: u.Sp}, nil
	}
	return operand, nil
}

// evalRun implements the Run rule (spec §4.3, "Run"): its single child is
// evaluated with the ordinary rules (so `run (1 + 2)` folds its argument all
// the way to 3), but the Run node itself never unwraps, preserving `run 3`
// rather than collapsing to a bare `3` (spec §8 property 12).
func (c *Context) evalRun(r *ast.Run) (ast.Expr, error) {
	inner, err := c.EvalExpr(r.Inner)
	if err != nil {
		return nil, err
	}
	return &ast.Run{Inner: inner, Sp: r.Sp}, nil
}
