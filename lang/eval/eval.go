package eval

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/object"
)

// EvalChunk evaluates a module's top-level declarations in order within the
// file scope (spec §4.3, "Module").
func (c *Context) EvalChunk(chunk *ast.Chunk) (*ast.Chunk, error) {
	prev := c.Scopes.SetCurrentScope(chunk.FileScope)
	defer c.Scopes.SetCurrentScope(prev)

	result, err := c.EvalBlock(chunk.Block)
	if err != nil {
		return nil, withBreadcrumb(err, fmt.Sprintf("evaluating module %q", chunk.Name))
	}
	blk, ok := result.(*ast.Block)
	if !ok {
		blk = &ast.Block{InnerScope: chunk.FileScope, Stmts: []ast.Stmt{&ast.Tail{Value: result, Sp: chunk.Block.Sp}}, Sp: chunk.Block.Sp}
	}
	return &ast.Chunk{Name: chunk.Name, Block: blk, FileScope: chunk.FileScope, EndOfFile: chunk.EndOfFile}, nil
}

// EvalBlock implements the Block rule (spec §4.3): enter the inner scope,
// evaluate each statement in order, and short-circuit to a Pointer the
// moment a Tail statement reduces to one. Scope is restored on every exit
// path via the deferred SetCurrentScope below.
func (c *Context) EvalBlock(b *ast.Block) (ast.Expr, error) {
	prev := c.Scopes.SetCurrentScope(b.InnerScope)
	defer c.Scopes.SetCurrentScope(prev)

	residual := make([]ast.Stmt, 0, len(b.Stmts))
	var tailPointer *ast.PointerExpr
	for _, stmt := range b.Stmts {
		switch s := stmt.(type) {
		case *ast.Tail:
			val, err := c.EvalExpr(s.Value)
			if err != nil {
				return nil, withBreadcrumb(err, "evaluating tail statement")
			}
			if ptr, ok := val.(*ast.PointerExpr); ok {
				tailPointer = ptr
			}
			residual = append(residual, &ast.Tail{Value: val, Sp: s.Sp})
		case *ast.Declaration:
			newStmt, _, err := c.evalDeclaration(s)
			if err != nil {
				return nil, withBreadcrumb(err, fmt.Sprintf("evaluating declaration of %q", s.Name.Text))
			}
			residual = append(residual, newStmt)
		case *ast.ExprStmt:
			val, err := c.EvalExpr(s.Expr)
			if err != nil {
				return nil, withBreadcrumb(err, "evaluating expression statement")
			}
			residual = append(residual, &ast.ExprStmt{Expr: val, Sp: s.Sp})
		case *ast.DefaultExtend:
			val, err := c.EvalExpr(s.Extension)
			if err != nil {
				return nil, withBreadcrumb(err, "evaluating default-extend statement")
			}
			c.Scopes.AddDefaultExtension(val)
			residual = append(residual, &ast.DefaultExtend{Extension: val, Sp: s.Sp})
		default:
			return nil, &Error{Kind: ErrInternal, Message: fmt.Sprintf("eval: unhandled statement type %T", stmt), Span: stmt.Span()}
		}
		if tailPointer != nil {
			return tailPointer, nil
		}
	}

	// Forward references (spec §4.3, "Ordering guarantees"): a declaration
	// may name a variable declared later in the same scope. Re-resolve any
	// declaration that stayed residual on the first pass, since a later
	// declaration in this block may since have become a pointer; repeat
	// until a pass makes no further progress.
	for pass := 0; pass < len(residual); pass++ {
		progressed := false
		for i, stmt := range residual {
			decl, ok := stmt.(*ast.Declaration)
			if !ok {
				continue
			}
			if _, ok := decl.Init.(*ast.PointerExpr); ok {
				continue
			}
			newStmt, wasPointer, err := c.evalDeclaration(decl)
			if err != nil {
				return nil, withBreadcrumb(err, fmt.Sprintf("evaluating declaration of %q", decl.Name.Text))
			}
			residual[i] = newStmt
			if wasPointer {
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	return &ast.Block{InnerScope: b.InnerScope, Stmts: residual, Sp: b.Sp}, nil
}

// evalDeclaration implements the Declaration rule (spec §4.3). It reports
// wasPointer so EvalBlock's forward-reference loop knows whether this pass
// made progress.
func (c *Context) evalDeclaration(d *ast.Declaration) (*ast.Declaration, bool, error) {
	value, err := c.EvalExpr(d.Init)
	if err != nil {
		return nil, false, err
	}

	var declaredType ast.Expr
	if d.DeclaredType != nil {
		dt, err := c.EvalExpr(d.DeclaredType)
		if err != nil {
			return nil, false, err
		}
		declaredType = dt
	}

	tags, err := c.evalExprList(d.Tags)
	if err != nil {
		return nil, false, err
	}

	ptr, isPointer := value.(*ast.PointerExpr)
	if isPointer {
		if typePtr, ok := declaredType.(*ast.PointerExpr); ok {
			if !c.isAssignableTo(memory.Pointer(ptr.Addr), memory.Pointer(typePtr.Addr)) {
				return nil, false, &Error{
					Kind: ErrTypeMismatch,
					Message: fmt.Sprintf("cannot assign %s to %s (declared as %s)",
						c.typeDisplayName(memory.Pointer(ptr.Addr)), d.Name.Text, c.typeDisplayName(memory.Pointer(typePtr.Addr))),
					Span: d.Sp,
				}
			}
		}
		if obj, ok := c.Mem.Get(memory.Pointer(ptr.Addr)); ok {
			if obj.IsAnonymous() {
				obj.Name = d.Name
			}
			if len(tags) > 0 {
				obj.Tags = append(obj.Tags, tags...)
			}
		}
		if err := c.Scopes.ReassignVariableFrom(c.Scopes.Current(), d.Name, ast.Expr(ptr)); err != nil {
			return nil, false, err
		}
	}

	return &ast.Declaration{Name: d.Name, DeclaredType: declaredType, Init: value, Tags: tags, Sp: d.Sp}, isPointer, nil
}

// EvalExpr is the evaluator's top-level dispatch, one rule per ast/object
// variant (spec §4.3, §4.4).
func (c *Context) EvalExpr(e ast.Expr) (ast.Expr, error) {
	if e == nil {
		return nil, nil
	}
	switch n := e.(type) {
	case *ast.PointerExpr:
		return n, nil
	case *ast.Void:
		return n, nil
	case *ast.NameExpr:
		return c.evalName(n)
	case *ast.Block:
		return c.EvalBlock(n)
	case *ast.ObjectConstructor:
		return c.evalObjectConstructor(n)
	case *ast.FieldAccess:
		return c.evalFieldAccess(n)
	case *ast.FunctionCall:
		return c.evalFunctionCall(n)
	case *ast.If:
		return c.evalIf(n)
	case *ast.Match:
		return c.evalMatch(n)
	case *ast.ForEachLoop:
		return c.evalForEach(n)
	case *ast.Unary:
		return c.evalUnary(n)
	case *ast.Run:
		return c.evalRun(n)
	case *object.FunctionDeclaration:
		return c.evalFunctionDeclaration(n)
	case *object.GroupDeclaration:
		return c.evalGroupDeclaration(n)
	case *object.Either:
		return c.evalEither(n)
	case *object.OneOf:
		return c.evalOneOf(n)
	case *object.RepresentAs:
		return c.evalRepresentAs(n)
	case *object.Parameter:
		return c.evalParameter(n)
	default:
		return nil, &Error{Kind: ErrInternal, Message: fmt.Sprintf("eval: unhandled expression type %T", e), Span: e.Span()}
	}
}

// evalName implements the Name rule (spec §4.3, "Name").
func (c *Context) evalName(n *ast.NameExpr) (ast.Expr, error) {
	value, ok := c.Scopes.GetVariable(n.Name)
	if !ok {
		closest := c.Scopes.ClosestVariables(n.Name.Text, 3)
		return nil, &Error{
			Kind:         ErrUnknownName,
			Message:      fmt.Sprintf("unknown name %q", n.Name.Text),
			Span:         n.Name.Span,
			ClosestNames: closest,
		}
	}
	if ptr, ok := value.(*ast.PointerExpr); ok {
		return &ast.PointerExpr{Addr: ptr.Addr, Sp: n.Name.Span}, nil
	}
	return &ast.NameExpr{Name: n.Name}, nil
}

// evalExprList evaluates each element of in independently, used for tag
// lists and OneOf choice lists.
func (c *Context) evalExprList(in []ast.Expr) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(in))
	for i, e := range in {
		v, err := c.EvalExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// isAssignableTo implements the minimal form of
// argument.get_type().is_assignable_to(parameter.type) spec §4.3 calls for:
// identical literals are always assignable (covers exact either-variant
// matches, spec §8 property 8); otherwise two literals are assignable when
// they share a type name, a practical stand-in for a full subtyping lattice
// that this repo's scope does not build out (see DESIGN.md).
func (c *Context) isAssignableTo(value, target memory.Pointer) bool {
	if value == target {
		return true
	}
	valObj, ok1 := c.Mem.Get(value)
	targetObj, ok2 := c.Mem.Get(target)
	if !ok1 || !ok2 {
		return false
	}
	return valObj.TypeName.Text == targetObj.Name.Text || valObj.TypeName.Text == targetObj.TypeName.Text
}

// typeDisplayName renders a type pointer's user-visible name for
// type-mismatch error messages (spec §7, "Type mismatch").
func (c *Context) typeDisplayName(ptr memory.Pointer) string {
	obj, ok := c.Mem.Get(ptr)
	if !ok {
		return "?"
	}
	if obj.Name.Text != "" {
		return obj.Name.Text
	}
	return obj.TypeName.Text
}
