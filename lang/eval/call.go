package eval

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/builtin"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/object"
)

// evalFunctionCall implements the Function call rule (spec §4.3, "Function
// call"), dispatching to a body evaluation or, for builtins, through
// lang/builtin.
func (c *Context) evalFunctionCall(call *ast.FunctionCall) (ast.Expr, error) {
	callee, err := c.EvalExpr(call.Callee)
	if err != nil {
		return nil, err
	}
	ctArgs, err := c.evalExprList(call.CompileTimeArgs)
	if err != nil {
		return nil, err
	}
	rtArgs, err := c.evalExprList(call.RuntimeArgs)
	if err != nil {
		return nil, err
	}

	calleePtr, ok := callee.(*ast.PointerExpr)
	if !ok || !allPointers(ctArgs) || !allPointers(rtArgs) {
		return &ast.FunctionCall{Callee: callee, CompileTimeArgs: ctArgs, RuntimeArgs: rtArgs, Sp: call.Sp}, nil
	}

	calleeObj, ok := c.Mem.Get(memory.Pointer(calleePtr.Addr))
	if !ok {
		return nil, &Error{Kind: ErrInternal, Message: "function call: dangling callee pointer", Span: call.Sp}
	}
	fd, err := object.FunctionFromLiteral(calleeObj)
	if err != nil {
		return nil, withBreadcrumb(err, "resolving callee as a function literal")
	}

	args := append(append([]ast.Expr{}, ctArgs...), rtArgs...)
	params := append(append([]*object.Parameter{}, fd.CompileTimeParameters...), fd.RuntimeParameters...)
	if fd.ThisObject != nil && len(params) > 0 && params[0].Name.Text == "this" {
		args = append([]ast.Expr{&ast.PointerExpr{Addr: int(*fd.ThisObject), Sp: call.Sp}}, args...)
	}

	if len(args) != len(params) {
		return nil, &Error{
			Kind:    ErrArity,
			Message: fmt.Sprintf("%s expects %d argument(s), got %d", fd.Name.Text, len(params), len(args)),
			Span:    call.Sp,
		}
	}
	if err := c.checkArgumentTypes(fd.Name.Text, params, args); err != nil {
		return nil, err
	}

	if fd.Body != nil {
		return c.callWithBody(fd, params, args, callee, ctArgs, rtArgs, call)
	}
	return c.callBuiltin(fd, args, callee, ctArgs, rtArgs, call)
}

func allPointers(exprs []ast.Expr) bool {
	for _, e := range exprs {
		if _, ok := e.(*ast.PointerExpr); !ok {
			return false
		}
	}
	return true
}

func (c *Context) checkArgumentTypes(funcName string, params []*object.Parameter, args []ast.Expr) error {
	for i, param := range params {
		argPtr, ok := args[i].(*ast.PointerExpr)
		if !ok || param.ParameterType == nil {
			continue
		}
		typePtr, ok := param.ParameterType.(*ast.PointerExpr)
		if !ok {
			continue
		}
		if !c.isAssignableTo(memory.Pointer(argPtr.Addr), memory.Pointer(typePtr.Addr)) {
			return &Error{
				Kind: ErrTypeMismatch,
				Message: fmt.Sprintf("%s: cannot pass %s where %s is expected", funcName,
					c.typeDisplayName(memory.Pointer(argPtr.Addr)), c.typeDisplayName(memory.Pointer(typePtr.Addr))),
				Span: args[i].Span(),
			}
		}
	}
	return nil
}

func (c *Context) callWithBody(fd *object.FunctionDeclaration, params []*object.Parameter, args []ast.Expr, callee ast.Expr, ctArgs, rtArgs []ast.Expr, call *ast.FunctionCall) (ast.Expr, error) {
	prev := c.Scopes.SetCurrentScope(fd.InnerScope)
	for i, param := range params {
		if err := c.Scopes.ReassignVariableFrom(fd.InnerScope, param.Name, args[i]); err != nil {
			if err2 := c.Scopes.DeclareNewVariableIn(fd.InnerScope, param.Name, args[i]); err2 != nil {
				c.Scopes.SetCurrentScope(prev)
				return nil, err2
			}
		}
	}
	result, err := c.EvalBlock(fd.Body)
	c.Scopes.SetCurrentScope(prev)
	if err != nil {
		return nil, withBreadcrumb(err, fmt.Sprintf("evaluating body of %q", fd.Name.Text))
	}
	if ptr, ok := result.(*ast.PointerExpr); ok {
		return ptr, nil
	}
	return &ast.FunctionCall{Callee: callee, CompileTimeArgs: ctArgs, RuntimeArgs: rtArgs, Sp: call.Sp}, nil
}

func (c *Context) callBuiltin(fd *object.FunctionDeclaration, args []ast.Expr, callee ast.Expr, ctArgs, rtArgs []ast.Expr, call *ast.FunctionCall) (ast.Expr, error) {
	internalName, hasBuiltin := c.builtinInternalName(fd.Tags)
	if !hasBuiltin {
		return nil, &Error{
			Kind:    ErrBuiltinNotFound,
			Message: fmt.Sprintf("%q has neither a body nor a builtin tag", fd.Name.Text),
			Span:    call.Sp,
		}
	}
	if c.hasSystemSideEffectsTag(fd.Tags) && !c.SideEffectsEnabled() {
		return &ast.Void{Sp: call.Sp}, nil
	}
	if reason, hasRuntimeTag := c.runtimeTagReason(fd.Tags); hasRuntimeTag && !c.warningSuppressed(fd.Tags, WarningRuntimeCallAtCompileTime) {
		c.warn(WarningRuntimeCallAtCompileTime, call.Sp, reason)
	}

	entry, ok := builtin.Lookup(internalName)
	if !ok {
		return nil, &Error{Kind: ErrBuiltinNotFound, Message: fmt.Sprintf("no builtin registered for %q", internalName), Span: call.Sp}
	}
	argPtrs := make([]memory.Pointer, len(args))
	for i, a := range args {
		p := a.(*ast.PointerExpr)
		argPtrs[i] = memory.Pointer(p.Addr)
	}
	result, err := entry.CompileTime(c, argPtrs)
	if err != nil {
		return nil, withBreadcrumb(err, fmt.Sprintf("calling builtin %q", internalName))
	}
	return &ast.PointerExpr{Addr: int(result), Sp: call.Sp}, nil
}
