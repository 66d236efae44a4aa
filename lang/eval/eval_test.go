package eval_test

import (
	"testing"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/eval"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/object"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func name(s string) token.Name { return token.NewName(s, token.Unknown()) }

func numberLit(ctx *eval.Context, v float64) *ast.PointerExpr {
	obj := memory.NewLiteralObject(token.Synthetic("Number"), ctx.Scopes.Current(), token.Unknown())
	obj.InternalFields["value"] = memory.NumberField(v)
	return &ast.PointerExpr{Addr: int(ctx.Mem.Store(obj))}
}

func textLit(ctx *eval.Context, v string) *ast.PointerExpr {
	obj := memory.NewLiteralObject(token.Synthetic("Text"), ctx.Scopes.Current(), token.Unknown())
	obj.InternalFields["value"] = memory.TextField(v)
	return &ast.PointerExpr{Addr: int(ctx.Mem.Store(obj))}
}

// builtinTag builds a BuiltinTag literal pointer naming internalName, the
// shape lang/eval/tags.go's builtinInternalName reads back.
func builtinTag(ctx *eval.Context, internalName string) ast.Expr {
	obj := memory.NewLiteralObject(token.Synthetic("BuiltinTag"), ctx.Scopes.Current(), token.Unknown())
	obj.SetField(token.Synthetic("internal_name"), memory.Pointer(textLit(ctx, internalName).Addr))
	return &ast.PointerExpr{Addr: int(ctx.Mem.Store(obj))}
}

func systemSideEffectsTag(ctx *eval.Context) ast.Expr {
	obj := memory.NewLiteralObject(token.Synthetic("SystemSideEffects"), ctx.Scopes.Current(), token.Unknown())
	return &ast.PointerExpr{Addr: int(ctx.Mem.Store(obj))}
}

// newBlock wraps stmts in a one-off Block within its own child scope of parent.
func newBlock(ctx *eval.Context, parent scope.ID, stmts ...ast.Stmt) *ast.Block {
	prev := ctx.Scopes.SetCurrentScope(parent)
	inner := ctx.Scopes.EnterNewScope(scope.Block, nil)
	ctx.Scopes.SetCurrentScope(prev)
	return &ast.Block{InnerScope: inner, Stmts: stmts}
}

func TestEvalChunk_BuiltinArithmeticFolds(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	fileScope := ctx.Scopes.EnterNewScope(scope.File, nil)
	ctx.Scopes.SetCurrentScope(0)

	plus := &object.FunctionDeclaration{
		RuntimeParameters: []*object.Parameter{
			{Name: name("a"), OuterScope: fileScope},
			{Name: name("b"), OuterScope: fileScope},
		},
		Tags:       []ast.Expr{builtinTag(ctx, "Number.plus")},
		OuterScope: fileScope,
		InnerScope: fileScope,
		Name:       name("plus"),
	}
	calleePtr := &ast.PointerExpr{Addr: int(ctx.Mem.Store(plus.ToLiteral()))}

	call := &ast.FunctionCall{
		Callee:      calleePtr,
		RuntimeArgs: []ast.Expr{numberLit(ctx, 1), numberLit(ctx, 2)},
	}
	chunk := &ast.Chunk{
		Name:      "main",
		FileScope: fileScope,
		Block:     &ast.Block{InnerScope: fileScope, Stmts: []ast.Stmt{&ast.Tail{Value: call}}},
	}

	result, err := ctx.EvalChunk(chunk)
	require.NoError(t, err)

	tail, ok := result.Block.Stmts[0].(*ast.Tail)
	require.True(t, ok)
	ptr, ok := tail.Value.(*ast.PointerExpr)
	require.True(t, ok)

	obj, ok := ctx.Mem.Get(memory.Pointer(ptr.Addr))
	require.True(t, ok)
	v, ok := obj.InternalFields["value"].Number()
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestEvalBlock_ForwardReferenceResolves(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	blk := newBlock(ctx, ctx.Scopes.Current())

	// The parser pre-declares every let-bound name in the block's scope
	// before evaluation starts (spec §4.3 "Name": an unresolved lookup
	// returns the name unchanged rather than failing), so the test mirrors
	// that by declaring placeholders for y and x up front.
	require.NoError(t, ctx.Scopes.DeclareNewVariableIn(blk.InnerScope, name("y"), ast.Expr(&ast.NameExpr{Name: name("y")})))
	require.NoError(t, ctx.Scopes.DeclareNewVariableIn(blk.InnerScope, name("x"), ast.Expr(&ast.NameExpr{Name: name("x")})))

	blk.Stmts = []ast.Stmt{
		&ast.Declaration{Name: name("y"), Init: &ast.NameExpr{Name: name("x")}},
		&ast.Declaration{Name: name("x"), Init: numberLit(ctx, 3)},
	}

	result, err := ctx.EvalBlock(blk)
	require.NoError(t, err)
	_, ok := result.(*ast.Block)
	require.True(t, ok)

	yVal, ok := ctx.Scopes.GetVariableFrom(blk.InnerScope, name("y"))
	require.True(t, ok)
	yPtr, ok := yVal.(*ast.PointerExpr)
	require.True(t, ok)

	xVal, ok := ctx.Scopes.GetVariableFrom(blk.InnerScope, name("x"))
	require.True(t, ok)
	xPtr, ok := xVal.(*ast.PointerExpr)
	require.True(t, ok)

	assert.Equal(t, xPtr.Addr, yPtr.Addr)
}

func TestEvalName_UnknownSuggestsClosestNames(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	blk := newBlock(ctx, ctx.Scopes.Current())
	require.NoError(t, ctx.Scopes.DeclareNewVariableIn(blk.InnerScope, name("counter"), numberLit(ctx, 1)))

	blk.Stmts = []ast.Stmt{&ast.Tail{Value: &ast.NameExpr{Name: name("countr")}}}

	_, err := ctx.EvalBlock(blk)
	require.Error(t, err)
	evalErr, ok := err.(*eval.Error)
	require.True(t, ok)
	assert.Equal(t, eval.ErrUnknownName, evalErr.Kind)
	require.NotEmpty(t, evalErr.ClosestNames)
	assert.Equal(t, "counter", evalErr.ClosestNames[0].Text)
}

func TestEvalIf_TrueBranchRunsWithSideEffects(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	var printed []string
	ctx.SetIO(nil, func(s string) { printed = append(printed, s) })

	fileScope := ctx.Scopes.Current()
	printFn := &object.FunctionDeclaration{
		RuntimeParameters: []*object.Parameter{{Name: name("x"), OuterScope: fileScope}},
		Tags:              []ast.Expr{builtinTag(ctx, "terminal.print"), systemSideEffectsTag(ctx)},
		OuterScope:        fileScope,
		InnerScope:        fileScope,
		Name:              name("print"),
	}
	printPtr := &ast.PointerExpr{Addr: int(ctx.Mem.Store(printFn.ToLiteral()))}

	trueCall := &ast.FunctionCall{Callee: printPtr, RuntimeArgs: []ast.Expr{textLit(ctx, "yes")}}
	trueBlock := newBlock(ctx, fileScope, &ast.ExprStmt{Expr: trueCall})

	ifExpr := &ast.If{Cond: &ast.PointerExpr{Addr: int(ctx.TruePointer)}, True: trueBlock}

	_, err := ctx.EvalExpr(ifExpr)
	require.NoError(t, err)
	require.Len(t, printed, 1)
	assert.Contains(t, printed[0], "yes")
}

func TestEvalIf_FalseBranchSuppressesSideEffects(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	var printed []string
	ctx.SetIO(nil, func(s string) { printed = append(printed, s) })

	fileScope := ctx.Scopes.Current()
	printFn := &object.FunctionDeclaration{
		RuntimeParameters: []*object.Parameter{{Name: name("x"), OuterScope: fileScope}},
		Tags:              []ast.Expr{builtinTag(ctx, "terminal.print"), systemSideEffectsTag(ctx)},
		OuterScope:        fileScope,
		InnerScope:        fileScope,
		Name:              name("print"),
	}
	printPtr := &ast.PointerExpr{Addr: int(ctx.Mem.Store(printFn.ToLiteral()))}

	trueCall := &ast.FunctionCall{Callee: printPtr, RuntimeArgs: []ast.Expr{textLit(ctx, "never")}}
	trueBlock := newBlock(ctx, fileScope, &ast.ExprStmt{Expr: trueCall})

	// Cond names a not-yet-resolved runtime flag (a forward-referenced
	// binding, the same residual shape a runtime parameter would have), so
	// evalIf cannot prove it true: both branches fold with side effects
	// disabled rather than running one.
	flagName := name("flag")
	require.NoError(t, ctx.Scopes.DeclareNewVariableIn(fileScope, flagName, ast.Expr(&ast.NameExpr{Name: flagName})))
	ifExpr := &ast.If{Cond: &ast.NameExpr{Name: flagName}, True: trueBlock}

	result, err := ctx.EvalExpr(ifExpr)
	require.NoError(t, err)
	assert.Empty(t, printed)
	_, ok := result.(*ast.If)
	assert.True(t, ok, "an If with a residual condition stays a residual If")
}

func TestEvalMatch_BindsAndDispatchesOnAssignableBranch(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	fileScope := ctx.Scopes.Current()

	redObj := memory.NewLiteralObject(token.Synthetic("Color"), fileScope, token.Unknown())
	redObj.Name = name("Red")
	redPtr := ctx.Mem.Store(redObj)

	either := &object.Either{
		Variants:   []memory.LiteralPair{{Name: name("Red"), Pointer: redPtr}},
		OuterScope: fileScope,
		Name:       name("Color"),
	}
	eitherPtr := &ast.PointerExpr{Addr: int(ctx.Mem.Store(either.ToLiteral()))}

	bind := name("c")
	branchBody := newBlock(ctx, fileScope, &ast.Tail{Value: &ast.NameExpr{Name: bind}})

	match := &ast.Match{
		Scrutinee: &ast.PointerExpr{Addr: int(redPtr)},
		Branches: []ast.MatchBranch{
			{Type: eitherPtr, Bind: &bind, Body: branchBody},
		},
	}

	result, err := ctx.EvalExpr(match)
	require.NoError(t, err)
	ptr, ok := result.(*ast.PointerExpr)
	require.True(t, ok)
	assert.Equal(t, int(redPtr), ptr.Addr)
}

func TestEvalRun_FoldsInnerButPreservesWrapper(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	fileScope := ctx.Scopes.Current()

	plus := &object.FunctionDeclaration{
		RuntimeParameters: []*object.Parameter{
			{Name: name("a"), OuterScope: fileScope},
			{Name: name("b"), OuterScope: fileScope},
		},
		Tags:       []ast.Expr{builtinTag(ctx, "Number.plus")},
		OuterScope: fileScope,
		InnerScope: fileScope,
		Name:       name("plus"),
	}
	calleePtr := &ast.PointerExpr{Addr: int(ctx.Mem.Store(plus.ToLiteral()))}
	call := &ast.FunctionCall{Callee: calleePtr, RuntimeArgs: []ast.Expr{numberLit(ctx, 1), numberLit(ctx, 2)}}

	result, err := ctx.EvalExpr(&ast.Run{Inner: call})
	require.NoError(t, err)

	run, ok := result.(*ast.Run)
	require.True(t, ok, "Run never unwraps, even once its inner expression is fully reduced")
	ptr, ok := run.Inner.(*ast.PointerExpr)
	require.True(t, ok)
	obj, ok := ctx.Mem.Get(memory.Pointer(ptr.Addr))
	require.True(t, ok)
	v, _ := obj.InternalFields["value"].Number()
	assert.Equal(t, 3.0, v)
}

func TestEvalForEach_VisitsEveryElementViaSideEffects(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	var printed []string
	ctx.SetIO(nil, func(s string) { printed = append(printed, s) })

	fileScope := ctx.Scopes.Current()
	printFn := &object.FunctionDeclaration{
		RuntimeParameters: []*object.Parameter{{Name: name("x"), OuterScope: fileScope}},
		Tags:              []ast.Expr{builtinTag(ctx, "terminal.print"), systemSideEffectsTag(ctx)},
		OuterScope:        fileScope,
		InnerScope:        fileScope,
		Name:              name("print"),
	}
	printPtr := &ast.PointerExpr{Addr: int(ctx.Mem.Store(printFn.ToLiteral()))}

	elems := []memory.Pointer{
		memory.Pointer(numberLit(ctx, 1).Addr),
		memory.Pointer(numberLit(ctx, 2).Addr),
		memory.Pointer(numberLit(ctx, 3).Addr),
	}
	listObj := memory.NewLiteralObject(token.Synthetic("List"), fileScope, token.Unknown())
	listObj.InternalFields["elements"] = memory.PointerListField(elems)
	listPtr := &ast.PointerExpr{Addr: int(ctx.Mem.Store(listObj))}

	binding := name("n")
	body := newBlock(ctx, fileScope, &ast.ExprStmt{Expr: &ast.FunctionCall{Callee: printPtr, RuntimeArgs: []ast.Expr{&ast.NameExpr{Name: binding}}}})
	require.NoError(t, ctx.Scopes.DeclareNewVariableIn(body.InnerScope, binding, ast.Expr(&ast.NameExpr{Name: binding})))

	loop := &ast.ForEachLoop{Binding: binding, Iterable: listPtr, Body: body}

	result, err := ctx.EvalExpr(loop)
	require.NoError(t, err)
	_, ok := result.(*ast.Void)
	assert.True(t, ok)
	require.Len(t, printed, 3)
	assert.Contains(t, printed[2], "3")
}

func TestEvalFieldAccess_BindsThisOnMethodLookup(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	fileScope := ctx.Scopes.Current()

	greet := &object.FunctionDeclaration{
		RuntimeParameters: nil,
		Tags:              []ast.Expr{builtinTag(ctx, "Anything.to_string")},
		OuterScope:        fileScope,
		InnerScope:        fileScope,
		Name:              name("greet"),
	}
	greetPtr := ctx.Mem.Store(greet.ToLiteral())

	instance := memory.NewLiteralObject(name("Counter"), fileScope, token.Unknown())
	instance.SetField(name("greet"), greetPtr)
	instancePtr := ctx.Mem.Store(instance)

	access := &ast.FieldAccess{Receiver: &ast.PointerExpr{Addr: int(instancePtr)}, Field: name("greet")}
	result, err := ctx.EvalExpr(access)
	require.NoError(t, err)

	ptr, ok := result.(*ast.PointerExpr)
	require.True(t, ok)

	boundObj, ok := ctx.Mem.Get(memory.Pointer(ptr.Addr))
	require.True(t, ok)
	bound, err := object.FunctionFromLiteral(boundObj)
	require.NoError(t, err)
	require.NotNil(t, bound.ThisObject)
	assert.Equal(t, instancePtr, *bound.ThisObject)
}

func TestEvalObjectConstructor_MergesGroupDefaults(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	fileScope := ctx.Scopes.Current()

	group := &object.GroupDeclaration{
		Fields: []object.GroupField{
			{Name: name("count"), Value: numberLit(ctx, 0)},
			{Name: name("label"), Value: textLit(ctx, "default")},
		},
		OuterScope: fileScope,
		InnerScope: fileScope,
		Name:       name("Counter"),
	}
	groupPtr := &ast.PointerExpr{Addr: int(ctx.Mem.Store(group.ToLiteral()))}

	ctor := &ast.ObjectConstructor{
		Type:   groupPtr,
		Fields: []ast.FieldInit{{Name: name("label"), Value: textLit(ctx, "overridden")}},
	}

	result, err := ctx.EvalExpr(ctor)
	require.NoError(t, err)
	ptr, ok := result.(*ast.PointerExpr)
	require.True(t, ok)

	obj, ok := ctx.Mem.Get(memory.Pointer(ptr.Addr))
	require.True(t, ok)

	countPtr, ok := obj.Field(name("count"))
	require.True(t, ok)
	countObj, _ := ctx.Mem.Get(countPtr)
	v, _ := countObj.InternalFields["value"].Number()
	assert.Equal(t, 0.0, v)

	labelPtr, ok := obj.Field(name("label"))
	require.True(t, ok)
	labelObj, _ := ctx.Mem.Get(labelPtr)
	text, _ := labelObj.InternalFields["value"].Text()
	assert.Equal(t, "overridden", text)
}

func TestEvalDeclaration_TypeMismatchErrors(t *testing.T) {
	ctx := eval.NewContext(eval.Flags{})
	blk := newBlock(ctx, ctx.Scopes.Current())
	require.NoError(t, ctx.Scopes.DeclareNewVariableIn(blk.InnerScope, name("x"), ast.Expr(&ast.NameExpr{Name: name("x")})))

	textTypePtr, ok := ctx.Scopes.GetVariableFrom(blk.InnerScope, name("Text"))
	require.True(t, ok)

	blk.Stmts = []ast.Stmt{
		&ast.Declaration{Name: name("x"), DeclaredType: textTypePtr, Init: numberLit(ctx, 3)},
	}

	_, err := ctx.EvalBlock(blk)
	require.Error(t, err)
	evalErr, ok := err.(*eval.Error)
	require.True(t, ok)
	assert.Equal(t, eval.ErrTypeMismatch, evalErr.Kind)
}
