package eval

import (
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/object"
	"github.com/cabin-lang/cabin/lang/token"
)

// installBuiltinMethods wires lang/builtin's table onto the prelude's type
// groups, so that parser-lowered operator and method calls (`a + b` as
// `a.plus(b)`, `x.to_string()`) have a field to resolve against: the builtin
// table itself only maps a dotted name to a Go handler (spec §4.5), it does
// not say which literal exposes it as a callable field. Arithmetic is
// registered as a default extension on Number (spec §4.3, "Field access"
// fallback) rather than as a direct field on every Number instance, since
// instances are created one at a time by lang/builtin's storeNumber and have
// no opportunity to carry method fields themselves.
func (c *Context) installBuiltinMethods() {
	numberPtr, _ := c.Scopes.GetVariable(token.Synthetic("Number"))
	textPtr, _ := c.Scopes.GetVariable(token.Synthetic("Text"))
	booleanPtr, _ := c.Scopes.GetVariable(token.Synthetic("Boolean"))
	nothingPtr, _ := c.Scopes.GetVariable(token.Synthetic("Nothing"))

	c.registerDefaultExtension(numberPtr, []methodSpec{
		{"plus", "Number.plus", true},
		{"minus", "Number.minus", true},
		{"times", "Number.times", true},
		{"divided_by", "Number.divided_by", true},
		{"equals", "Number.equals", true},
		{"is_less_than", "Number.is_less_than", true},
		{"is_greater_than", "Number.is_greater_than", true},
		{"to_string", "Anything.to_string", false},
		{"type", "Anything.type", false},
	})
	c.registerDefaultExtension(textPtr, []methodSpec{
		{"to_string", "Anything.to_string", false},
		{"type", "Anything.type", false},
	})
	c.registerDefaultExtension(booleanPtr, []methodSpec{
		{"to_string", "Anything.to_string", false},
		{"type", "Anything.type", false},
	})
	c.registerDefaultExtension(nothingPtr, []methodSpec{
		{"to_string", "Anything.to_string", false},
		{"type", "Anything.type", false},
	})

	c.installTerminal()
}

// methodSpec names one field to attach via a default extension: its field
// name, the builtin's dotted internal name, and whether it takes a second
// ("other") runtime parameter besides the implicit receiver.
type methodSpec struct {
	field        string
	builtinName  string
	binaryTarget bool
}

func (c *Context) registerDefaultExtension(typePtr ast.Expr, methods []methodSpec) {
	typeExpr, ok := typePtr.(*ast.PointerExpr)
	if !ok {
		return
	}

	fields := make([]object.GroupField, len(methods))
	for i, m := range methods {
		params := []*object.Parameter{{Name: token.Synthetic("this"), OuterScope: c.Scopes.Current()}}
		if m.binaryTarget {
			params = append(params, &object.Parameter{Name: token.Synthetic("other"), OuterScope: c.Scopes.Current()})
		}
		fd := &object.FunctionDeclaration{
			RuntimeParameters: params,
			Tags:              []ast.Expr{c.builtinTagLiteral(m.builtinName)},
			OuterScope:        c.Scopes.Current(),
			InnerScope:        c.Scopes.Current(),
			Name:              token.Synthetic(m.field),
		}
		fnPtr := c.Mem.Store(fd.ToLiteral())
		fields[i] = object.GroupField{Name: token.Synthetic(m.field), Value: &ast.PointerExpr{Addr: int(fnPtr)}}
	}

	ra := &object.RepresentAs{
		TypeToRepresent:   typeExpr,
		TypeToRepresentAs: typeExpr,
		Fields:            fields,
		OuterScope:        c.Scopes.Current(),
		InnerScope:        c.Scopes.Current(),
		Name:              token.Synthetic("prelude default extension"),
	}
	raPtr := c.Mem.Store(ra.ToLiteral())
	c.Scopes.AddDefaultExtension(ast.Expr(&ast.PointerExpr{Addr: int(raPtr)}))
}

// builtinTagLiteral interns a BuiltinTag literal naming internalName, the
// shape lang/eval/tags.go's builtinInternalName reads back.
func (c *Context) builtinTagLiteral(internalName string) ast.Expr {
	textObj := memory.NewLiteralObject(token.Synthetic("Text"), c.Scopes.Current(), token.Unknown())
	textObj.InternalFields["value"] = memory.TextField(internalName)
	textPtr := c.Mem.Store(textObj)

	tagObj := memory.NewLiteralObject(token.Synthetic("BuiltinTag"), c.Scopes.Current(), token.Unknown())
	tagObj.SetField(token.Synthetic("internal_name"), textPtr)
	return &ast.PointerExpr{Addr: int(c.Mem.Store(tagObj))}
}

// systemSideEffectsTagLiteral interns the zero-field SystemSideEffects
// marker tag (spec §5, "Side-effect stack").
func (c *Context) systemSideEffectsTagLiteral() ast.Expr {
	obj := memory.NewLiteralObject(token.Synthetic("SystemSideEffects"), c.Scopes.Current(), token.Unknown())
	return &ast.PointerExpr{Addr: int(c.Mem.Store(obj))}
}

// installTerminal declares the global `terminal` object whose print/input
// fields dispatch through lang/builtin's "terminal.print"/"terminal.input"
// entries (spec §4.5's builtin table, naming convention
// "<receiver group>.<method>").
func (c *Context) installTerminal() {
	printFn := &object.FunctionDeclaration{
		RuntimeParameters: []*object.Parameter{{Name: token.Synthetic("message"), OuterScope: c.Scopes.Current()}},
		Tags:              []ast.Expr{c.builtinTagLiteral("terminal.print"), c.systemSideEffectsTagLiteral()},
		OuterScope:        c.Scopes.Current(),
		InnerScope:        c.Scopes.Current(),
		Name:              token.Synthetic("print"),
	}
	inputFn := &object.FunctionDeclaration{
		Tags:       []ast.Expr{c.builtinTagLiteral("terminal.input"), c.systemSideEffectsTagLiteral()},
		OuterScope: c.Scopes.Current(),
		InnerScope: c.Scopes.Current(),
		Name:       token.Synthetic("input"),
	}

	terminalObj := memory.NewLiteralObject(token.Synthetic("Terminal"), c.Scopes.Current(), token.Unknown())
	terminalObj.Name = token.Synthetic("terminal")
	terminalObj.SetField(token.Synthetic("print"), c.Mem.Store(printFn.ToLiteral()))
	terminalObj.SetField(token.Synthetic("input"), c.Mem.Store(inputFn.ToLiteral()))
	c.declareGlobal("terminal", c.Mem.Store(terminalObj))
}
