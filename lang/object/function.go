package object

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

// FunctionDeclaration is a `action` literal (spec §4.4, "FunctionDeclaration").
// Body is nil for a builtin function, in which case Tags must carry a
// BuiltinTag for the evaluator to dispatch through lang/builtin.
type FunctionDeclaration struct {
	CompileTimeParameters []*Parameter
	RuntimeParameters     []*Parameter
	Body                  *ast.Block // nil: builtin or forward-declared
	ReturnType            ast.Expr   // nil: inferred/void
	ThisObject            *memory.Pointer
	Tags                  []ast.Expr

	OuterScope scope.ID
	InnerScope scope.ID

	Name token.Name
	Sp   token.Span
}

func (*FunctionDeclaration) expr() {}

func (fd *FunctionDeclaration) Span() token.Span { return fd.Sp }
func (fd *FunctionDeclaration) Format(f fmt.State, verb rune) {
	format(f, verb, fmt.Sprintf("action %s", fd.Name.Text))
}
func (fd *FunctionDeclaration) Walk(v ast.Visitor) {
	for _, p := range fd.CompileTimeParameters {
		ast.Walk(v, p)
	}
	for _, p := range fd.RuntimeParameters {
		ast.Walk(v, p)
	}
	if fd.Body != nil {
		ast.Walk(v, fd.Body)
	}
	walkExprs(v, fd.ReturnType)
	for _, t := range fd.Tags {
		ast.Walk(v, t)
	}
}

// WithThisObject returns a copy of fd bound to receiver, used by field
// access method binding (spec §4.3, "Field access") to rebind a function
// literal in place via VirtualMemory.Replace.
func (fd *FunctionDeclaration) WithThisObject(receiver memory.Pointer) *FunctionDeclaration {
	bound := *fd
	bound.ThisObject = &receiver
	return &bound
}

const typeNameFunction = "Function"

func (fd *FunctionDeclaration) ToLiteral() *memory.LiteralObject {
	obj := memory.NewLiteralObject(token.Synthetic(typeNameFunction), fd.OuterScope, fd.Sp)
	obj.Name = fd.Name
	innerScope := fd.InnerScope
	obj.InnerScope = &innerScope
	obj.Tags = fd.Tags

	obj.InternalFields["compile_time_parameters"] = memory.ParameterListField(toParameterValues(fd.CompileTimeParameters))
	obj.InternalFields["runtime_parameters"] = memory.ParameterListField(toParameterValues(fd.RuntimeParameters))
	if fd.Body != nil {
		obj.InternalFields["body"] = memory.OptionalExprField(fd.Body)
	} else {
		obj.InternalFields["body"] = memory.OptionalExprField(nil)
	}
	obj.InternalFields["return_type"] = memory.OptionalExprField(fd.ReturnType)
	if fd.ThisObject != nil {
		obj.InternalFields["this_object"] = memory.OptionalExprField(&ast.PointerExpr{Addr: int(*fd.ThisObject)})
	} else {
		obj.InternalFields["this_object"] = memory.OptionalExprField(nil)
	}
	return obj
}

func FunctionFromLiteral(obj *memory.LiteralObject) (*FunctionDeclaration, error) {
	if obj.TypeName.Text != typeNameFunction {
		return nil, errTypeMismatch(typeNameFunction, obj.TypeName.Text)
	}
	ctParams, ok := obj.InternalFields["compile_time_parameters"].ParameterList()
	if !ok {
		return nil, fmt.Errorf("function literal missing internal field %q", "compile_time_parameters")
	}
	rtParams, ok := obj.InternalFields["runtime_parameters"].ParameterList()
	if !ok {
		return nil, fmt.Errorf("function literal missing internal field %q", "runtime_parameters")
	}
	bodyExpr, bodyPresent, ok := obj.InternalFields["body"].OptionalExpr()
	if !ok {
		return nil, fmt.Errorf("function literal missing internal field %q", "body")
	}
	var body *ast.Block
	if bodyPresent {
		b, ok := bodyExpr.(*ast.Block)
		if !ok {
			return nil, fmt.Errorf("function literal's body field is not a Block")
		}
		body = b
	}
	returnType, _, ok := obj.InternalFields["return_type"].OptionalExpr()
	if !ok {
		return nil, fmt.Errorf("function literal missing internal field %q", "return_type")
	}
	thisExpr, thisPresent, ok := obj.InternalFields["this_object"].OptionalExpr()
	if !ok {
		return nil, fmt.Errorf("function literal missing internal field %q", "this_object")
	}
	var thisObject *memory.Pointer
	if thisPresent {
		p, ok := thisExpr.(*ast.PointerExpr)
		if !ok {
			return nil, fmt.Errorf("function literal's this_object field is not a Pointer")
		}
		ptr := memory.Pointer(p.Addr)
		thisObject = &ptr
	}

	var innerScope scope.ID
	if obj.InnerScope != nil {
		innerScope = *obj.InnerScope
	}

	return &FunctionDeclaration{
		CompileTimeParameters: parametersFromValues(ctParams, obj.OuterScope),
		RuntimeParameters:     parametersFromValues(rtParams, obj.OuterScope),
		Body:                  body,
		ReturnType:            returnType,
		ThisObject:            thisObject,
		Tags:                  obj.Tags,
		OuterScope:            obj.OuterScope,
		InnerScope:            innerScope,
		Name:                  obj.Name,
		Sp:                    obj.Span,
	}, nil
}
