package object_test

import (
	"testing"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/object"
	"github.com/cabin-lang/cabin/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func name(s string) token.Name { return token.NewName(s, token.Unknown()) }

func TestParameterRoundTrip(t *testing.T) {
	p := &object.Parameter{
		Name:          name("x"),
		ParameterType: &ast.NameExpr{Name: name("Number")},
		Sp:            token.Unknown(),
	}
	lit := p.ToLiteral()
	assert.Equal(t, memory.AccessGroup, lit.FieldAccessType)

	got, err := object.ParameterFromLiteral(lit)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name.Text)
	assert.Equal(t, "Number", got.ParameterType.(*ast.NameExpr).Name.Text)
}

func TestParameterFromLiteralWrongType(t *testing.T) {
	obj := memory.NewLiteralObject(name("Number"), 0, token.Unknown())
	_, err := object.ParameterFromLiteral(obj)
	assert.Error(t, err)
}

func TestFunctionDeclarationRoundTrip(t *testing.T) {
	fd := &object.FunctionDeclaration{
		CompileTimeParameters: []*object.Parameter{{Name: name("T"), ParameterType: &ast.NameExpr{Name: name("Group")}}},
		RuntimeParameters:     []*object.Parameter{{Name: name("x"), ParameterType: &ast.NameExpr{Name: name("Number")}}},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.Tail{Value: &ast.NameExpr{Name: name("x")}},
		}},
		ReturnType: &ast.NameExpr{Name: name("Number")},
		Name:       name("identity"),
		Sp:         token.Unknown(),
	}
	lit := fd.ToLiteral()
	assert.Equal(t, "Function", lit.TypeName.Text)

	got, err := object.FunctionFromLiteral(lit)
	require.NoError(t, err)
	require.Len(t, got.RuntimeParameters, 1)
	assert.Equal(t, "x", got.RuntimeParameters[0].Name.Text)
	require.NotNil(t, got.Body)
	assert.Nil(t, got.ThisObject)
}

func TestFunctionDeclarationWithThisObjectRoundTrip(t *testing.T) {
	receiver := memory.Pointer(7)
	fd := &object.FunctionDeclaration{Name: name("greet"), Sp: token.Unknown()}
	bound := fd.WithThisObject(receiver)

	got, err := object.FunctionFromLiteral(bound.ToLiteral())
	require.NoError(t, err)
	require.NotNil(t, got.ThisObject)
	assert.Equal(t, receiver, *got.ThisObject)
}

func TestGroupDeclarationRoundTrip(t *testing.T) {
	g := &object.GroupDeclaration{
		Fields: []object.GroupField{
			{Name: name("length"), DeclaredType: &ast.NameExpr{Name: name("Number")}},
			{Name: name("height"), Value: &ast.NameExpr{Name: name("zero")}},
		},
		Name: name("Rectangle"),
		Sp:   token.Unknown(),
	}
	got, err := object.GroupFromLiteral(g.ToLiteral())
	require.NoError(t, err)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, "length", got.Fields[0].Name.Text)
	assert.Equal(t, "Number", got.Fields[0].DeclaredType.(*ast.NameExpr).Name.Text)
	assert.Equal(t, "zero", got.Fields[1].Value.(*ast.NameExpr).Name.Text)
}

func TestEitherRoundTripPreservesOrder(t *testing.T) {
	e := &object.Either{
		Variants: []memory.LiteralPair{
			{Name: name("Red"), Pointer: memory.Pointer(1)},
			{Name: name("Green"), Pointer: memory.Pointer(2)},
			{Name: name("Blue"), Pointer: memory.Pointer(3)},
		},
		Name: name("Color"),
		Sp:   token.Unknown(),
	}
	lit := e.ToLiteral()
	assert.Equal(t, memory.AccessEither, lit.FieldAccessType)

	got, err := object.EitherFromLiteral(lit)
	require.NoError(t, err)
	require.Len(t, got.Variants, 3)
	assert.Equal(t, "Red", got.Variants[0].Name.Text)
	assert.Equal(t, "Blue", got.Variants[2].Name.Text)
}

func TestOneOfRoundTrip(t *testing.T) {
	o := &object.OneOf{
		CompileTimeParameters: []token.Name{name("T")},
		Choices:               []ast.Expr{&ast.NameExpr{Name: name("Circle")}, &ast.NameExpr{Name: name("Square")}},
		Name:                  name("Shape"),
		Sp:                    token.Unknown(),
	}
	got, err := object.OneOfFromLiteral(o.ToLiteral())
	require.NoError(t, err)
	require.Len(t, got.Choices, 2)
	assert.Equal(t, "T", got.CompileTimeParameters[0].Text)
}

func TestRepresentAsRoundTrip(t *testing.T) {
	r := &object.RepresentAs{
		TypeToRepresent:   &ast.NameExpr{Name: name("Number")},
		TypeToRepresentAs: &ast.NameExpr{Name: name("Printable")},
		Fields: []object.GroupField{
			{Name: name("to_string"), Value: &ast.NameExpr{Name: name("number_to_string")}},
		},
		Name: name("anonymous_represent_as"),
		Sp:   token.Unknown(),
	}
	got, err := object.RepresentAsFromLiteral(r.ToLiteral())
	require.NoError(t, err)
	assert.Equal(t, "Number", got.TypeToRepresent.(*ast.NameExpr).Name.Text)
	assert.Equal(t, "Printable", got.TypeToRepresentAs.(*ast.NameExpr).Name.Text)
	require.Len(t, got.Fields, 1)
	assert.Equal(t, "to_string", got.Fields[0].Name.Text)
}
