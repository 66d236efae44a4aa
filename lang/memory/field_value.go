package memory

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/token"
)

// FieldValueKind discriminates the variant held by an InternalFieldValue.
type FieldValueKind int

const (
	FieldNumber FieldValueKind = iota
	FieldText
	FieldBoolean
	FieldExprList
	FieldExpr
	FieldOptionalExpr
	FieldFieldList
	FieldNameList
	FieldPointerList
	FieldLiteralPairList
	FieldParameterList
	FieldName
)

func (k FieldValueKind) String() string {
	switch k {
	case FieldNumber:
		return "number"
	case FieldText:
		return "text"
	case FieldBoolean:
		return "boolean"
	case FieldExprList:
		return "expression-list"
	case FieldExpr:
		return "expression"
	case FieldOptionalExpr:
		return "optional-expression"
	case FieldFieldList:
		return "field-list"
	case FieldNameList:
		return "name-list"
	case FieldPointerList:
		return "pointer-list"
	case FieldLiteralPairList:
		return "literal-pair-list"
	case FieldParameterList:
		return "parameter-list"
	case FieldName:
		return "name"
	default:
		return fmt.Sprintf("FieldValueKind(%d)", int(k))
	}
}

// InternalFieldValue is one entry of a LiteralObject's internal_fields
// tagged union (spec §3, "LiteralObject"). Exactly one of the payload
// fields is meaningful, selected by Kind; the constructor functions below
// are the only supported way to build one.
type InternalFieldValue struct {
	Kind FieldValueKind

	number  float64
	text    string
	boolean bool

	exprList []ast.Expr
	expr     ast.Expr
	// hasExpr distinguishes an OptionalExpr holding Nothing from one holding
	// a present expression; Kind must be FieldOptionalExpr for this to apply.
	hasExpr bool

	fieldList     []ast.FieldInit
	nameList      []token.Name
	pointerList   []Pointer
	literalPairs  []LiteralPair
	parameterList []ParameterValue
	name          token.Name
}

// ParameterValue is the internal-field encoding of a function parameter:
// its name and declared-type expression (spec §4.4, Parameter).
type ParameterValue struct {
	Name         token.Name
	DeclaredType ast.Expr
}

func NumberField(v float64) InternalFieldValue { return InternalFieldValue{Kind: FieldNumber, number: v} }
func TextField(v string) InternalFieldValue    { return InternalFieldValue{Kind: FieldText, text: v} }
func BooleanField(v bool) InternalFieldValue   { return InternalFieldValue{Kind: FieldBoolean, boolean: v} }
func ExprListField(v []ast.Expr) InternalFieldValue {
	return InternalFieldValue{Kind: FieldExprList, exprList: v}
}
func ExprField(v ast.Expr) InternalFieldValue { return InternalFieldValue{Kind: FieldExpr, expr: v} }
func OptionalExprField(v ast.Expr) InternalFieldValue {
	return InternalFieldValue{Kind: FieldOptionalExpr, expr: v, hasExpr: v != nil}
}
func FieldListField(v []ast.FieldInit) InternalFieldValue {
	return InternalFieldValue{Kind: FieldFieldList, fieldList: v}
}
func NameListField(v []token.Name) InternalFieldValue {
	return InternalFieldValue{Kind: FieldNameList, nameList: v}
}
func PointerListField(v []Pointer) InternalFieldValue {
	return InternalFieldValue{Kind: FieldPointerList, pointerList: v}
}
func LiteralPairListField(v []LiteralPair) InternalFieldValue {
	return InternalFieldValue{Kind: FieldLiteralPairList, literalPairs: v}
}
func ParameterListField(v []ParameterValue) InternalFieldValue {
	return InternalFieldValue{Kind: FieldParameterList, parameterList: v}
}
func NameField(v token.Name) InternalFieldValue { return InternalFieldValue{Kind: FieldName, name: v} }

// Number returns the payload of a FieldNumber value; ok is false if Kind
// does not match.
func (v InternalFieldValue) Number() (float64, bool) {
	return v.number, v.Kind == FieldNumber
}

func (v InternalFieldValue) Text() (string, bool) {
	return v.text, v.Kind == FieldText
}

func (v InternalFieldValue) Boolean() (bool, bool) {
	return v.boolean, v.Kind == FieldBoolean
}

func (v InternalFieldValue) ExprList() ([]ast.Expr, bool) {
	return v.exprList, v.Kind == FieldExprList
}

func (v InternalFieldValue) Expr() (ast.Expr, bool) {
	return v.expr, v.Kind == FieldExpr
}

// OptionalExpr returns the wrapped expression and whether one is present
// (as opposed to Nothing). ok is false if Kind does not match
// FieldOptionalExpr at all.
func (v InternalFieldValue) OptionalExpr() (expr ast.Expr, present bool, ok bool) {
	return v.expr, v.hasExpr, v.Kind == FieldOptionalExpr
}

func (v InternalFieldValue) FieldList() ([]ast.FieldInit, bool) {
	return v.fieldList, v.Kind == FieldFieldList
}

func (v InternalFieldValue) NameList() ([]token.Name, bool) {
	return v.nameList, v.Kind == FieldNameList
}

func (v InternalFieldValue) PointerList() ([]Pointer, bool) {
	return v.pointerList, v.Kind == FieldPointerList
}

func (v InternalFieldValue) LiteralPairList() ([]LiteralPair, bool) {
	return v.literalPairs, v.Kind == FieldLiteralPairList
}

func (v InternalFieldValue) ParameterList() ([]ParameterValue, bool) {
	return v.parameterList, v.Kind == FieldParameterList
}

func (v InternalFieldValue) Name() (token.Name, bool) {
	return v.name, v.Kind == FieldName
}
