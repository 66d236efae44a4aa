package memory

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
	"github.com/dolthub/swiss"
)

// ObjectAccessType selects the field-lookup policy of the '.' operator for a
// LiteralObject, mirroring ast.FieldAccessKind but attached to the value
// rather than the access expression.
type ObjectAccessType int

const (
	AccessNormal ObjectAccessType = iota
	AccessEither
	AccessGroup
)

func (k ObjectAccessType) String() string {
	switch k {
	case AccessNormal:
		return "normal"
	case AccessEither:
		return "either"
	case AccessGroup:
		return "group"
	default:
		return fmt.Sprintf("ObjectAccessType(%d)", int(k))
	}
}

// LiteralPair is one (Name, Pointer) entry of an Either's variant list, or
// of any other internal field that pairs a name with an address.
type LiteralPair struct {
	Name    token.Name
	Pointer Pointer
}

// fieldBinding is a named field's current value, stored alongside an
// insertion-order key so FieldNames reports fields in declaration order.
type fieldBinding struct {
	name  token.Name
	value Pointer
}

// LiteralObject is the universal compile-time value (spec §3,
// "LiteralObject"): every group instance, function, either, oneof, and
// primitive (Number, Text, Boolean, List, ...) is represented as one of
// these, distinguished by TypeName and the keys populated in InternalFields.
type LiteralObject struct {
	TypeName token.Name

	fields     *swiss.Map[string, fieldBinding]
	fieldOrder []string

	// InternalFields holds the type-specific, non-user-visible payload,
	// keyed by fixed strings (e.g. "value", "parameters", "variants").
	// Literal-convertible domain types (lang/object) read and write this
	// map directly in ToLiteral/FromLiteral.
	InternalFields map[string]InternalFieldValue

	FieldAccessType ObjectAccessType

	OuterScope scope.ID
	InnerScope *scope.ID // only Function/Group/RepresentAs literals have one

	Name token.Name
	// Address is set exactly once, by VirtualMemory.Store, when this object
	// is first interned.
	Address *Pointer

	Span token.Span
	Tags []ast.Expr
}

// NewLiteralObject creates a LiteralObject with empty fields, ready for
// SetField calls. typeName is the fixed tag identifying the kind of value
// (e.g. "Number", "Function", "Group").
func NewLiteralObject(typeName token.Name, outer scope.ID, span token.Span) *LiteralObject {
	return &LiteralObject{
		TypeName:       typeName,
		fields:         swiss.NewMap[string, fieldBinding](uint32(4)),
		InternalFields: make(map[string]InternalFieldValue),
		OuterScope:     outer,
		Name:           typeName,
		Span:           span,
	}
}

// SetField sets (or overwrites) the value of a user-visible field.
func (l *LiteralObject) SetField(name token.Name, value Pointer) {
	key := name.Key()
	if _, existed := l.fields.Get(key); !existed {
		l.fieldOrder = append(l.fieldOrder, key)
	}
	l.fields.Put(key, fieldBinding{name: name, value: value})
}

// Field returns the pointer bound to a user-visible field, and whether it
// was present.
func (l *LiteralObject) Field(name token.Name) (Pointer, bool) {
	b, ok := l.fields.Get(name.Key())
	return b.value, ok
}

// FieldNames reports the object's user-visible field names, in the order
// they were first set.
func (l *LiteralObject) FieldNames() []token.Name {
	names := make([]token.Name, 0, len(l.fieldOrder))
	for _, key := range l.fieldOrder {
		b, _ := l.fields.Get(key)
		names = append(names, b.name)
	}
	return names
}

// IsAnonymous reports whether the object's display name is one of the
// compiler's placeholder "anonymous ..." names, rewritten to the binding
// name the first time the value is assigned to a Declaration (spec §4.3,
// "Declaration").
func (l *LiteralObject) IsAnonymous() bool {
	return len(l.Name.Text) >= len("anonymous") && l.Name.Text[:len("anonymous")] == "anonymous"
}
