package object

import (
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
)

// LiteralConvertible is implemented by every domain type in this package:
// an ast.Expr that also knows how to encode itself as a memory.LiteralObject
// (spec §4.4). Callers typically follow ToLiteral with VirtualMemory.Store
// to obtain the Pointer that represents the value from then on.
type LiteralConvertible interface {
	ast.Expr
	ToLiteral() *memory.LiteralObject
}

var (
	_ LiteralConvertible = (*FunctionDeclaration)(nil)
	_ LiteralConvertible = (*GroupDeclaration)(nil)
	_ LiteralConvertible = (*Either)(nil)
	_ LiteralConvertible = (*OneOf)(nil)
	_ LiteralConvertible = (*RepresentAs)(nil)
	_ LiteralConvertible = (*Parameter)(nil)
)
