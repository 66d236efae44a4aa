// Package ast defines the abstract syntax tree produced by the parser
// (spec component E): the expression and statement variants, including the
// "evaluate at compile time" reduction target Pointer, and the shared
// Node/Expr/Stmt interfaces every variant implements.
package ast

import (
	"fmt"

	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

// Node is implemented by every AST node.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a description of
	// itself. Only the 'v' and 's' verbs are supported; child-count
	// information is always included, and the '#' flag changes nothing.
	fmt.Formatter

	// Span reports the node's source byte range.
	Span() token.Span

	// Walk visits this node's direct children, implementing the Visitor
	// pattern together with the package-level Walk function.
	Walk(v Visitor)
}

// Expr is implemented by every expression variant.
type Expr interface {
	Node
	expr()
}

// Stmt is implemented by every statement variant.
type Stmt interface {
	Node
	stmt()
}

func format(f fmt.State, verb rune, label string) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%s)", verb, label)
		return
	}
	fmt.Fprint(f, label)
}

// Chunk is the root of a parsed file: a sequence of statements evaluated in
// order within one file scope (spec component I, "Module").
type Chunk struct {
	Name       string
	Block      *Block
	FileScope  scope.ID
	EndOfFile  token.Span
}

func (c *Chunk) Span() token.Span {
	if c.Block != nil {
		return c.Block.Span()
	}
	return c.EndOfFile
}
func (c *Chunk) Format(f fmt.State, verb rune) { format(f, verb, fmt.Sprintf("chunk %s", c.Name)) }
func (c *Chunk) Walk(v Visitor) {
	if c.Block != nil {
		Walk(v, c.Block)
	}
}
