package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints an AST node by walking its children, one indented
// line per node (component I, "tokenize/parse/eval" CLI). Unlike the
// teacher's version, there is no token.File to resolve a Pos against: this
// package's token.Span already renders a human-readable byte range via its
// own String method, so Printer only needs a ShowSpans toggle.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// ShowSpans prefixes each node with its source span.
	ShowSpans bool

	// NodeFmt is the format string to use to print the nodes. The verb must
	// be either `s` or `v`; defaults to `%v`.
	NodeFmt string
}

// Print pretty-prints the AST node n.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, showSpans: p.ShowSpans, nodeFmt: p.NodeFmt}
	if pp.nodeFmt == "" {
		pp.nodeFmt = "%v"
	}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w         io.Writer
	showSpans bool
	nodeFmt   string
	depth     int
	err       error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}
	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}
	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.showSpans {
		format += "[%s] "
		args = append(args, n.Span())
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
