package parser

import (
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/token"
)

// parseStmts parses statements until the stop token is seen (without
// consuming it), returning the statements and the span they cover.
func (p *Parser) parseStmts(stop token.Kind) ([]ast.Stmt, token.Span, error) {
	var stmts []ast.Stmt
	var sp token.Span
	for !p.toks.At(stop) && !p.toks.At(token.EOF) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, sp, err
		}
		sp = sp.To(s.Span())
		stmts = append(stmts, s)
	}
	return stmts, sp, nil
}

// parseStmt parses one statement.
func (p *Parser) parseStmt() (ast.Stmt, error) {
	if p.toks.At(token.HASH) {
		tags, err := p.parseTagList()
		if err != nil {
			return nil, err
		}
		if !p.toks.At(token.LET) {
			return nil, p.errorf(p.toks.Peek().Span, "tags are only valid before a let declaration")
		}
		return p.parseLet(tags)
	}

	switch p.toks.Peek().Kind {
	case token.LET:
		return p.parseLet(nil)
	case token.TAIL:
		return p.parseTail()
	case token.DEFAULT:
		return p.parseDefaultExtend()
	case token.GROUP, token.EITHER, token.ONEOF, token.ACTION:
		return p.parseNamedLiteralStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseLet parses `let name[: Type] = init;` (spec §4.3, "Declaration"). The
// name is pre-declared (with a self-referential placeholder) before init is
// parsed, so a later statement in the same block may forward-reference it;
// see lang/eval/eval.go's EvalBlock residual fixpoint loop.
func (p *Parser) parseLet(tags []ast.Expr) (ast.Stmt, error) {
	start := p.toks.Pop().Span // LET
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if err := p.declareName(name); err != nil {
		return nil, err
	}
	var declaredType ast.Expr
	if p.toks.At(token.COLON) {
		p.toks.Pop()
		declaredType, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.EQ); err != nil {
		return nil, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMI)
	if err != nil {
		return nil, err
	}
	return &ast.Declaration{Name: name, DeclaredType: declaredType, Init: init, Tags: tags, Sp: start.To(end.Span)}, nil
}

// parseTail parses `tail is value;`, contributing value as the result of
// the enclosing block (spec §4.3, "Block").
func (p *Parser) parseTail() (ast.Stmt, error) {
	start := p.toks.Pop().Span // TAIL
	if _, err := p.expect(token.IS); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMI)
	if err != nil {
		return nil, err
	}
	return &ast.Tail{Value: value, Sp: start.To(end.Span)}, nil
}

// parseDefaultExtend parses `default extend conformance;`, registering
// conformance (typically a represent-as literal) as a default extension in
// the enclosing scope (spec §4.3, "DefaultExtend").
func (p *Parser) parseDefaultExtend() (ast.Stmt, error) {
	start := p.toks.Pop().Span // DEFAULT
	if _, err := p.expect(token.EXTEND); err != nil {
		return nil, err
	}
	ext, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMI)
	if err != nil {
		return nil, err
	}
	return &ast.DefaultExtend{Extension: ext, Sp: start.To(end.Span)}, nil
}

// parseNamedLiteralStmt parses a group/either/oneof/action literal appearing
// directly as a statement. If it carried a leading name (spec §8 scenario
// C), it is equivalent to `let Name = <literal>;`; otherwise its value is
// simply discarded, like any other expression statement.
func (p *Parser) parseNamedLiteralStmt() (ast.Stmt, error) {
	var d declLiteral
	var err error
	switch p.toks.Peek().Kind {
	case token.GROUP:
		d, err = p.parseGroup()
	case token.EITHER:
		d, err = p.parseEither()
	case token.ONEOF:
		d, err = p.parseOneOf()
	case token.ACTION:
		d, err = p.parseAction()
	}
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMI)
	if err != nil {
		return nil, err
	}
	if d.name != nil {
		return &ast.Declaration{Name: *d.name, Init: d.expr, Sp: d.expr.Span().To(end.Span)}, nil
	}
	return &ast.ExprStmt{Expr: d.expr, Sp: d.expr.Span().To(end.Span)}, nil
}

// parseExprStmt parses a bare expression used as a statement (spec §4.3,
// "ExprStmt"), e.g. a function call made for its side effects. An if, match
// or foreach expression ends with its own closing '}', so its trailing ';'
// is optional.
func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	switch e.(type) {
	case *ast.If, *ast.Match, *ast.ForEachLoop:
		if !p.toks.At(token.SEMI) {
			return &ast.ExprStmt{Expr: e, Sp: e.Span()}, nil
		}
	}
	end, err := p.expect(token.SEMI)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: e, Sp: e.Span().To(end.Span)}, nil
}
