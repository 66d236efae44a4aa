package parser

import (
	"strconv"

	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

// operatorMethod maps a binary operator token to the field name the parser
// lowers it onto (spec §4.3, "Binary operators"): exactly these seven
// tokens have a mapping; PERCENT, BANGEQ, LTE and GTE are scanned but have
// no binary-operator grammar.
var operatorMethod = map[token.Kind]string{
	token.PLUS:  "plus",
	token.MINUS: "minus",
	token.STAR:  "times",
	token.SLASH: "divided_by",
	token.EQEQ:  "equals",
	token.LT:    "is_less_than",
	token.GT:    "is_greater_than",
}

// binPriority is a precedence-climbing table, left and right binding power
// per operator. ARROW (the pipe operator) binds loosest; all operators here
// are left-associative.
var binPriority = map[token.Kind][2]int{
	token.ARROW: {1, 1},
	token.EQEQ:  {2, 2},
	token.LT:    {3, 3},
	token.GT:    {3, 3},
	token.PLUS:  {4, 4},
	token.MINUS: {4, 4},
	token.STAR:  {5, 5},
	token.SLASH: {5, 5},
}

// parseExpr parses a full expression, including binary/pipe operators.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinExpr(0)
}

func (p *Parser) parseBinExpr(limit int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.toks.Peek()
		pr, ok := binPriority[tok.Kind]
		if !ok || pr[0] <= limit {
			return left, nil
		}
		p.toks.Pop()
		right, err := p.parseBinExpr(pr[1])
		if err != nil {
			return nil, err
		}
		left, err = p.lowerBinOp(tok, left, right)
		if err != nil {
			return nil, err
		}
	}
}

// lowerBinOp implements spec §4.3's binary-operator lowering: `a + b`
// becomes `a.plus(b)`, a FieldAccess wrapped in a FunctionCall, since ast has
// no dedicated binary-operator node. `a -> f(b)` is the pipe operator: it
// inserts a as the first runtime argument of the call on its right.
func (p *Parser) lowerBinOp(tok token.Token, left, right ast.Expr) (ast.Expr, error) {
	if tok.Kind == token.ARROW {
		call, ok := right.(*ast.FunctionCall)
		if !ok {
			return nil, p.errorf(tok.Span, "pipe target must be a function call")
		}
		args := append([]ast.Expr{left}, call.RuntimeArgs...)
		return &ast.FunctionCall{Callee: call.Callee, RuntimeArgs: args, Sp: left.Span().To(right.Span())}, nil
	}
	method, ok := operatorMethod[tok.Kind]
	if !ok {
		return nil, p.errorf(tok.Span, "unsupported operator %s", tok.Kind)
	}
	access := &ast.FieldAccess{Receiver: left, Field: token.Synthetic(method), Sp: left.Span()}
	return &ast.FunctionCall{Callee: access, RuntimeArgs: []ast.Expr{right}, Sp: left.Span().To(right.Span())}, nil
}

// parseUnary parses a postfix chain followed by any number of trailing '?'
// operators (spec §4.4, "Unary").
func (p *Parser) parseUnary() (ast.Expr, error) {
	e, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.toks.At(token.QUESTION) {
		q := p.toks.Pop()
		e = &ast.Unary{Op: ast.UnaryOptional, Operand: e, Sp: e.Span().To(q.Span)}
	}
	return e, nil
}

// parsePostfix parses a primary expression followed by any number of field
// accesses and calls. Compile-time call arguments (`<...>`) are not part of
// this grammar: LT already denotes the is_less_than operator at expression
// level, and disambiguating the two without backtracking support in
// token.Queue isn't worth the grammar complexity this spec's scope needs
// (DESIGN.md records this as an intentional simplification).
func (p *Parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.toks.At(token.DOT):
			p.toks.Pop()
			name, err := p.parseName()
			if err != nil {
				return nil, err
			}
			e = &ast.FieldAccess{Receiver: e, Field: name, Sp: e.Span().To(name.Span)}
		case p.toks.At(token.LPAREN):
			args, end, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			e = &ast.FunctionCall{Callee: e, RuntimeArgs: args, Sp: e.Span().To(end)}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parseArgList() ([]ast.Expr, token.Span, error) {
	p.toks.Pop() // LPAREN
	var args []ast.Expr
	for !p.toks.At(token.RPAREN) {
		a, err := p.parseExpr()
		if err != nil {
			return nil, token.Span{}, err
		}
		args = append(args, a)
		if p.toks.At(token.COMMA) {
			p.toks.Pop()
			continue
		}
		break
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, token.Span{}, err
	}
	return args, end.Span, nil
}

// parsePrimary parses a single non-operator expression: literals, names
// (and the object-constructor syntax that can follow one), parenthesized
// expressions, and the keyword-introduced forms (if/match/foreach/run and
// the five literal-convertible declarations).
func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.toks.Peek()
	switch t.Kind {
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.TEXT:
		return p.parseTextLiteral()
	case token.TRUE:
		p.toks.Pop()
		return &ast.NameExpr{Name: token.NewName("true", t.Span)}, nil
	case token.FALSE:
		p.toks.Pop()
		return &ast.NameExpr{Name: token.NewName("false", t.Span)}, nil
	case token.IDENT:
		return p.parseNameOrConstructor()
	case token.LPAREN:
		p.toks.Pop()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case token.IF:
		return p.parseIf()
	case token.MATCH:
		return p.parseMatch()
	case token.FOREACH:
		return p.parseForEach()
	case token.RUN:
		p.toks.Pop()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Run{Inner: inner, Sp: t.Span.To(inner.Span())}, nil
	case token.GROUP:
		d, err := p.parseGroup()
		return d.expr, err
	case token.EITHER:
		d, err := p.parseEither()
		return d.expr, err
	case token.ONEOF:
		d, err := p.parseOneOf()
		return d.expr, err
	case token.ACTION:
		d, err := p.parseAction()
		return d.expr, err
	case token.REPRESENT:
		return p.parseRepresentAs()
	default:
		return nil, p.errorf(t.Span, "unexpected token %s", t)
	}
}

// parseNameOrConstructor parses a bare name, or an ObjectConstructor when the
// name is followed by '{' and then either '}' or `field =` (spec §4.3,
// "Object constructor"). Any other '{' after a name is left for the
// enclosing form (an if/match/foreach head or an action's return type) to
// parse as a block.
func (p *Parser) parseNameOrConstructor() (ast.Expr, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	nameExpr := ast.Expr(&ast.NameExpr{Name: name})
	if !p.toks.At(token.LBRACE) {
		return nameExpr, nil
	}
	next, after := p.toks.PeekAt(1).Kind, p.toks.PeekAt(2).Kind
	if next != token.RBRACE && (next != token.IDENT || after != token.EQ) {
		return nameExpr, nil
	}
	p.toks.Pop() // LBRACE
	var fields []ast.FieldInit
	for !p.toks.At(token.RBRACE) {
		fname, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.EQ); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.FieldInit{Name: fname, Value: value})
		if p.toks.At(token.COMMA) {
			p.toks.Pop()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.ObjectConstructor{Type: nameExpr, Fields: fields, Sp: name.Span.To(end.Span)}, nil
}

// parseNumberLiteral interns a Number literal and returns a PointerExpr
// (lang/builtin's storeNumber encoding, spec §3).
func (p *Parser) parseNumberLiteral() (ast.Expr, error) {
	t := p.toks.Pop()
	v, err := strconv.ParseFloat(t.Lit, 64)
	if err != nil {
		return nil, p.errorf(t.Span, "invalid number literal %q: %s", t.Lit, err)
	}
	obj := memory.NewLiteralObject(token.Synthetic("Number"), p.scopes.Current(), t.Span)
	obj.InternalFields["value"] = memory.NumberField(v)
	ptr := p.mem.Store(obj)
	return &ast.PointerExpr{Addr: int(ptr), Sp: t.Span}, nil
}

// parseTextLiteral interns a Text literal and returns a PointerExpr.
func (p *Parser) parseTextLiteral() (ast.Expr, error) {
	t := p.toks.Pop()
	obj := memory.NewLiteralObject(token.Synthetic("Text"), p.scopes.Current(), t.Span)
	obj.InternalFields["value"] = memory.TextField(t.Lit)
	ptr := p.mem.Store(obj)
	return &ast.PointerExpr{Addr: int(ptr), Sp: t.Span}, nil
}

// parseIf parses `if cond { ... } [else { ... }]` (spec §4.3, "If").
func (p *Parser) parseIf() (ast.Expr, error) {
	start := p.toks.Pop().Span // IF
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	trueBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end := trueBlock.Sp
	var falseBlock *ast.Block
	if p.toks.At(token.ELSE) {
		p.toks.Pop()
		falseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
		end = falseBlock.Sp
	}
	return &ast.If{Cond: cond, True: trueBlock, False: falseBlock, Sp: start.To(end)}, nil
}

// parseMatch parses `match scrutinee { Type [: bind] { ... }, ... }` (spec
// §4.3, "Match").
func (p *Parser) parseMatch() (ast.Expr, error) {
	start := p.toks.Pop().Span // MATCH
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var branches []ast.MatchBranch
	for !p.toks.At(token.RBRACE) {
		typeExpr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		var bind *token.Name
		if p.toks.At(token.COLON) {
			p.toks.Pop()
			n, err := p.parseName()
			if err != nil {
				return nil, err
			}
			bind = &n
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		branches = append(branches, ast.MatchBranch{Type: typeExpr, Bind: bind, Body: body})
		if p.toks.At(token.COMMA) {
			p.toks.Pop()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.Match{Scrutinee: scrutinee, Branches: branches, Sp: start.To(end.Span)}, nil
}

// parseForEach parses `foreach binding in iterable { ... }` (spec §4.3,
// "ForEach").
func (p *Parser) parseForEach() (ast.Expr, error) {
	start := p.toks.Pop().Span // FOREACH
	binding, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForEachLoop{Binding: binding, Iterable: iterable, Body: body, Sp: start.To(body.Sp)}, nil
}

// parseBlock parses a `{ stmts }` block in a fresh Block scope.
func (p *Parser) parseBlock() (*ast.Block, error) {
	start, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	inner := p.scopes.EnterNewScope(scope.Block, nil)
	stmts, _, err := p.parseStmts(token.RBRACE)
	if err != nil {
		p.scopes.ExitScope()
		return nil, err
	}
	end, err := p.expect(token.RBRACE)
	p.scopes.ExitScope()
	if err != nil {
		return nil, err
	}
	return &ast.Block{InnerScope: inner, Stmts: stmts, Sp: start.Span.To(end.Span)}, nil
}
