package parser

import (
	"github.com/cabin-lang/cabin/lang/ast"
	"github.com/cabin-lang/cabin/lang/memory"
	"github.com/cabin-lang/cabin/lang/object"
	"github.com/cabin-lang/cabin/lang/scope"
	"github.com/cabin-lang/cabin/lang/token"
)

// declLiteral is the result of parsing one of the five literal-convertible
// declaration keywords: the literal itself, and the name it was declared
// under, if any (spec §8 scenario C's `either Color { ... }` direct form vs.
// an anonymous literal meant to be bound by an enclosing `let`).
type declLiteral struct {
	expr ast.Expr
	name *token.Name
}

// parseParameterList parses a parenthesized or angle-bracketed,
// comma-separated list of `name: Type` parameters.
func (p *Parser) parseParameterList(open, close token.Kind) ([]*object.Parameter, error) {
	if _, err := p.expect(open); err != nil {
		return nil, err
	}
	outer := p.scopes.Current()
	var params []*object.Parameter
	for !p.toks.At(close) {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		var paramType ast.Expr
		if p.toks.At(token.COLON) {
			p.toks.Pop()
			paramType, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		params = append(params, &object.Parameter{Name: name, ParameterType: paramType, OuterScope: outer, Sp: name.Span})
		if p.toks.At(token.COMMA) {
			p.toks.Pop()
			continue
		}
		break
	}
	if _, err := p.expect(close); err != nil {
		return nil, err
	}
	return params, nil
}

// parseGroupField parses one `name[: Type] [= value]` entry of a group or
// represent-as field list. requireValue is true for represent-as, whose
// fields always override with an explicit value (original_source's
// represent_as.rs).
func (p *Parser) parseGroupField(requireValue bool) (object.GroupField, error) {
	name, err := p.parseName()
	if err != nil {
		return object.GroupField{}, err
	}
	var declaredType ast.Expr
	if p.toks.At(token.COLON) {
		p.toks.Pop()
		declaredType, err = p.parseExpr()
		if err != nil {
			return object.GroupField{}, err
		}
	}
	var value ast.Expr
	if p.toks.At(token.EQ) {
		p.toks.Pop()
		value, err = p.parseExpr()
		if err != nil {
			return object.GroupField{}, err
		}
	} else if requireValue {
		return object.GroupField{}, p.errorf(name.Span, "field %q requires a value", name.Text)
	}
	return object.GroupField{Name: name, Value: value, DeclaredType: declaredType}, nil
}

// parseGroup parses a `group [Name] { field[: Type][ = value], ... }`
// literal (spec §4.4, "GroupDeclaration"; original_source's group.rs for the
// field-list shape).
func (p *Parser) parseGroup() (declLiteral, error) {
	start := p.toks.Pop().Span // GROUP
	name, hasName, err := p.tryParseDeclName()
	if err != nil {
		return declLiteral{}, err
	}
	outer := p.scopes.Current()
	inner := p.scopes.EnterNewScope(scope.Group, nil)

	if _, err := p.expect(token.LBRACE); err != nil {
		p.scopes.ExitScope()
		return declLiteral{}, err
	}
	var fields []object.GroupField
	for !p.toks.At(token.RBRACE) {
		gf, err := p.parseGroupField(false)
		if err != nil {
			p.scopes.ExitScope()
			return declLiteral{}, err
		}
		fields = append(fields, gf)
		if p.toks.At(token.COMMA) {
			p.toks.Pop()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACE)
	p.scopes.ExitScope()
	if err != nil {
		return declLiteral{}, err
	}

	typeName := p.anonymousName("group")
	if hasName {
		typeName = name
	}
	g := &object.GroupDeclaration{Fields: fields, OuterScope: outer, InnerScope: inner, Name: typeName, Sp: start.To(end.Span)}
	if hasName {
		return declLiteral{expr: g, name: &name}, nil
	}
	return declLiteral{expr: g}, nil
}

// parseEither parses an `either [Name] { Variant, ... }` literal (spec §4.4,
// "Either"). Each variant is interned up front as its own empty literal, the
// architectural reason this parser needs direct *memory.VirtualMemory
// access rather than being a pure syntax-to-AST transformer.
func (p *Parser) parseEither() (declLiteral, error) {
	start := p.toks.Pop().Span // EITHER
	name, hasName, err := p.tryParseDeclName()
	if err != nil {
		return declLiteral{}, err
	}
	outer := p.scopes.Current()

	if _, err := p.expect(token.LBRACE); err != nil {
		return declLiteral{}, err
	}
	typeName := p.anonymousName("either")
	if hasName {
		typeName = name
	}
	var variants []memory.LiteralPair
	for !p.toks.At(token.RBRACE) {
		vname, err := p.parseName()
		if err != nil {
			return declLiteral{}, err
		}
		variantObj := memory.NewLiteralObject(typeName, outer, vname.Span)
		variantObj.Name = vname
		ptr := p.mem.Store(variantObj)
		variants = append(variants, memory.LiteralPair{Name: vname, Pointer: ptr})
		if p.toks.At(token.COMMA) {
			p.toks.Pop()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return declLiteral{}, err
	}

	e := &object.Either{Variants: variants, OuterScope: outer, Name: typeName, Sp: start.To(end.Span)}
	if hasName {
		return declLiteral{expr: e, name: &name}, nil
	}
	return declLiteral{expr: e}, nil
}

// parseOneOf parses a `oneof [Name] [<Param, ...>] { Choice, ... }` literal
// (SPEC_FULL.md supplement; original_source's oneof.rs).
func (p *Parser) parseOneOf() (declLiteral, error) {
	start := p.toks.Pop().Span // ONEOF
	name, hasName, err := p.tryParseDeclName()
	if err != nil {
		return declLiteral{}, err
	}
	outer := p.scopes.Current()

	var ctParams []token.Name
	if p.toks.At(token.LT) {
		p.toks.Pop()
		for !p.toks.At(token.GT) {
			n, err := p.parseName()
			if err != nil {
				return declLiteral{}, err
			}
			ctParams = append(ctParams, n)
			if p.toks.At(token.COMMA) {
				p.toks.Pop()
				continue
			}
			break
		}
		if _, err := p.expect(token.GT); err != nil {
			return declLiteral{}, err
		}
	}

	if _, err := p.expect(token.LBRACE); err != nil {
		return declLiteral{}, err
	}
	var choices []ast.Expr
	for !p.toks.At(token.RBRACE) {
		c, err := p.parseExpr()
		if err != nil {
			return declLiteral{}, err
		}
		choices = append(choices, c)
		if p.toks.At(token.COMMA) {
			p.toks.Pop()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return declLiteral{}, err
	}

	typeName := p.anonymousName("oneof")
	if hasName {
		typeName = name
	}
	o := &object.OneOf{CompileTimeParameters: ctParams, Choices: choices, OuterScope: outer, Name: typeName, Sp: start.To(end.Span)}
	if hasName {
		return declLiteral{expr: o, name: &name}, nil
	}
	return declLiteral{expr: o}, nil
}

// parseAction parses an `action [Name] [<ctparams>](params)[: RetType] {
// body }` literal (spec §4.4, "FunctionDeclaration").
func (p *Parser) parseAction() (declLiteral, error) {
	start := p.toks.Pop().Span // ACTION
	name, hasName, err := p.tryParseDeclName()
	if err != nil {
		return declLiteral{}, err
	}
	outer := p.scopes.Current()
	inner := p.scopes.EnterNewScope(scope.Function, nil)

	var ctParams []*object.Parameter
	if p.toks.At(token.LT) {
		ctParams, err = p.parseParameterList(token.LT, token.GT)
		if err != nil {
			p.scopes.ExitScope()
			return declLiteral{}, err
		}
	}
	rtParams, err := p.parseParameterList(token.LPAREN, token.RPAREN)
	if err != nil {
		p.scopes.ExitScope()
		return declLiteral{}, err
	}

	var returnType ast.Expr
	if p.toks.At(token.COLON) {
		p.toks.Pop()
		returnType, err = p.parseExpr()
		if err != nil {
			p.scopes.ExitScope()
			return declLiteral{}, err
		}
	}

	body, err := p.parseBlock()
	p.scopes.ExitScope()
	if err != nil {
		return declLiteral{}, err
	}

	typeName := p.anonymousName("function")
	if hasName {
		typeName = name
	}
	fd := &object.FunctionDeclaration{
		CompileTimeParameters: ctParams,
		RuntimeParameters:     rtParams,
		Body:                  body,
		ReturnType:            returnType,
		OuterScope:            outer,
		InnerScope:            inner,
		Name:                  typeName,
		Sp:                    start.To(body.Sp),
	}
	if hasName {
		return declLiteral{expr: fd, name: &name}, nil
	}
	return declLiteral{expr: fd}, nil
}

// parseRepresentAs parses a `represent TypeToRepresent as TypeToRepresentAs
// [<ctparams>] { field = value, ... }` literal (spec §4.4, "RepresentAs";
// original_source's represent_as.rs). It is always anonymous: its
// TypeToRepresent, not a leading bare name, is the token right after the
// keyword, so the optional-decl-name shorthand used by group/either/oneof/
// action does not apply here. Whether the result is registered as a
// default extension is a property of the enclosing `default extend`
// statement (ast.DefaultExtend), not of this literal.
func (p *Parser) parseRepresentAs() (ast.Expr, error) {
	start := p.toks.Pop().Span // REPRESENT
	typeToRepresent, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.AS); err != nil {
		return nil, err
	}
	typeToRepresentAs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	outer := p.scopes.Current()
	inner := p.scopes.EnterNewScope(scope.RepresentAs, nil)

	var ctParams []*object.Parameter
	if p.toks.At(token.LT) {
		ctParams, err = p.parseParameterList(token.LT, token.GT)
		if err != nil {
			p.scopes.ExitScope()
			return nil, err
		}
	}

	if _, err := p.expect(token.LBRACE); err != nil {
		p.scopes.ExitScope()
		return nil, err
	}
	var fields []object.GroupField
	for !p.toks.At(token.RBRACE) {
		gf, err := p.parseGroupField(true)
		if err != nil {
			p.scopes.ExitScope()
			return nil, err
		}
		fields = append(fields, gf)
		if p.toks.At(token.COMMA) {
			p.toks.Pop()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACE)
	p.scopes.ExitScope()
	if err != nil {
		return nil, err
	}

	return &object.RepresentAs{
		TypeToRepresent:       typeToRepresent,
		TypeToRepresentAs:     typeToRepresentAs,
		Fields:                fields,
		CompileTimeParameters: ctParams,
		OuterScope:            outer,
		InnerScope:            inner,
		Name:                  p.anonymousName("represent_as"),
		Sp:                    start.To(end.Span),
	}, nil
}

// parseTagList parses a `#[expr, ...]` tag list preceding a `let`
// declaration (original_source's statements/tag.rs).
func (p *Parser) parseTagList() ([]ast.Expr, error) {
	p.toks.Pop() // HASH
	if _, err := p.expect(token.LBRACK); err != nil {
		return nil, err
	}
	var tags []ast.Expr
	for !p.toks.At(token.RBRACK) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		tags = append(tags, e)
		if p.toks.At(token.COMMA) {
			p.toks.Pop()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACK); err != nil {
		return nil, err
	}
	return tags, nil
}
