package parser

import (
	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/token"
)

const (
	msgAtom     = "Expected int, float, identifier, '+', '-', '(', '[', 'IF', 'FOR', 'WHILE', or 'FN'"
	msgListElem = "Expected ']', 'VAR', 'IF', 'FOR', 'WHILE', 'FN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
	msgDictKey  = "Expected '}', 'VAR', 'IF', 'FOR', 'WHILE', 'FN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
)

func (p *Parser) atom() (ast.Node, error) {
	tok := p.current()
	switch {
	case tok.Kind == token.INT || tok.Kind == token.FLOAT:
		p.advance()
		return ast.NewNumberLiteral(tok), nil
	case tok.Kind == token.STRING:
		p.advance()
		return ast.NewStringLiteral(tok), nil
	case tok.Kind == token.IDENTIFIER:
		return p.identifier()
	case tok.Kind == token.LPAREN:
		p.advance()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if !p.at(token.RPAREN) {
			return nil, p.errorAtCurrent("Expected ')'")
		}
		p.advance()
		return inner, nil
	case tok.Kind == token.LBRACKET:
		return p.listLiteral()
	case tok.Kind == token.LCURLY:
		return p.dictLiteral()
	case tok.IsKeyword("IF"):
		return p.ifExpression()
	case tok.IsKeyword("FOR"):
		return p.forLoop()
	case tok.IsKeyword("WHILE"):
		return p.whileLoop()
	case tok.IsKeyword("FN"):
		return p.functionDefinition()
	}
	return nil, p.errorAtCurrent(msgAtom)
}

// identifier parses a name, merging `module :: member` into a single
// qualified name so imported bindings read like plain variables.
func (p *Parser) identifier() (ast.Node, error) {
	name := p.advance()
	if !p.at(token.DUBCOL) {
		return ast.NewVarAccess(name), nil
	}
	p.advance()
	if !p.at(token.IDENTIFIER) {
		return nil, diagnostics.New(diagnostics.InvalidSyntax, "Expected identifier after '::'", name.Start, p.current().End)
	}
	member := p.advance()
	name.Text += "::" + member.Text
	name.End = member.End
	return ast.NewVarAccess(name), nil
}

func (p *Parser) listLiteral() (ast.Node, error) {
	start := p.advance().Start
	var elements []ast.Node

	if p.at(token.RBRACKET) {
		closing := p.advance()
		return ast.NewListExpression(elements, ast.Span{Start: start, End: closing.End}), nil
	}

	mark := p.mark()
	el, err := p.expr()
	if err != nil {
		return nil, p.expected(mark, err, msgListElem)
	}
	elements = append(elements, el)
	for p.at(token.COMMA) {
		p.advance()
		el, err := p.expr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	if !p.at(token.RBRACKET) {
		return nil, p.errorAtCurrent("Expected ',' or ']'")
	}
	closing := p.advance()
	return ast.NewListExpression(elements, ast.Span{Start: start, End: closing.End}), nil
}

func (p *Parser) dictLiteral() (ast.Node, error) {
	start := p.advance().Start
	var entries []ast.DictEntry

	if !p.at(token.RCURLY) {
		for {
			mark := p.mark()
			key, err := p.expr()
			if err != nil {
				return nil, p.expected(mark, err, msgDictKey)
			}
			if !p.at(token.COLON) {
				return nil, diagnostics.New(diagnostics.InvalidSyntax, "Expected ':'", start, p.current().End)
			}
			p.advance()
			value, err := p.expr()
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.DictEntry{Key: key, Value: value})
			if !p.at(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	if !p.at(token.RCURLY) {
		return nil, p.errorAtCurrent("Expected ',' or '}'")
	}
	closing := p.advance()
	return ast.NewDictExpression(entries, ast.Span{Start: start, End: closing.End}), nil
}
