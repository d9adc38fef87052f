package parser

import (
	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/token"
)

func (p *Parser) ifExpression() (ast.Node, error) {
	cases, elseCase, err := p.ifCases("IF")
	if err != nil {
		return nil, err
	}
	return ast.NewIfExpression(cases, elseCase), nil
}

// ifCases parses one IF or ELIF arm and everything chained after it.
func (p *Parser) ifCases(keyword string) ([]ast.IfCase, *ast.ElseCase, error) {
	if !p.atKeyword(keyword) {
		return nil, nil, p.errorAtCurrent("Expected '" + keyword + "'")
	}
	p.advance()

	condition, err := p.expr()
	if err != nil {
		return nil, nil, err
	}
	if !p.atKeyword("THEN") {
		return nil, nil, p.errorAtCurrent("Expected 'THEN'")
	}
	p.advance()

	if p.at(token.NEWLINE) {
		p.advance()
		body, err := p.statements()
		if err != nil {
			return nil, nil, err
		}
		cases := []ast.IfCase{{Condition: condition, Body: body, DiscardResult: true}}
		if p.atKeyword("END") {
			p.advance()
			return cases, nil, nil
		}
		if !p.atKeyword("ELIF") && !p.atKeyword("ELSE") {
			return nil, nil, p.errorAtCurrent("Expected 'END'")
		}
		more, elseCase, err := p.elifOrElse()
		if err != nil {
			return nil, nil, err
		}
		return append(cases, more...), elseCase, nil
	}

	body, err := p.statement()
	if err != nil {
		return nil, nil, err
	}
	cases := []ast.IfCase{{Condition: condition, Body: body}}
	more, elseCase, err := p.elifOrElse()
	if err != nil {
		return nil, nil, err
	}
	return append(cases, more...), elseCase, nil
}

func (p *Parser) elifOrElse() ([]ast.IfCase, *ast.ElseCase, error) {
	if p.atKeyword("ELIF") {
		return p.ifCases("ELIF")
	}
	elseCase, err := p.elseCase()
	return nil, elseCase, err
}

// elseCase returns nil when there is no ELSE.
func (p *Parser) elseCase() (*ast.ElseCase, error) {
	if !p.atKeyword("ELSE") {
		return nil, nil
	}
	p.advance()

	if p.at(token.NEWLINE) {
		p.advance()
		body, err := p.statements()
		if err != nil {
			return nil, err
		}
		if !p.atKeyword("END") {
			return nil, p.errorAtCurrent("Expected 'END'")
		}
		p.advance()
		return &ast.ElseCase{Body: body, DiscardResult: true}, nil
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.ElseCase{Body: body}, nil
}

func (p *Parser) forLoop() (ast.Node, error) {
	p.advance()
	if !p.at(token.IDENTIFIER) {
		return nil, p.errorAtCurrent("Expected identifier")
	}
	variable := p.advance()
	if !p.at(token.EQ) {
		return nil, p.errorAtCurrent("Expected '='")
	}
	p.advance()

	start, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.atKeyword("TO") {
		return nil, p.errorAtCurrent("Expected 'TO'")
	}
	p.advance()
	end, err := p.expr()
	if err != nil {
		return nil, err
	}

	var step ast.Node
	if p.atKeyword("STEP") {
		p.advance()
		if step, err = p.expr(); err != nil {
			return nil, err
		}
	}

	body, discard, err := p.loopBody()
	if err != nil {
		return nil, err
	}
	return ast.NewForLoop(variable, start, end, step, body, discard), nil
}

func (p *Parser) whileLoop() (ast.Node, error) {
	p.advance()
	condition, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, discard, err := p.loopBody()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(condition, body, discard), nil
}

// loopBody parses `THEN stmt` or `THEN NEWLINE statements END`. The block
// form reports discard=true.
func (p *Parser) loopBody() (ast.Node, bool, error) {
	if !p.atKeyword("THEN") {
		return nil, false, p.errorAtCurrent("Expected 'THEN'")
	}
	p.advance()

	if !p.at(token.NEWLINE) {
		body, err := p.statement()
		return body, false, err
	}
	p.advance()
	body, err := p.statements()
	if err != nil {
		return nil, false, err
	}
	if !p.atKeyword("END") {
		return nil, false, p.errorAtCurrent("Expected 'END'")
	}
	p.advance()
	return body, true, nil
}

func (p *Parser) functionDefinition() (ast.Node, error) {
	p.advance()

	var name *token.Token
	if p.at(token.IDENTIFIER) {
		tok := p.advance()
		name = &tok
		if !p.at(token.LPAREN) {
			return nil, p.errorAtCurrent("Expected '('")
		}
	} else if !p.at(token.LPAREN) {
		return nil, p.errorAtCurrent("Expected identifier or '('")
	}
	p.advance()

	var params []token.Token
	if p.at(token.IDENTIFIER) {
		params = append(params, p.advance())
		for p.at(token.COMMA) {
			p.advance()
			if !p.at(token.IDENTIFIER) {
				return nil, p.errorAtCurrent("Expected identifier")
			}
			params = append(params, p.advance())
		}
		if !p.at(token.RPAREN) {
			return nil, p.errorAtCurrent("Expected ',' or ')'")
		}
	} else if !p.at(token.RPAREN) {
		return nil, p.errorAtCurrent("Expected identifier or ')'")
	}
	p.advance()

	if p.at(token.ARROW) {
		p.advance()
		body, err := p.expr()
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionDefinition(name, params, body, true), nil
	}
	if !p.at(token.NEWLINE) {
		return nil, p.errorAtCurrent("Expected '->' or NEWLINE")
	}
	p.advance()
	body, err := p.statements()
	if err != nil {
		return nil, err
	}
	if !p.atKeyword("END") {
		return nil, p.errorAtCurrent("Expected 'END'")
	}
	p.advance()
	return ast.NewFunctionDefinition(name, params, body, false), nil
}
