package parser

import (
	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/token"
)

const (
	msgStatement = "Expected 'RETURN', 'IMPORT', 'CONTINUE', 'BREAK', 'VAR', 'IF', 'FOR', 'WHILE', 'FN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
	msgExpr      = "Expected 'VAR', 'IF', 'FOR', 'WHILE', 'FN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
)

// statements parses one statement followed by any number of newline
// separated statements. A statement that fails after a separator is rewound
// and ends the list; the caller decides what the leftover token means.
func (p *Parser) statements() (*ast.ListExpression, error) {
	start := p.current().Start
	p.skipNewlines()

	first, err := p.statement()
	if err != nil {
		return nil, err
	}
	nodes := []ast.Node{first}
	for p.skipNewlines() > 0 {
		next, ok := p.attempt(p.statement)
		if !ok {
			break
		}
		nodes = append(nodes, next)
	}
	return ast.NewListExpression(nodes, ast.Span{Start: start, End: p.current().End}), nil
}

func (p *Parser) skipNewlines() int {
	count := 0
	for p.at(token.NEWLINE) {
		p.advance()
		count++
	}
	return count
}

func (p *Parser) statement() (ast.Node, error) {
	start := p.current().Start
	switch {
	case p.atKeyword("RETURN"):
		p.advance()
		value, _ := p.attempt(p.expr)
		return ast.NewReturnStatement(value, ast.Span{Start: start, End: p.current().Start}), nil
	case p.atKeyword("CONTINUE"):
		p.advance()
		return ast.NewContinueStatement(ast.Span{Start: start, End: p.current().Start}), nil
	case p.atKeyword("BREAK"):
		p.advance()
		return ast.NewBreakStatement(ast.Span{Start: start, End: p.current().Start}), nil
	case p.atKeyword("IMPORT"):
		p.advance()
		target, _ := p.attempt(p.expr)
		return ast.NewImportStatement(target, ast.Span{Start: start, End: p.current().Start}), nil
	}

	mark := p.mark()
	node, err := p.expr()
	if err != nil {
		return nil, p.expectedFrom(mark, start, err, msgStatement)
	}
	return node, nil
}
