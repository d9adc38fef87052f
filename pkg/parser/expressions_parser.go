package parser

import (
	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/token"
)

const (
	msgComparison = "Expected int, float, identifier, '+', '-', 'NOT', '[', or '('"
	msgCallArgs   = "Expected ')', 'VAR', 'IF', 'FOR', 'WHILE', 'FN', int, float, identifier, '+', '-', '(', '[' or 'NOT'"
)

// operatorSet matches operator tokens by kind, and keyword operators by text.
type operatorSet struct {
	kinds    []token.Kind
	keywords []string
}

func (s operatorSet) matches(tok token.Token) bool {
	for _, kind := range s.kinds {
		if tok.Kind == kind {
			return true
		}
	}
	if tok.Kind != token.KEYWORD {
		return false
	}
	for _, word := range s.keywords {
		if tok.Text == word {
			return true
		}
	}
	return false
}

var (
	logicalOps    = operatorSet{keywords: []string{"AND", "OR", "XOR"}}
	comparisonOps = operatorSet{kinds: []token.Kind{token.EE, token.NE, token.LT, token.GT, token.LTE, token.GTE}}
	additiveOps   = operatorSet{kinds: []token.Kind{token.PLUS, token.MINUS}}
	termOps       = operatorSet{kinds: []token.Kind{token.MUL, token.DIV, token.MOD}}
	powerOps      = operatorSet{kinds: []token.Kind{token.POW}}
)

func (p *Parser) expr() (ast.Node, error) {
	if p.atKeyword("VAR") {
		p.advance()
		if !p.at(token.IDENTIFIER) {
			return nil, p.errorAtCurrent("Expected Identifier")
		}
		name := p.advance()
		if !p.at(token.EQ) {
			return nil, p.errorAtCurrent("Expected '='")
		}
		p.advance()
		value, err := p.expr()
		if err != nil {
			return nil, err
		}
		return ast.NewVarAssign(name, value), nil
	}

	mark := p.mark()
	node, err := p.binaryOp(p.comparison, logicalOps, nil)
	if err != nil {
		return nil, p.expected(mark, err, msgExpr)
	}
	return node, nil
}

func (p *Parser) comparison() (ast.Node, error) {
	if p.atKeyword("NOT") {
		op := p.advance()
		operand, err := p.comparison()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(op, operand), nil
	}

	mark := p.mark()
	node, err := p.binaryOp(p.arith, comparisonOps, nil)
	if err != nil {
		return nil, p.expected(mark, err, msgComparison)
	}
	return node, nil
}

func (p *Parser) arith() (ast.Node, error) {
	return p.binaryOp(p.term, additiveOps, nil)
}

func (p *Parser) term() (ast.Node, error) {
	return p.binaryOp(p.factor, termOps, nil)
}

func (p *Parser) factor() (ast.Node, error) {
	if p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.advance()
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(op, operand), nil
	}
	return p.power()
}

// power is right-associative: its right operand recurses through factor.
func (p *Parser) power() (ast.Node, error) {
	return p.binaryOp(p.call, powerOps, p.factor)
}

func (p *Parser) call() (ast.Node, error) {
	callee, err := p.atom()
	if err != nil {
		return nil, err
	}
	if !p.at(token.LPAREN) {
		return callee, nil
	}
	p.advance()

	var args []ast.Node
	if p.at(token.RPAREN) {
		p.advance()
		return ast.NewFunctionCall(callee, args), nil
	}

	mark := p.mark()
	arg, err := p.expr()
	if err != nil {
		return nil, p.expected(mark, err, msgCallArgs)
	}
	args = append(args, arg)
	for p.at(token.COMMA) {
		p.advance()
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if !p.at(token.RPAREN) {
		return nil, p.errorAtCurrent("Expected ',' or ')'")
	}
	p.advance()
	return ast.NewFunctionCall(callee, args), nil
}

// binaryOp parses a left-associative chain of left operands joined by ops.
// When right is nil the left rule also parses right operands.
func (p *Parser) binaryOp(left func() (ast.Node, error), ops operatorSet, right func() (ast.Node, error)) (ast.Node, error) {
	if right == nil {
		right = left
	}
	node, err := left()
	if err != nil {
		return nil, err
	}
	for ops.matches(p.current()) {
		op := p.advance()
		rhs, err := right()
		if err != nil {
			return nil, err
		}
		node = ast.NewBinaryOp(node, op, rhs)
	}
	return node, nil
}
