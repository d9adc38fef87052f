package parser

import (
	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/lexer"
	"eel/interpreter-go/pkg/token"
)

// Parser is a recursive-descent parser over a fully scanned token buffer.
// Speculative sub-parses rewind the cursor by the number of tokens they
// consumed when they fail.
type Parser struct {
	tokens []token.Token
	idx    int
}

// New creates a parser over tokens, which must end with an EOF token.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		tokens = append(tokens, token.Token{Kind: token.EOF})
	}
	return &Parser{tokens: tokens}
}

// Parse parses a complete program. The root node is the statement list.
func Parse(tokens []token.Token) (*ast.ListExpression, error) {
	return New(tokens).Program()
}

// ParseSource scans and parses text in one step. Scanning errors are returned
// unchanged, including lexer.ErrTooManyDots.
func ParseSource(file, text string) (*ast.ListExpression, error) {
	tokens, err := lexer.Tokenize(file, text)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Program parses statements and rejects anything left before EOF. A source
// holding only separators parses to an empty statement list.
func (p *Parser) Program() (*ast.ListExpression, error) {
	if p.blank() {
		eof := p.tokens[len(p.tokens)-1]
		return ast.NewListExpression(nil, ast.TokenSpan(eof)), nil
	}
	list, err := p.statements()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != token.EOF {
		return nil, p.errorAtCurrent("Token cannot appear after previous token")
	}
	return list, nil
}

func (p *Parser) blank() bool {
	for _, tok := range p.tokens {
		if tok.Kind != token.NEWLINE && tok.Kind != token.EOF {
			return false
		}
	}
	return true
}

func (p *Parser) current() token.Token {
	if p.idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.idx]
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.idx < len(p.tokens) {
		p.idx++
	}
	return tok
}

func (p *Parser) rewind(amount int) {
	p.idx -= amount
	if p.idx < 0 {
		p.idx = 0
	}
}

func (p *Parser) mark() int { return p.idx }

// consumed reports how many tokens were advanced since mark.
func (p *Parser) consumed(mark int) int { return p.idx - mark }

func (p *Parser) at(kind token.Kind) bool { return p.current().Kind == kind }

func (p *Parser) atKeyword(word string) bool { return p.current().IsKeyword(word) }

// attempt runs a speculative parse. On failure the cursor is rewound by the
// number of tokens the attempt consumed and the error is discarded.
func (p *Parser) attempt(parse func() (ast.Node, error)) (ast.Node, bool) {
	start := p.mark()
	node, err := parse()
	if err != nil {
		p.rewind(p.consumed(start))
		return nil, false
	}
	return node, true
}

func (p *Parser) errorAtCurrent(details string) error {
	tok := p.current()
	return diagnostics.New(diagnostics.InvalidSyntax, details, tok.Start, tok.End)
}

// expected replaces err with a broader message anchored at the current token,
// but only when nothing was consumed since mark. Once tokens have been
// consumed the first, more specific error wins.
func (p *Parser) expected(mark int, err error, details string) error {
	if p.consumed(mark) > 0 {
		return err
	}
	return p.errorAtCurrent(details)
}

// expectedFrom is expected with a span running from start to the current
// token.
func (p *Parser) expectedFrom(mark int, start token.Position, err error, details string) error {
	if p.consumed(mark) > 0 {
		return err
	}
	return diagnostics.New(diagnostics.InvalidSyntax, details, start, p.current().End)
}
