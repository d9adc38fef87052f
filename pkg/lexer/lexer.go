package lexer

import (
	"errors"
	"strconv"
	"strings"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/token"
)

// ErrTooManyDots aborts scanning when a numeric literal holds a second '.'.
// It carries no position: hosts treat it as a hard stop, not a diagnostic.
var ErrTooManyDots = errors.New("Too many dots in number")

var escapes = map[rune]rune{
	'n': '\n',
	't': '\t',
	'r': '\r',
	'b': '\b',
	'f': '\f',
}

// Lexer turns source text into tokens.
type Lexer struct {
	text    []rune
	pos     token.Position
	current rune
	done    bool
}

// New prepares a lexer over text; file names the source in diagnostics.
func New(file, text string) *Lexer {
	lx := &Lexer{text: []rune(text), pos: token.Start(file, text)}
	lx.advance()
	return lx
}

// Tokenize is a convenience wrapper around New(file, text).Tokens().
func Tokenize(file, text string) ([]token.Token, error) {
	return New(file, text).Tokens()
}

func (lx *Lexer) advance() {
	lx.pos = lx.pos.Advance(lx.current)
	if lx.pos.Offset < len(lx.text) {
		lx.current = lx.text[lx.pos.Offset]
		lx.done = false
		return
	}
	lx.current = 0
	lx.done = true
}

// Tokens scans the whole input. The returned error is either a
// *diagnostics.Error or ErrTooManyDots.
func (lx *Lexer) Tokens() ([]token.Token, error) {
	var tokens []token.Token
	for !lx.done {
		ch := lx.current
		switch {
		case ch == ' ' || ch == '\t':
			lx.advance()
		case ch == '#':
			if tok, ok := lx.skipComment(); ok {
				tokens = append(tokens, tok)
			}
		case ch == '"':
			tok, err := lx.makeString()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case ch == ';' || ch == '\n':
			tokens = append(tokens, token.New(token.NEWLINE, lx.pos))
			lx.advance()
		case isDigit(ch):
			tok, err := lx.makeNumber()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case isLetter(ch):
			tokens = append(tokens, lx.makeIdentifier())
		case ch == '-':
			tokens = append(tokens, lx.makePair(token.MINUS, '>', token.ARROW))
		case ch == '*':
			tokens = append(tokens, lx.makePair(token.MUL, '*', token.POW))
		case ch == '=':
			tokens = append(tokens, lx.makePair(token.EQ, '=', token.EE))
		case ch == '<':
			tokens = append(tokens, lx.makePair(token.LT, '=', token.LTE))
		case ch == '>':
			tokens = append(tokens, lx.makePair(token.GT, '=', token.GTE))
		case ch == ':':
			tokens = append(tokens, lx.makePair(token.COLON, ':', token.DUBCOL))
		case ch == '!':
			tok, err := lx.makeNotEquals()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		default:
			kind, ok := singleCharTokens[ch]
			if !ok {
				start := lx.pos
				lx.advance()
				return nil, diagnostics.New(diagnostics.IllegalChar, "'"+string(ch)+"'", start, lx.pos)
			}
			tokens = append(tokens, token.New(kind, lx.pos))
			lx.advance()
		}
	}
	tokens = append(tokens, token.New(token.EOF, lx.pos))
	return tokens, nil
}

var singleCharTokens = map[rune]token.Kind{
	'+': token.PLUS,
	'/': token.DIV,
	'%': token.MOD,
	'^': token.POW,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	'{': token.LCURLY,
	'}': token.RCURLY,
	',': token.COMMA,
}

// makePair resolves a one- or two-character operator with one character of
// lookahead.
func (lx *Lexer) makePair(single token.Kind, next rune, double token.Kind) token.Token {
	start := lx.pos
	lx.advance()
	if !lx.done && lx.current == next {
		lx.advance()
		return token.NewSpan(double, start, lx.pos)
	}
	return token.NewSpan(single, start, lx.pos)
}

func (lx *Lexer) makeNotEquals() (token.Token, error) {
	start := lx.pos
	lx.advance()
	if !lx.done && lx.current == '=' {
		lx.advance()
		return token.NewSpan(token.NE, start, lx.pos), nil
	}
	lx.advance()
	return token.Token{}, diagnostics.New(diagnostics.ExpectedChar, "Expected '=' after '!'", start, lx.pos)
}

func (lx *Lexer) makeString() (token.Token, error) {
	start := lx.pos
	var b strings.Builder
	escaped := false
	lx.advance()
	for !lx.done && (lx.current != '"' || escaped) {
		if escaped {
			if repl, ok := escapes[lx.current]; ok {
				b.WriteRune(repl)
			} else {
				b.WriteRune(lx.current)
			}
			escaped = false
		} else if lx.current == '\\' {
			escaped = true
		} else {
			b.WriteRune(lx.current)
		}
		lx.advance()
	}
	if lx.done {
		return token.Token{}, diagnostics.New(diagnostics.ExpectedChar, `Expected '"'`, start, lx.pos)
	}
	lx.advance()
	return token.Token{Kind: token.STRING, Text: b.String(), Start: start, End: lx.pos}, nil
}

func (lx *Lexer) makeNumber() (token.Token, error) {
	start := lx.pos
	var b strings.Builder
	dots := 0
	for !lx.done && (isDigit(lx.current) || lx.current == '.') {
		if lx.current == '.' {
			if dots == 1 {
				return token.Token{}, ErrTooManyDots
			}
			dots++
		}
		b.WriteRune(lx.current)
		lx.advance()
	}
	literal := b.String()
	kind := token.INT
	if dots > 0 {
		kind = token.FLOAT
		if strings.HasSuffix(literal, ".") {
			literal += "0"
		}
	}
	num, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return token.Token{}, diagnostics.New(diagnostics.IllegalChar, "'"+literal+"'", start, lx.pos)
	}
	return token.Token{Kind: kind, Text: b.String(), Num: num, Start: start, End: lx.pos}, nil
}

func (lx *Lexer) makeIdentifier() token.Token {
	start := lx.pos
	var b strings.Builder
	for !lx.done && (isLetter(lx.current) || isDigit(lx.current) || lx.current == '_') {
		b.WriteRune(lx.current)
		lx.advance()
	}
	word := b.String()
	kind := token.IDENTIFIER
	if token.IsKeyword(word) {
		kind = token.KEYWORD
	}
	return token.Token{Kind: kind, Text: word, Start: start, End: lx.pos}
}

// skipComment consumes '#' through the end of the line. The newline that
// ends the comment is still reported as a separator.
func (lx *Lexer) skipComment() (token.Token, bool) {
	lx.advance()
	for !lx.done && lx.current != '\n' {
		lx.advance()
	}
	if lx.done {
		return token.Token{}, false
	}
	tok := token.New(token.NEWLINE, lx.pos)
	lx.advance()
	return tok, true
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
