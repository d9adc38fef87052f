package token

import (
	"fmt"
	"strconv"
)

// Kind identifies a token category.
type Kind int

const (
	INT Kind = iota
	FLOAT
	STRING
	IDENTIFIER
	KEYWORD
	PLUS
	MINUS
	MUL
	DIV
	MOD
	POW
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LCURLY
	RCURLY
	EQ
	EE
	NE
	LT
	GT
	LTE
	GTE
	COMMA
	COLON
	DUBCOL
	ARROW
	NEWLINE
	EOF
)

var kindNames = [...]string{
	INT:        "INT",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	IDENTIFIER: "IDENTIFIER",
	KEYWORD:    "KEYWORD",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	MUL:        "MUL",
	DIV:        "DIV",
	MOD:        "MOD",
	POW:        "POW",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	LCURLY:     "LCURLY",
	RCURLY:     "RCURLY",
	EQ:         "EQ",
	EE:         "EE",
	NE:         "NE",
	LT:         "LT",
	GT:         "GT",
	LTE:        "LTE",
	GTE:        "GTE",
	COMMA:      "COMMA",
	COLON:      "COLON",
	DUBCOL:     "DUBCOL",
	ARROW:      "ARROW",
	NEWLINE:    "NEWLINE",
	EOF:        "EOF",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// Keywords is the reserved word set. Matching is case-sensitive.
var Keywords = map[string]struct{}{
	"VAR":      {},
	"AND":      {},
	"OR":       {},
	"XOR":      {},
	"NOT":      {},
	"IF":       {},
	"THEN":     {},
	"ELIF":     {},
	"ELSE":     {},
	"FOR":      {},
	"TO":       {},
	"STEP":     {},
	"WHILE":    {},
	"CONTINUE": {},
	"BREAK":    {},
	"FN":       {},
	"RETURN":   {},
	"IMPORT":   {},
	"END":      {},
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := Keywords[word]
	return ok
}

// Token is one lexeme. Text holds identifier, keyword and string payloads;
// Num holds the value of INT and FLOAT tokens.
type Token struct {
	Kind  Kind
	Text  string
	Num   float64
	Start Position
	End   Position
}

// New builds a token spanning a single character at start.
func New(kind Kind, start Position) Token {
	return Token{Kind: kind, Start: start, End: start.Advance(0)}
}

// NewSpan builds a token with an explicit span.
func NewSpan(kind Kind, start, end Position) Token {
	return Token{Kind: kind, Start: start, End: end}
}

// Matches reports whether the token has the given kind and text.
func (t Token) Matches(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsKeyword reports whether the token is the keyword word.
func (t Token) IsKeyword(word string) bool {
	return t.Matches(KEYWORD, word)
}

func (t Token) String() string {
	switch t.Kind {
	case INT, FLOAT:
		return fmt.Sprintf("%s:%s", t.Kind, strconv.FormatFloat(t.Num, 'f', -1, 64))
	case STRING, IDENTIFIER, KEYWORD:
		return fmt.Sprintf("%s:%s", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
