package ast

import "eel/interpreter-go/pkg/token"

// Span is the source range covered by a node.
type Span struct {
	Start token.Position
	End   token.Position
}

// TokenSpan returns the span of a single token.
func TokenSpan(tok token.Token) Span {
	return Span{Start: tok.Start, End: tok.End}
}

// Join spans from the start of a to the end of b.
func Join(a, b Span) Span {
	return Span{Start: a.Start, End: b.End}
}
