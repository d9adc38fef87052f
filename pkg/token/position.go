package token

// Position is a snapshot of a location in a source text. It is a value type:
// tokens and nodes keep their own copies.
type Position struct {
	Offset int
	Line   int
	Column int
	File   string
	Text   string
}

// Start returns the position that precedes the first character of text.
// Callers advance it once before reading.
func Start(file, text string) Position {
	return Position{Offset: -1, Line: 0, Column: -1, File: file, Text: text}
}

// Advance moves past ch. Passing a newline moves to the next line.
func (p Position) Advance(ch rune) Position {
	p.Offset++
	p.Column++
	if ch == '\n' {
		p.Line++
		p.Column = 0
	}
	return p
}

// DisplayLine is the 1-based line number used in diagnostics.
func (p Position) DisplayLine() int {
	return p.Line + 1
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p == Position{}
}
