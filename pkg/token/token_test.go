package token

import "testing"

func TestAdvanceTracksLinesAndColumns(t *testing.T) {
	pos := Start("demo.eel", "ab\nc")
	for _, ch := range []rune{0, 'a', 'b'} {
		pos = pos.Advance(ch)
	}
	if pos.Offset != 2 || pos.Line != 0 || pos.Column != 2 {
		t.Fatalf("unexpected position before newline: %#v", pos)
	}
	pos = pos.Advance('\n')
	if pos.Offset != 3 || pos.Line != 1 || pos.Column != 0 {
		t.Fatalf("unexpected position after newline: %#v", pos)
	}
	if pos.DisplayLine() != 2 {
		t.Fatalf("expected display line 2, got %d", pos.DisplayLine())
	}
}

func TestAdvanceReturnsCopy(t *testing.T) {
	start := Start("demo.eel", "x")
	next := start.Advance(0)
	if start.Offset != -1 {
		t.Fatalf("Advance mutated its receiver: %#v", start)
	}
	if next.Offset != 0 || next.Column != 0 {
		t.Fatalf("unexpected first position: %#v", next)
	}
}

func TestTokenMatching(t *testing.T) {
	tok := Token{Kind: KEYWORD, Text: "VAR"}
	if !tok.IsKeyword("VAR") {
		t.Fatalf("expected VAR keyword match")
	}
	if tok.IsKeyword("var") {
		t.Fatalf("keyword matching must be case-sensitive")
	}
	if got := (Token{Kind: INT, Num: 42}).String(); got != "INT:42" {
		t.Fatalf("unexpected token string %q", got)
	}
	if got := (Token{Kind: ARROW}).String(); got != "ARROW" {
		t.Fatalf("unexpected token string %q", got)
	}
}
