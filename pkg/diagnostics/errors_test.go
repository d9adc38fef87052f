package diagnostics

import (
	"errors"
	"strings"
	"testing"

	"eel/interpreter-go/pkg/token"
)

type stubFrame struct {
	name   string
	caller *stubFrame
	site   token.Position
}

func (f *stubFrame) FrameName() string { return f.name }

func (f *stubFrame) CallerFrame() Frame {
	if f.caller == nil {
		return nil
	}
	return f.caller
}

func (f *stubFrame) CallSite() token.Position { return f.site }

func at(text string, line, col int) token.Position {
	return token.Position{Line: line, Column: col, File: "main.eel", Text: text}
}

func TestRenderWithoutFrame(t *testing.T) {
	src := "VAR a = 1 +\n"
	err := New(InvalidSyntax, "Expected int or float", at(src, 0, 11), at(src, 0, 12))
	want := "ERROR: Invalid Syntax: Expected int or float\nFile: main.eel, line: 1\n\nVAR a = 1 +\n           ^"
	if got := err.Render(); got != want {
		t.Fatalf("render mismatch\nwant %q\n got %q", want, got)
	}
}

func TestRenderTracebackOutermostFirst(t *testing.T) {
	src := "FN f(a) -> a / 0\nPRINT(1)\nf(3)"
	program := &stubFrame{name: "<program>"}
	fn := &stubFrame{name: "f", caller: program, site: at(src, 2, 0)}
	err := Runtime(DivisionByZero, "Division by zero", at(src, 0, 15), at(src, 0, 16), fn)

	want := strings.Join([]string{
		"Traceback (most recent call last):",
		"  File main.eel, line 3, in <program>",
		"  File main.eel, line 1, in f",
		"Runtime Error: Division by zero",
		"",
		"FN f(a) -> a / 0",
		"               ^",
	}, "\n")
	if got := err.Render(); got != want {
		t.Fatalf("render mismatch\nwant %q\n got %q", want, got)
	}
}

func TestExcerptSpansLines(t *testing.T) {
	src := "IF x THEN\n\tfoo\nEND"
	got := Excerpt(at(src, 0, 3), at(src, 1, 3))
	want := "IF x THEN\n   ^^^^^^\nfoo\n^^^"
	if got != want {
		t.Fatalf("excerpt mismatch\nwant %q\n got %q", want, got)
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	var err error = New(KeyNotFound, "Key 'a' is not in dictionary", token.Position{}, token.Position{})
	if !errors.Is(err, &Error{Kind: KeyNotFound}) {
		t.Fatalf("expected errors.Is to match on kind")
	}
	if errors.Is(err, &Error{Kind: KeyNotFound, Details: "other"}) {
		t.Fatalf("details mismatch should not match")
	}
	if !KeyNotFound.IsRuntime() || InvalidSyntax.IsRuntime() {
		t.Fatalf("unexpected runtime classification")
	}
	if ConversionError.Title() != "Conversion Error" {
		t.Fatalf("unexpected title %q", ConversionError.Title())
	}
}
