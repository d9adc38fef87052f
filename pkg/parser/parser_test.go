package parser

import (
	"errors"
	"testing"

	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
)

func parseDump(t *testing.T, source string) string {
	t.Helper()
	program, err := ParseSource("test.eel", source)
	if err != nil {
		t.Fatalf("ParseSource(%q) error: %v", source, err)
	}
	return ast.Dump(program)
}

func parseError(t *testing.T, source string) *diagnostics.Error {
	t.Helper()
	_, err := ParseSource("test.eel", source)
	if err == nil {
		t.Fatalf("expected syntax error for %q", source)
	}
	var diag *diagnostics.Error
	if !errors.As(err, &diag) {
		t.Fatalf("expected *diagnostics.Error, got %T", err)
	}
	return diag
}

func TestParseProgramShapes(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"precedence", "2 + 3 * 4", "[(+ 2 (* 3 4))]"},
		{"power is right associative", "2 ** 3 ** 2", "[(** 2 (** 3 2))]"},
		{"caret is power", "2 ^ 3", "[(** 2 3)]"},
		{"unary binds looser than power", "-2 ** 2", "[(- (** 2 2))]"},
		{"parentheses", "(1 + 2) * 3", "[(* (+ 1 2) 3)]"},
		{"logical chain", "a AND b OR c", "[(OR (AND a b) c)]"},
		{"not", "NOT a == b", "[(NOT (== a b))]"},
		{"floats", "1.5 + 2.", "[(+ 1.5 2.0)]"},
		{"string", `"hi"`, `["hi"]`},
		{"assignment", "VAR a = VAR b = 1", "[(var a (var b 1))]"},
		{"separators", "VAR a = 1; a\n\n a", "[(var a 1) a a]"},
		{"qualified name", "math::sqrt(4)", "[(call math::sqrt 4)]"},
		{"call without args", "f()", "[(call f)]"},
		{"call with args", "f(1, g(2), [3])", "[(call f 1 (call g 2) [3])]"},
		{"list", "[]", "[[]]"},
		{"dict", `{"a": 1, "b": [1, 2]}`, `[{"a":1 "b":[1 2]}]`},
		{"empty dict", "{}", "[{}]"},
		{"inline if", "IF x THEN 1 ELIF y THEN 2 ELSE 3", "[(if x 1 y 2 else 3)]"},
		{"block if", "IF x THEN\n  PRINT(1)\nELSE\n  PRINT(2)\nEND", "[(if x [(call PRINT 1)] else [(call PRINT 2)])]"},
		{"block elif", "IF x THEN\n 1\nELIF y THEN\n 2\nEND", "[(if x [1] y [2])]"},
		{"for with step", "FOR i = 0 TO 10 STEP 2 THEN i", "[(for i 0 10 step 2 i)]"},
		{"while block", "WHILE x THEN\n  BREAK\nEND", "[(while x [(break)])]"},
		{"arrow function", "FN add(a, b) -> a + b", "[(fn add (a b) (+ a b))]"},
		{"anonymous function", "FN (x) -> x", "[(fn <anonymous> (x) x)]"},
		{"block function", "FN f()\n  CONTINUE\n  RETURN 5\nEND", "[(fn f () [(continue) (return 5)])]"},
		{"bare return", "RETURN\n", "[(return)]"},
		{"import", `IMPORT "math"`, `[(import "math")]`},
		{"comment separator", "1 # one\n2", "[1 2]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseDump(t, tc.source); got != tc.want {
				t.Fatalf("dump mismatch\nwant %s\n got %s", tc.want, got)
			}
		})
	}
}

func TestParseBlankSource(t *testing.T) {
	program, err := ParseSource("test.eel", "\n# nothing here\n;")
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	if len(program.Elements) != 0 {
		t.Fatalf("expected no statements, got %s", ast.Dump(program))
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := []struct {
		source  string
		details string
		column  int
	}{
		{"VAR 5 = 2", "Expected Identifier", 4},
		{"VAR a 2", "Expected '='", 6},
		{"1 2", "Token cannot appear after previous token", 2},
		{"RETURN VAR", "Token cannot appear after previous token", 7},
		{"f(1", "Expected ',' or ')'", 3},
		{"f(,)", msgCallArgs, 2},
		{"[1 2]", "Expected ',' or ']'", 3},
		{`{"a" 1}`, "Expected ':'", 0},
		{`{"a": 1 2}`, "Expected ',' or '}'", 8},
		{"(1", "Expected ')'", 2},
		{"a :: 1", "Expected identifier after '::'", 0},
		{"IF x 1", "Expected 'THEN'", 5},
		{"IF x THEN\n 1\n", "Expected 'END'", 0},
		{"FOR 1", "Expected identifier", 4},
		{"FOR i = 1 2", "Expected 'TO'", 10},
		{"FN 1", "Expected identifier or '('", 3},
		{"FN f 1", "Expected '('", 5},
		{"FN f(a b)", "Expected ',' or ')'", 7},
		{"FN f(1)", "Expected identifier or ')'", 5},
		{"FN f(a,)", "Expected identifier", 7},
		{"FN f() a", "Expected '->' or NEWLINE", 7},
		{")", msgStatement, 0},
	}
	for _, tc := range cases {
		diag := parseError(t, tc.source)
		if diag.Kind != diagnostics.InvalidSyntax {
			t.Fatalf("%q: expected invalid syntax, got %s", tc.source, diag.Kind)
		}
		if diag.Details != tc.details {
			t.Fatalf("%q: expected %q, got %q", tc.source, tc.details, diag.Details)
		}
		if diag.Start.Column != tc.column {
			t.Fatalf("%q: expected error at column %d, got %d", tc.source, tc.column, diag.Start.Column)
		}
	}
}

func TestParseKeepsFirstErrorOnceTokensConsumed(t *testing.T) {
	diag := parseError(t, "VAR a = )")
	if diag.Details != msgExpr {
		t.Fatalf("expected expression message, got %q", diag.Details)
	}
	if diag.Start.Column != 8 {
		t.Fatalf("expected error at ')', got column %d", diag.Start.Column)
	}
}

func TestNodeSpans(t *testing.T) {
	program, err := ParseSource("test.eel", "1 + 23\nVAR x = f(a, b)")
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	sum := program.Elements[0].(*ast.BinaryOp)
	if span := sum.Range(); span.Start.Column != 0 || span.End.Column != 6 {
		t.Fatalf("unexpected binary span %#v..%#v", span.Start.Column, span.End.Column)
	}
	assign := program.Elements[1].(*ast.VarAssign)
	if span := assign.Range(); span.Start.Line != 1 || span.Start.Column != 4 || span.End.Column != 14 {
		t.Fatalf("unexpected assignment span %d:%d..%d", span.Start.Line, span.Start.Column, span.End.Column)
	}
	call := assign.Value.(*ast.FunctionCall)
	if len(call.Arguments) != 2 {
		t.Fatalf("expected two call arguments, got %d", len(call.Arguments))
	}
}

func TestBlockFormsDiscardResults(t *testing.T) {
	program, err := ParseSource("test.eel", "FOR i = 0 TO 3 THEN\n i\nEND\nWHILE c THEN c")
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	loop := program.Elements[0].(*ast.ForLoop)
	if !loop.DiscardResult {
		t.Fatalf("block FOR should discard its result")
	}
	while := program.Elements[1].(*ast.WhileLoop)
	if while.DiscardResult {
		t.Fatalf("inline WHILE should keep its result")
	}
}
