package interpreter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/driver"
	"eel/interpreter-go/pkg/runtime"
	"eel/interpreter-go/pkg/stdlib"
)

func newTestInterpreter(t *testing.T, dir, stdin string) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	loader, err := driver.NewLoader(dir, nil, stdlib.Scripts)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	var out bytes.Buffer
	interp := New(WithStdout(&out), WithStdin(strings.NewReader(stdin)), WithLoader(loader))
	return interp, &out
}

func run(t *testing.T, source string) string {
	t.Helper()
	interp, _ := newTestInterpreter(t, "", "")
	val, err := interp.Run("test.eel", source)
	if err != nil {
		t.Fatalf("Run(%q) error:\n%v", source, err)
	}
	return runtime.Display(val)
}

func runError(t *testing.T, source string) *diagnostics.Error {
	t.Helper()
	interp, _ := newTestInterpreter(t, "", "")
	_, err := interp.Run("test.eel", source)
	if err == nil {
		t.Fatalf("Run(%q) succeeded, expected an error", source)
	}
	var diag *diagnostics.Error
	if !errors.As(err, &diag) {
		t.Fatalf("expected *diagnostics.Error, got %T: %v", err, err)
	}
	return diag
}

func TestEvaluateExpressions(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"2 + 3 * 4", "[14]"},
		{"2 ** 3 ** 2", "[512]"},
		{"10 / 4", "[2.5]"},
		{"-7 % 3", "[2]"},
		{"-2 ** 2", "[-4]"},
		{"1.5 + 1", "[2.5]"},
		{`"ab" + 1`, `["ab1"]`},
		{`"ab" * 3`, `["ababab"]`},
		{"[1, 2] + 3", "[[1, 2, 3]]"},
		{"[1, 2, 1] - 1", "[[2]]"},
		{"[1, 2, 3] ** -1", "[3]"},
		{"1 == 1 AND 2 > 3", "[false]"},
		{"NOT 0", "[true]"},
		{"null == null", "[true]"},
		{`{"a": 1, 2: "b"}`, `[{"a":1, 2:"b"}]`},
		{"VAR a = VAR b = 3\na + b", "[3, 6]"},
		{"IF 0 THEN 1 ELIF 1 THEN 2 ELSE 3", "[2]"},
		{"IF 0 THEN 1", "[null]"},
		{"IF 1 THEN\n  5\nEND", "[null]"},
		{"", "[]"},
	}
	for _, tc := range cases {
		if got := run(t, tc.source); got != tc.want {
			t.Errorf("%q = %s, want %s", tc.source, got, tc.want)
		}
	}
}

func TestLoops(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"FOR i = 0 TO 5 STEP 2 THEN i", "[[0, 2, 4]]"},
		{"FOR i = 5 TO 0 STEP -2 THEN i", "[[5, 3, 1]]"},
		{"FOR i = 0 TO 5 STEP 0 THEN i", "[[]]"},
		{"FOR i = 0.5 TO 2 THEN i", "[[0.5, 1.5]]"},
		{"FOR i = 0 TO 10 THEN IF i == 3 THEN BREAK ELSE i", "[[0, 1, 2]]"},
		{"FOR i = 0 TO 5 THEN IF i % 2 == 0 THEN CONTINUE ELSE i", "[[1, 3]]"},
		{"VAR i = 0\nWHILE i < 3 THEN VAR i = i + 1", "[0, [1, 2, 3]]"},
		{"FOR i = 0 TO 3 THEN\n  i\nEND", "[null]"},
		{"FOR i = 0 TO 3 THEN i\ni", "[[0, 1, 2], 2]"},
	}
	for _, tc := range cases {
		if got := run(t, tc.source); got != tc.want {
			t.Errorf("%q = %s, want %s", tc.source, got, tc.want)
		}
	}
}

func TestFunctions(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"FN add(a, b) -> a + b\nadd(2, 3)", "[<function 'add'>, 5]"},
		{"FN f(x)\n  RETURN x * 2\nEND\nf(21)", "[<function 'f'>, 42]"},
		{"FN f()\n  1\nEND\nf()", "[<function 'f'>, null]"},
		{"(FN (x) -> x + 1)(1)", "[2]"},
		{"FN outer(x) -> FN (y) -> x + y\nVAR add1 = outer(1)\nadd1(2)", "[<function 'outer'>, <function '<anonymous>'>, 3]"},
		{"VAR p = PRINT\np", "[<built-in function print>, <built-in function print>]"},
		{"RETURN 5\n6", "5"},
	}
	for _, tc := range cases {
		if got := run(t, tc.source); got != tc.want {
			t.Errorf("%q = %s, want %s", tc.source, got, tc.want)
		}
	}
}

func TestListAliasing(t *testing.T) {
	got := run(t, "VAR a = [1]\nVAR b = a\nLS_APPEND(b, 2)\na")
	if got != "[[1, 2], [1, 2], null, [1, 2]]" {
		t.Fatalf("got %s", got)
	}
	got = run(t, "VAR a = [1]\nVAR b = a + 2\na")
	if got != "[[1], [1, 2], [1]]" {
		t.Fatalf("concatenation mutated its operand: %s", got)
	}
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct {
		source  string
		kind    diagnostics.Kind
		details string
	}{
		{"1 / 0", diagnostics.DivisionByZero, "Division by zero"},
		{`"abc" / 0`, diagnostics.DivisionByZero, "Division by zero"},
		{"[1] % 0", diagnostics.DivisionByZero, "Division by zero"},
		{"null % 0.0", diagnostics.DivisionByZero, "Division by zero"},
		{`"abc" / 2`, diagnostics.IllegalOperation, "Illegal Operation"},
		{"x", diagnostics.UndefinedVariable, "'x' is not defined"},
		{"FN f(a) -> a\nf(1, 2)", diagnostics.ArityMismatch, "Too many args (1) passed into 'f'"},
		{"FN f(a, b) -> a\nf()", diagnostics.ArityMismatch, "Too few args (2) passed into 'f'"},
		{"LEN()", diagnostics.ArityMismatch, "Too few args (1) passed into 'len'"},
		{`"a" - 1`, diagnostics.IllegalOperation, "Illegal Operation"},
		{"[1] ** 4", diagnostics.IndexOutOfBounds, "Index Out of Bounds"},
		{"BREAK", diagnostics.RuntimeError, "BREAK outside of a loop"},
		{"FN f()\n  CONTINUE\nEND\nf()", diagnostics.RuntimeError, "CONTINUE outside of a loop"},
		{"5()", diagnostics.RuntimeError, "Cannot call a value of type Number"},
		{`FOR i = "a" TO 3 THEN i`, diagnostics.RuntimeError, "'FOR' bounds must be numbers"},
		{`DICT_GET({"a": 1}, "b")`, diagnostics.KeyNotFound, "Key 'b' is not in dictionary"},
		{`TO_NUM("abc")`, diagnostics.ConversionError, "Could not convert 'abc' to a number"},
		{"LS_POP([], 0)", diagnostics.IndexOutOfBounds, "Index out of bounds"},
		{`IMPORT "nope"`, diagnostics.ImportError, "Import Error: No module or local file named 'nope'"},
		{"IMPORT 5", diagnostics.ImportError, "Import Error: Expected a module name string"},
	}
	for _, tc := range cases {
		diag := runError(t, tc.source)
		if diag.Kind != tc.kind || diag.Details != tc.details {
			t.Errorf("%q: got %s %q, want %s %q", tc.source, diag.Kind, diag.Details, tc.kind, tc.details)
		}
	}
}

func TestErrorsMatchByKind(t *testing.T) {
	interp, _ := newTestInterpreter(t, "", "")
	_, err := interp.Run("test.eel", "1 % 0")
	if !errors.Is(err, &diagnostics.Error{Kind: diagnostics.DivisionByZero}) {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestTraceback(t *testing.T) {
	diag := runError(t, "FN f() -> 1 / 0\nf()")
	want := "Traceback (most recent call last):\n" +
		"  File test.eel, line 2, in <program>\n" +
		"  File test.eel, line 1, in f\n" +
		"Runtime Error: Division by zero\n"
	if got := diag.Render(); !strings.HasPrefix(got, want) {
		t.Fatalf("render:\n%s\nwant prefix:\n%s", got, want)
	}
}

func TestArityErrorReportsCaller(t *testing.T) {
	diag := runError(t, "FN f(a) -> a\nf()")
	want := "Traceback (most recent call last):\n" +
		"  File test.eel, line 2, in <program>\n" +
		"Runtime Error: Too few args (1) passed into 'f'\n"
	if got := diag.Render(); !strings.HasPrefix(got, want) {
		t.Fatalf("render:\n%s\nwant prefix:\n%s", got, want)
	}
}

func TestSyntaxErrorsPassThrough(t *testing.T) {
	diag := runError(t, "VAR = 1")
	if diag.Kind != diagnostics.InvalidSyntax {
		t.Fatalf("kind = %s, want InvalidSyntax", diag.Kind)
	}
}

func TestBuiltinIO(t *testing.T) {
	interp, out := newTestInterpreter(t, "", "x\n7\nname\n2.5")
	val, err := interp.Run("test.eel", "PRINT(\"hello\")\nINPUT_INT()\nINPUT()\nINPUT_FLOAT()")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got := runtime.Display(val); got != `[null, 7, "name", 2.5]` {
		t.Fatalf("result = %s", got)
	}
	if got := out.String(); got != "hello\nInput must be an integer\n" {
		t.Fatalf("stdout = %q", got)
	}
}

func TestBuiltinCollections(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"VAR l = [1, 2, 3]\nLS_POP(l, 0)\nl", "[[2, 3], 1, [2, 3]]"},
		{"VAR l = [1]\nLS_EXTEND(l, l)\nl", "[[1, 1], null, [1, 1]]"},
		{`VAR d = {}` + "\n" + `DICT_SET(d, "k", 1)` + "\n" + `DICT_GET(d, "k")`, "[{\"k\":1}, null, 1]"},
		{`DICT_KEYS({"a": 1, "b": 2})`, `[["a", "b"]]`},
		{`LEN([1, 2])`, "[2]"},
		{`LEN({"a": 1})`, "[1]"},
		{`TO_STR(1.5) + "!"`, `["1.5!"]`},
		{`TO_NUM("42") + 1`, "[43]"},
		{`TO_NUM("2.5")`, "[2.5]"},
		{"IS_NUM(1)", "[true]"},
		{"IS_NUM(true)", "[false]"},
		{`IS_STR("a")`, "[true]"},
		{"IS_LIST([])", "[true]"},
		{"IS_DICT({})", "[true]"},
		{"IS_FUNC(PRINT)", "[true]"},
		{"IS_FUNC(FN () -> 1)", "[true]"},
		{"MATH_PI > 3", "[true]"},
	}
	for _, tc := range cases {
		if got := run(t, tc.source); got != tc.want {
			t.Errorf("%q = %s, want %s", tc.source, got, tc.want)
		}
	}
}

func TestImportNativeModule(t *testing.T) {
	got := run(t, `IMPORT "math"`+"\nmath::sqrt(4)\nmath::pi > 3")
	if got != `["math", 2.0, true]` {
		t.Fatalf("got %s", got)
	}
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name+driver.ScriptExt)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestImportScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "util", "VAR answer = 42\nFN twice(x) -> x * 2\n")
	interp, _ := newTestInterpreter(t, dir, "")
	val, err := interp.Run("test.eel", `IMPORT "util"`+"\nutil::twice(util::answer)")
	if err != nil {
		t.Fatalf("Run error:\n%v", err)
	}
	if got := runtime.Display(val); got != `["util", 84]` {
		t.Fatalf("got %s", got)
	}
	if _, ok := interp.Globals().Own("util::PRINT"); ok {
		t.Fatalf("globals of the imported script were re-exported")
	}
}

func TestImportSeesGlobalsAtEntry(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "lib", "VAR seen = g\nVAR g = 100\nVAR own = 1\n")
	interp, _ := newTestInterpreter(t, dir, "")
	val, err := interp.Run("test.eel", "VAR g = 1\n"+`IMPORT "lib"`+"\nVAR g = 2\nlib::seen\ng\nlib::g")
	if err != nil {
		t.Fatalf("Run error:\n%v", err)
	}
	if got := runtime.Display(val); got != `[1, "lib", 2, 1, 2, 100]` {
		t.Fatalf("got %s", got)
	}
	if g, _ := interp.Globals().Own("g"); runtime.Display(g) != "2" {
		t.Fatalf("importer g = %s", runtime.Display(g))
	}

	_, err = interp.Run("test.eel", "own")
	var diag *diagnostics.Error
	if !errors.As(err, &diag) || diag.Kind != diagnostics.UndefinedVariable {
		t.Fatalf("expected 'own' to stay inside the import, got %v", err)
	}
}

func TestImportLocalShadowsNative(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "math", "FN sqrt(x) -> \"local\"\n")
	interp, _ := newTestInterpreter(t, dir, "")
	val, err := interp.Run("test.eel", `IMPORT "math"`+"\nmath::sqrt(4)")
	if err != nil {
		t.Fatalf("Run error:\n%v", err)
	}
	if got := runtime.Display(val); got != `["math", "local"]` {
		t.Fatalf("got %s", got)
	}
}

func TestImportBundledLibrary(t *testing.T) {
	got := run(t, `IMPORT "lists"`+"\nlists::sum(lists::range(0, 5))\nlists::reverse([1, 2, 3])")
	if got != `["lists", 10, [3, 2, 1]]` {
		t.Fatalf("got %s", got)
	}
	got = run(t, `IMPORT "strings"`+"\n"+`strings::join([1, 2, 3], "-")`)
	if got != `["strings", "1-2-3"]` {
		t.Fatalf("got %s", got)
	}
}

func TestImportFailures(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a", `IMPORT "b"`+"\n")
	writeScript(t, dir, "b", `IMPORT "a"`+"\n")
	writeScript(t, dir, "broken", "1 / 0\n")
	interp, _ := newTestInterpreter(t, dir, "")

	_, err := interp.Run("test.eel", `IMPORT "a"`)
	if err == nil || !strings.Contains(err.Error(), "Import Error: Circular import of 'a'") {
		t.Fatalf("expected circular import error, got %v", err)
	}

	_, err = interp.Run("test.eel", `IMPORT "broken"`)
	var diag *diagnostics.Error
	if !errors.As(err, &diag) || diag.Kind != diagnostics.ImportError {
		t.Fatalf("expected import error, got %v", err)
	}
	if !strings.HasPrefix(diag.Details, "Failed to finish executing script") || !strings.Contains(diag.Details, "Division by zero") {
		t.Fatalf("details = %q", diag.Details)
	}
}

func TestRunScript(t *testing.T) {
	dir := t.TempDir()
	p := writeScript(t, dir, "hello", "VAR shared = 7\nPRINT(\"ran\")\n")
	interp, out := newTestInterpreter(t, dir, "")
	val, err := interp.Run("test.eel", fmt.Sprintf("RUN(%q)\nshared", p))
	if err != nil {
		t.Fatalf("Run error:\n%v", err)
	}
	if got := runtime.Display(val); got != "[null, 7]" {
		t.Fatalf("got %s", got)
	}
	if out.String() != "ran\n" {
		t.Fatalf("stdout = %q", out.String())
	}

	diag := runError(t, "RUN(1)")
	if diag.Details != "Argument must be string" {
		t.Fatalf("details = %q", diag.Details)
	}
}
