package main

import (
	"bytes"
	"strings"
	"testing"

	"eel/interpreter-go/pkg/interpreter"
	"eel/interpreter-go/pkg/runtime"
)

func TestFormatResult(t *testing.T) {
	cases := []struct {
		name  string
		value runtime.Value
		want  string
		ok    bool
	}{
		{"empty program", runtime.NewList(), "", false},
		{"lone null", runtime.NewList(runtime.NewNull()), "", false},
		{"lone number", runtime.NewList(runtime.NewInt(3)), "3", true},
		{"lone string is quoted", runtime.NewList(runtime.NewString("a")), `"a"`, true},
		{"several statements", runtime.NewList(runtime.NewInt(1), runtime.NewNull()), "[1, null]", true},
		{"returned value", runtime.NewFloat(2.5), "2.5", true},
		{"returned null", runtime.NewNull(), "", false},
	}
	for _, tc := range cases {
		got, ok := formatResult(tc.value)
		if got != tc.want || ok != tc.ok {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIncompleteInput(t *testing.T) {
	cases := map[string]bool{
		"":                 false,
		"1 + 2":            false,
		"VAR 5 = 2":        false,
		"FN f()":           true,
		"FN f()\n  1":      true,
		"IF x THEN\n  1\n": true,
		"FN f()\n  1\nEND": false,
	}
	for src, want := range cases {
		if got := incomplete(src); got != want {
			t.Errorf("incomplete(%q) = %v, want %v", src, got, want)
		}
	}
}

func TestEvalLineKeepsGlobals(t *testing.T) {
	prev := colorEnabled
	colorEnabled = false
	t.Cleanup(func() { colorEnabled = prev })
	var out bytes.Buffer
	interp := interpreter.New(interpreter.WithStdout(&out))

	if got, ok := evalLine(interp, "VAR a = 2"); !ok || got != "2" {
		t.Fatalf("VAR a = 2 -> (%q, %v)", got, ok)
	}
	if got, ok := evalLine(interp, "a * 3"); !ok || got != "6" {
		t.Fatalf("a * 3 -> (%q, %v)", got, ok)
	}
	if _, ok := evalLine(interp, `PRINT("x")`); ok {
		t.Fatalf("PRINT result should not be echoed")
	}
	if out.String() != "x\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	got, ok := evalLine(interp, "b")
	if !ok || !strings.Contains(got, "'b' is not defined") {
		t.Fatalf("undefined variable -> (%q, %v)", got, ok)
	}
}
