package runtime

import (
	"testing"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/token"
)

func TestScopeLookupWalksChain(t *testing.T) {
	globals := NewScope(nil)
	globals.Define("a", NewInt(1))
	middle := NewScope(globals)
	inner := NewScope(middle)
	if v, ok := inner.Get("a"); !ok || Display(v) != "1" {
		t.Fatalf("expected lookup through two parents, got %v", v)
	}
	inner.Define("a", NewInt(2))
	if v, _ := globals.Get("a"); Display(v) != "1" {
		t.Fatalf("shadowing must not touch the parent")
	}
	if _, ok := inner.Get("missing"); ok {
		t.Fatalf("expected miss")
	}
}

func TestScopeCloneIsIndependent(t *testing.T) {
	globals := NewScope(nil)
	globals.Define("x", NewInt(1))
	clone := globals.Clone()
	clone.Define("y", NewInt(2))
	globals.Define("z", NewInt(3))
	if _, ok := globals.Get("y"); ok {
		t.Fatalf("clone definitions leaked into the original")
	}
	if _, ok := clone.Get("z"); ok {
		t.Fatalf("original definitions leaked into the clone")
	}
	if keys := clone.Keys(); len(keys) != 2 || keys[0] != "x" || keys[1] != "y" {
		t.Fatalf("unexpected clone keys %v", keys)
	}
}

func TestContextFrames(t *testing.T) {
	root := NewContext("<program>", nil, token.Position{}, nil)
	call := NewContext("f", root, token.Position{Line: 4}, NewScope(root.Scope))
	if call.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", call.Depth())
	}
	if root.CallerFrame() != nil {
		t.Fatalf("root frame must report a nil caller")
	}
	var frame diagnostics.Frame = call
	if frame.CallerFrame().FrameName() != "<program>" || frame.CallSite().Line != 4 {
		t.Fatalf("unexpected frame chain")
	}
	var missing *Context
	if missing.Frame() != nil {
		t.Fatalf("nil context must convert to a nil frame")
	}
}
