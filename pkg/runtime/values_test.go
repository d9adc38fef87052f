package runtime

import (
	"math"
	"testing"

	"eel/interpreter-go/pkg/token"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   Number
		want string
	}{
		{NewInt(42), "42"},
		{NewInt(-7), "-7"},
		{NewFloat(2), "2.0"},
		{NewFloat(0.1), "0.1"},
		{NewFloat(1e16), "1e+16"},
		{NewFloat(0.00001), "1e-05"},
		{NewFloat(math.Inf(1)), "inf"},
		{NewFloat(math.NaN()), "nan"},
		{Number{Val: math.Copysign(0, -1)}, "0"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Fatalf("FormatNumber(%v): expected %s, got %s", tc.in.Val, tc.want, got)
		}
	}
}

func TestDisplayForms(t *testing.T) {
	dict := NewDictionary()
	dict.Set(NewString("a"), NewInt(1))
	dict.Set(NewInt(2), NewList(NewString("b"), NewBool(false)))
	cases := []struct {
		value Value
		want  string
	}{
		{NewNull(), "null"},
		{NewBool(true), "true"},
		{NewString("hi"), "hi"},
		{dict, `{"a":1, 2:["b", false]}`},
		{&Function{Name: "f"}, "<function 'f'>"},
		{&Function{}, "<function '<anonymous>'>"},
		{NewBuiltIn("print", nil, nil), "<built-in function print>"},
	}
	for _, tc := range cases {
		if got := Display(tc.value); got != tc.want {
			t.Fatalf("expected %s, got %s", tc.want, got)
		}
	}
	if Repr(NewString("hi")) != `"hi"` {
		t.Fatalf("expected quoted repr")
	}
}

func TestTruthiness(t *testing.T) {
	falsy := []Value{NewNull(), NewInt(0), NewBool(false), NewString(""), NewList(), NewDictionary()}
	for _, v := range falsy {
		if Truthy(v) {
			t.Fatalf("expected %s to be falsy", Display(v))
		}
	}
	truthy := []Value{NewFloat(0.5), NewString("x"), NewList(NewNull()), &Function{}}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Fatalf("expected %s to be truthy", Display(v))
		}
	}
}

func TestPositionedCopiesShareCollections(t *testing.T) {
	list := NewList(NewInt(1))
	alias := Positioned(list, token.Position{Line: 3}, token.Position{Line: 3}, nil).(List)
	alias.Append(NewInt(2))
	if list.Len() != 2 || !list.SameStorage(alias) {
		t.Fatalf("expected aliases to share storage, got %s", Display(list))
	}
	if alias.Origin().Start.Line != 3 || list.Origin().Start.Line != 0 {
		t.Fatalf("expected only the copy to be re-positioned")
	}

	fn := &Function{Name: "f"}
	if Positioned(fn, token.Position{Line: 9}, token.Position{}, nil) != Value(fn) {
		t.Fatalf("functions must keep their identity")
	}
}

func TestDictionaryKeys(t *testing.T) {
	dict := NewDictionary()
	dict.Set(NewInt(1), NewString("int"))
	dict.Set(NewFloat(1), NewString("float"))
	dict.Set(NewString("1"), NewString("text"))
	if dict.Len() != 2 {
		t.Fatalf("expected numeric keys to collide, got %d entries", dict.Len())
	}
	got, ok := dict.Get(NewInt(1))
	if !ok || Display(got) != "float" {
		t.Fatalf("expected replaced value, got %v", got)
	}
	if keys := dict.Keys(); Display(keys[0]) != "1" || Display(keys[1]) != "1" || keys[1].Kind() != KindString {
		t.Fatalf("unexpected key order %v", keys)
	}
	if _, ok := dict.Get(NewBool(true)); ok {
		t.Fatalf("booleans must not match numeric keys")
	}
}

func TestListPop(t *testing.T) {
	list := NewList(NewInt(1), NewInt(2), NewInt(3))
	item, ok := list.Pop(-1)
	if !ok || Display(item) != "3" || list.Len() != 2 {
		t.Fatalf("unexpected pop result %v, list %s", item, Display(list))
	}
	if _, ok := list.Pop(5); ok {
		t.Fatalf("expected out of range pop to fail")
	}
}

func TestEqual(t *testing.T) {
	a := NewList(NewInt(1), NewString("x"))
	b := NewList(NewInt(1), NewString("x"))
	if !Equal(a, b) {
		t.Fatalf("expected structural list equality")
	}
	if Equal(NewInt(1), NewBool(true)) {
		t.Fatalf("different kinds must not be equal")
	}
	f := &Function{}
	if Equal(f, &Function{}) || !Equal(f, f) {
		t.Fatalf("functions compare by identity")
	}
}
