package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Display renders a value the way PRINT shows it.
func Display(v Value) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case Null:
		return "null"
	case Number:
		return FormatNumber(val)
	case Boolean:
		if val.Val {
			return "true"
		}
		return "false"
	case String:
		return val.Val
	case List:
		parts := make([]string, 0, val.Len())
		for _, el := range val.Elements() {
			parts = append(parts, Repr(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Dictionary:
		parts := make([]string, 0, val.Len())
		val.Each(func(k, item Value) bool {
			parts = append(parts, Repr(k)+":"+Repr(item))
			return true
		})
		return "{" + strings.Join(parts, ", ") + "}"
	case *Function:
		return "<function '" + val.DisplayName() + "'>"
	case *BuiltInFunction:
		return "<built-in function " + val.Name + ">"
	case *Handle:
		return "<" + val.TypeName + ">"
	case *Provider:
		return Display(val.Read())
	default:
		return "<" + v.Kind().String() + ">"
	}
}

// Repr renders a value as it appears inside collections and at the REPL:
// strings are quoted, everything else matches Display.
func Repr(v Value) string {
	if s, ok := v.(String); ok {
		return `"` + s.Val + `"`
	}
	return Display(v)
}

// FormatNumber prints integers without a fraction and floats with at least
// one fractional digit, switching to exponent form for very large or very
// small magnitudes.
func FormatNumber(n Number) string {
	v := n.Val
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if !n.Float {
		if v == 0 {
			return "0"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	abs := math.Abs(v)
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Truthy reports whether v counts as true in conditions.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, Null:
		return false
	case Number:
		return val.Val != 0
	case Boolean:
		return val.Val
	case String:
		return val.Val != ""
	case List:
		return val.Len() > 0
	case Dictionary:
		return val.Len() > 0
	case *Provider:
		return Truthy(val.Read())
	default:
		return true
	}
}

// Equal compares two values structurally. Values of different kinds are
// never equal; callables and handles compare by identity.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Number:
		return av.Val == b.(Number).Val
	case Boolean:
		return av.Val == b.(Boolean).Val
	case String:
		return av.Val == b.(String).Val
	case List:
		bv := b.(List)
		if av.Len() != bv.Len() {
			return false
		}
		for i, el := range av.Elements() {
			if !Equal(el, bv.Elements()[i]) {
				return false
			}
		}
		return true
	case Dictionary:
		bv := b.(Dictionary)
		if av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Each(func(k, item Value) bool {
			other, ok := bv.Get(k)
			equal = ok && Equal(item, other)
			return equal
		})
		return equal
	default:
		return a == b
	}
}
