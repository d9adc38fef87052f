package modules

import (
	"math"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

var ordinals = [...]string{"First", "Second", "Third", "Fourth", "Fifth", "Sixth"}

// argError reports that argument i of fn has the wrong type, e.g.
// "First argument of 'sqrt' must be a number".
func argError(call *runtime.NativeCall, fn string, i int, what string) error {
	ordinal := "An"
	if i < len(ordinals) {
		ordinal = ordinals[i]
	}
	return call.Errorf(diagnostics.RuntimeError, "%s argument of '%s' must be %s", ordinal, fn, what)
}

func numberArg(call *runtime.NativeCall, fn string, args []runtime.Value, i int) (runtime.Number, error) {
	switch v := runtime.Resolve(args[i]).(type) {
	case runtime.Number:
		return v, nil
	case runtime.Boolean:
		return v.Number(), nil
	}
	return runtime.Number{}, argError(call, fn, i, "a number")
}

func floatArg(call *runtime.NativeCall, fn string, args []runtime.Value, i int) (float64, error) {
	n, err := numberArg(call, fn, args, i)
	return n.Val, err
}

// floatOpt reads optional argument i, falling back to def when absent.
func floatOpt(call *runtime.NativeCall, fn string, args []runtime.Value, i int, def float64) (float64, error) {
	if i >= len(args) {
		return def, nil
	}
	return floatArg(call, fn, args, i)
}

func intArg(call *runtime.NativeCall, fn string, args []runtime.Value, i int) (int, error) {
	n, err := numberArg(call, fn, args, i)
	if err != nil {
		return 0, err
	}
	v, ok := n.Int()
	if !ok {
		return 0, argError(call, fn, i, "an integer")
	}
	return v, nil
}

func stringArg(call *runtime.NativeCall, fn string, args []runtime.Value, i int) (string, error) {
	s, ok := runtime.Resolve(args[i]).(runtime.String)
	if !ok {
		return "", argError(call, fn, i, "a string")
	}
	return s.Val, nil
}

func stringOpt(call *runtime.NativeCall, fn string, args []runtime.Value, i int, def string) (string, error) {
	if i >= len(args) {
		return def, nil
	}
	return stringArg(call, fn, args, i)
}

func listArg(call *runtime.NativeCall, fn string, args []runtime.Value, i int) (runtime.List, error) {
	l, ok := runtime.Resolve(args[i]).(runtime.List)
	if !ok {
		return runtime.List{}, argError(call, fn, i, "a list")
	}
	return l, nil
}

func handleArg(call *runtime.NativeCall, fn string, args []runtime.Value, i int, typeName string) (*runtime.Handle, error) {
	h, ok := runtime.Resolve(args[i]).(*runtime.Handle)
	if !ok || h.TypeName != typeName {
		return nil, argError(call, fn, i, "a "+typeName)
	}
	return h, nil
}

// floatList builds a list of float numbers.
func floatList(vals ...float64) runtime.List {
	items := make([]runtime.Value, len(vals))
	for i, v := range vals {
		items[i] = runtime.NewFloat(v)
	}
	return runtime.NewList(items...)
}

// numberOf keeps integral results in integer form.
func numberOf(v float64) runtime.Number {
	if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1<<53 {
		return runtime.NewInt(int(v))
	}
	return runtime.NewFloat(v)
}
