package modules

import (
	"math"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

// Math returns the math module.
func Math() *Module {
	m := New("math").
		Var("pi", func() runtime.Value { return runtime.NewFloat(math.Pi) }).
		Var("e", func() runtime.Value { return runtime.NewFloat(math.E) })

	// Scaling helpers keep integer inputs integral.
	scale := func(name string, f func(float64) float64) {
		m.Func(name, []string{"value"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			n, err := numberArg(call, name, args, 0)
			if err != nil {
				return nil, err
			}
			return runtime.Number{Val: f(n.Val), Float: n.Float}, nil
		})
	}
	scale("double", func(v float64) float64 { return v * 2 })
	scale("square", func(v float64) float64 { return v * v })
	scale("cube", func(v float64) float64 { return v * v * v })
	scale("abs", math.Abs)

	rounding := func(name string, f func(float64) float64) {
		m.Func(name, []string{"value"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			v, err := floatArg(call, name, args, 0)
			if err != nil {
				return nil, err
			}
			return numberOf(f(v)), nil
		})
	}
	rounding("floor", math.Floor)
	rounding("ceil", math.Ceil)

	unary := func(name string, f func(float64) float64, domain func(float64) bool) {
		m.Func(name, []string{"value"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			v, err := floatArg(call, name, args, 0)
			if err != nil {
				return nil, err
			}
			if domain != nil && !domain(v) {
				return nil, call.Error(diagnostics.RuntimeError, "math domain error")
			}
			return runtime.NewFloat(f(v)), nil
		})
	}
	unary("log", math.Log, func(v float64) bool { return v > 0 })
	unary("sqrt", math.Sqrt, func(v float64) bool { return v >= 0 })
	unary("sin", math.Sin, nil)
	unary("cos", math.Cos, nil)
	unary("tan", math.Tan, nil)

	m.Func("root", []string{"r", "value"}, func(call *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
		r, err := floatArg(call, "root", args, 0)
		if err != nil {
			return nil, err
		}
		v, err := floatArg(call, "root", args, 1)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			return nil, call.Error(diagnostics.DivisionByZero, "Division by zero")
		}
		return runtime.NewFloat(math.Pow(v, 1/r)), nil
	})
	return m
}
