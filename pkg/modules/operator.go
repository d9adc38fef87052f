package modules

import (
	"eel/interpreter-go/pkg/runtime"
)

// Operator exposes the binary operators as functions, e.g.
// operator::add(1, 2).
func Operator() *Module {
	m := New("operator")
	for name, op := range map[string]runtime.Operator{
		"lt":  runtime.OpLt,
		"gt":  runtime.OpGt,
		"lte": runtime.OpLte,
		"gte": runtime.OpGte,
		"eq":  runtime.OpEq,
		"ne":  runtime.OpNe,
		"add": runtime.OpAdd,
		"sub": runtime.OpSub,
		"mul": runtime.OpMul,
		"div": runtime.OpDiv,
		"mod": runtime.OpMod,
		"pow": runtime.OpPow,
	} {
		m.Func(name, []string{"left", "right"}, func(_ *runtime.NativeCall, args []runtime.Value) (runtime.Value, error) {
			return runtime.Apply(op, args[0], args[1])
		})
	}
	return m
}
