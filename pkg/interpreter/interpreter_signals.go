package interpreter

import (
	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}

type breakSignal struct {
	span ast.Span
	ctx  *runtime.Context
}

func (b breakSignal) Error() string {
	return "break"
}

type continueSignal struct {
	span ast.Span
	ctx  *runtime.Context
}

func (c continueSignal) Error() string {
	return "continue"
}

// escapedSignal turns a BREAK or CONTINUE that left every loop into a
// runtime error. Other errors pass through.
func escapedSignal(err error) error {
	switch sig := err.(type) {
	case breakSignal:
		return diagnostics.Runtime(diagnostics.RuntimeError, "BREAK outside of a loop", sig.span.Start, sig.span.End, sig.ctx.Frame())
	case continueSignal:
		return diagnostics.Runtime(diagnostics.RuntimeError, "CONTINUE outside of a loop", sig.span.Start, sig.span.End, sig.ctx.Frame())
	}
	return err
}
