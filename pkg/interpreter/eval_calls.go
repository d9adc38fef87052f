package interpreter

import (
	"errors"
	"fmt"

	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

// evaluateFunctionDefinition captures ctx as the closure. Named functions
// are also bound in the current scope.
func (i *Interpreter) evaluateFunctionDefinition(n *ast.FunctionDefinition, ctx *runtime.Context) runtime.Value {
	span := n.Range()
	fn := &runtime.Function{
		Meta:       runtime.Meta{Start: span.Start, End: span.End, Context: ctx},
		Params:     n.ParamNames(),
		Body:       n.Body,
		AutoReturn: n.AutoReturn,
		Closure:    ctx,
	}
	if n.Name != nil {
		fn.Name = n.Name.Text
		ctx.Scope.Define(fn.Name, fn)
	}
	return fn
}

func (i *Interpreter) evaluateCall(n *ast.FunctionCall, ctx *runtime.Context) (runtime.Value, error) {
	callee, err := i.evaluate(n.Callee, ctx)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, argNode := range n.Arguments {
		arg, err := i.evaluate(argNode, ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	result, err := i.Call(callee, args, n.Range(), ctx)
	if err != nil {
		return nil, err
	}
	return runtime.At(result, n.Range(), ctx), nil
}

// Call invokes a callable value with evaluated arguments. span locates the
// call and ctx is the caller's frame.
func (i *Interpreter) Call(callee runtime.Value, args []runtime.Value, span ast.Span, ctx *runtime.Context) (runtime.Value, error) {
	switch fn := runtime.Resolve(callee).(type) {
	case *runtime.Function:
		return i.callFunction(fn, args, span, ctx)
	case *runtime.BuiltInFunction:
		return i.callBuiltIn(fn, args, span, ctx)
	default:
		origin := callee.Origin()
		start, end := origin.Start, origin.End
		if start.IsZero() {
			start, end = span.Start, span.End
		}
		return nil, diagnostics.Runtime(diagnostics.RuntimeError, fmt.Sprintf("Cannot call a value of type %s", callee.Kind()), start, end, ctx.Frame())
	}
}

func checkArity(name string, required, optional, got int, span ast.Span, ctx *runtime.Context) error {
	switch {
	case got > required+optional:
		return diagnostics.Runtime(diagnostics.ArityMismatch, fmt.Sprintf("Too many args (%d) passed into '%s'", got-required-optional, name), span.Start, span.End, ctx.Frame())
	case got < required:
		return diagnostics.Runtime(diagnostics.ArityMismatch, fmt.Sprintf("Too few args (%d) passed into '%s'", required-got, name), span.Start, span.End, ctx.Frame())
	}
	return nil
}

// newFrame creates the callee context. Arguments are re-attached to it so
// errors raised on them report the callee's frame.
func newFrame(name string, params []string, args []runtime.Value, parentScope *runtime.Scope, span ast.Span, ctx *runtime.Context) *runtime.Context {
	frame := runtime.NewContext(name, ctx, span.Start, runtime.NewScope(parentScope))
	for idx, arg := range args {
		if idx >= len(params) {
			break
		}
		origin := arg.Origin()
		frame.Scope.Define(params[idx], runtime.Positioned(arg, origin.Start, origin.End, frame))
	}
	return frame
}

func (i *Interpreter) callFunction(fn *runtime.Function, args []runtime.Value, span ast.Span, ctx *runtime.Context) (runtime.Value, error) {
	name := fn.DisplayName()
	if err := checkArity(name, len(fn.Params), 0, len(args), span, ctx); err != nil {
		return nil, err
	}
	parent := i.globals
	if fn.Closure != nil {
		parent = fn.Closure.Scope
	}
	frame := newFrame(name, fn.Params, args, parent, span, ctx)

	val, err := i.evaluate(fn.Body, frame)
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		return nil, escapedSignal(err)
	}
	if fn.AutoReturn {
		return val, nil
	}
	return runtime.NewNull(), nil
}

func (i *Interpreter) callBuiltIn(fn *runtime.BuiltInFunction, args []runtime.Value, span ast.Span, ctx *runtime.Context) (runtime.Value, error) {
	if err := checkArity(fn.Name, len(fn.Params), len(fn.Optional), len(args), span, ctx); err != nil {
		return nil, err
	}
	params := append(append([]string{}, fn.Params...), fn.Optional...)
	frame := newFrame(fn.Name, params, args, ctx.Scope, span, ctx)

	call := &runtime.NativeCall{Context: frame, Start: span.Start, End: span.End, Host: i}
	val, err := fn.Impl(call, args)
	if err != nil {
		var diag *diagnostics.Error
		if errors.As(err, &diag) {
			return nil, diag
		}
		return nil, diagnostics.Runtime(diagnostics.RuntimeError, err.Error(), span.Start, span.End, frame.Frame())
	}
	if val == nil {
		return runtime.NewNull(), nil
	}
	return val, nil
}
