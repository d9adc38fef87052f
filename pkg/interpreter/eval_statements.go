package interpreter

import (
	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateIf(n *ast.IfExpression, ctx *runtime.Context) (runtime.Value, error) {
	for _, c := range n.Cases {
		cond, err := i.evaluate(c.Condition, ctx)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			continue
		}
		return i.evaluateBranch(c.Body, c.DiscardResult, n.Range(), ctx)
	}
	if n.Else != nil {
		return i.evaluateBranch(n.Else.Body, n.Else.DiscardResult, n.Range(), ctx)
	}
	return runtime.At(runtime.NewNull(), n.Range(), ctx), nil
}

func (i *Interpreter) evaluateBranch(body ast.Node, discard bool, span ast.Span, ctx *runtime.Context) (runtime.Value, error) {
	val, err := i.evaluate(body, ctx)
	if err != nil {
		return nil, err
	}
	if discard {
		return runtime.At(runtime.NewNull(), span, ctx), nil
	}
	return val, nil
}

// evaluateFor runs start..end (end exclusive). The step's sign picks the
// direction and a zero step runs no iterations. The loop variable is bound
// in the enclosing scope and keeps float form when start or step is a float.
func (i *Interpreter) evaluateFor(n *ast.ForLoop, ctx *runtime.Context) (runtime.Value, error) {
	start, err := i.evaluateBound(n.Start, ctx)
	if err != nil {
		return nil, err
	}
	end, err := i.evaluateBound(n.End, ctx)
	if err != nil {
		return nil, err
	}
	step := runtime.NewInt(1)
	if n.Step != nil {
		if step, err = i.evaluateBound(n.Step, ctx); err != nil {
			return nil, err
		}
	}

	var more func(v float64) bool
	switch {
	case step.Val > 0:
		more = func(v float64) bool { return v < end.Val }
	case step.Val < 0:
		more = func(v float64) bool { return v > end.Val }
	default:
		more = func(float64) bool { return false }
	}

	isFloat := start.Float || step.Float
	var elements []runtime.Value
loop:
	for v := start.Val; more(v); {
		ctx.Scope.Define(n.Variable.Text, runtime.Number{Val: v, Float: isFloat})
		v += step.Val

		val, err := i.evaluate(n.Body, ctx)
		if err != nil {
			switch err.(type) {
			case continueSignal:
				continue
			case breakSignal:
				break loop
			default:
				return nil, err
			}
		}
		elements = append(elements, val)
	}
	return i.loopResult(n.DiscardResult, elements, n.Range(), ctx), nil
}

func (i *Interpreter) evaluateBound(node ast.Node, ctx *runtime.Context) (runtime.Number, error) {
	val, err := i.evaluate(node, ctx)
	if err != nil {
		return runtime.Number{}, err
	}
	switch v := val.(type) {
	case runtime.Number:
		return v, nil
	case runtime.Boolean:
		return v.Number(), nil
	}
	span := node.Range()
	return runtime.Number{}, diagnostics.Runtime(diagnostics.RuntimeError, "'FOR' bounds must be numbers", span.Start, span.End, ctx.Frame())
}

func (i *Interpreter) evaluateWhile(n *ast.WhileLoop, ctx *runtime.Context) (runtime.Value, error) {
	var elements []runtime.Value
	for {
		cond, err := i.evaluate(n.Condition, ctx)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			break
		}
		val, err := i.evaluate(n.Body, ctx)
		if err != nil {
			if _, ok := err.(continueSignal); ok {
				continue
			}
			if _, ok := err.(breakSignal); ok {
				break
			}
			return nil, err
		}
		elements = append(elements, val)
	}
	return i.loopResult(n.DiscardResult, elements, n.Range(), ctx), nil
}

// loopResult is Null for block loops and the accumulated values otherwise.
func (i *Interpreter) loopResult(discard bool, elements []runtime.Value, span ast.Span, ctx *runtime.Context) runtime.Value {
	if discard {
		return runtime.At(runtime.NewNull(), span, ctx)
	}
	return runtime.At(runtime.NewList(elements...), span, ctx)
}

func (i *Interpreter) evaluateReturn(n *ast.ReturnStatement, ctx *runtime.Context) (runtime.Value, error) {
	var val runtime.Value = runtime.At(runtime.NewNull(), n.Range(), ctx)
	if n.Value != nil {
		v, err := i.evaluate(n.Value, ctx)
		if err != nil {
			return nil, err
		}
		val = v
	}
	return nil, returnSignal{value: val}
}
