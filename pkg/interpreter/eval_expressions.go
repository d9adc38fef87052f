package interpreter

import (
	"fmt"

	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/runtime"
	"eel/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateNumber(n *ast.NumberLiteral, ctx *runtime.Context) runtime.Value {
	num := runtime.Number{Val: n.Token.Num, Float: n.IsFloat()}
	return runtime.At(num, n.Range(), ctx)
}

// evaluateList evaluates list literals and statement lists alike; the
// result holds one value per element.
func (i *Interpreter) evaluateList(n *ast.ListExpression, ctx *runtime.Context) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		val, err := i.evaluate(el, ctx)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return runtime.At(runtime.NewList(elements...), n.Range(), ctx), nil
}

func (i *Interpreter) evaluateDict(n *ast.DictExpression, ctx *runtime.Context) (runtime.Value, error) {
	dict := runtime.NewDictionary()
	for _, entry := range n.Entries {
		key, err := i.evaluate(entry.Key, ctx)
		if err != nil {
			return nil, err
		}
		val, err := i.evaluate(entry.Value, ctx)
		if err != nil {
			return nil, err
		}
		dict.Set(key, val)
	}
	return runtime.At(dict, n.Range(), ctx), nil
}

// evaluateBinaryOp evaluates both operands before applying the operator, so
// AND, OR and XOR never short-circuit.
func (i *Interpreter) evaluateBinaryOp(n *ast.BinaryOp, ctx *runtime.Context) (runtime.Value, error) {
	left, err := i.evaluate(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(n.Right, ctx)
	if err != nil {
		return nil, err
	}
	op, ok := runtime.OperatorFor(n.Operator)
	if !ok {
		return nil, runtime.IllegalOperation(left, right)
	}
	result, err := runtime.Apply(op, left, right)
	if err != nil {
		return nil, err
	}
	return runtime.At(result, n.Range(), ctx), nil
}

func (i *Interpreter) evaluateUnaryOp(n *ast.UnaryOp, ctx *runtime.Context) (runtime.Value, error) {
	operand, err := i.evaluate(n.Operand, ctx)
	if err != nil {
		return nil, err
	}
	result := operand
	switch {
	case n.Operator.Kind == token.MINUS:
		result, err = runtime.Negate(operand)
	case n.Operator.IsKeyword("NOT"):
		result, err = runtime.Not(operand)
	}
	if err != nil {
		return nil, err
	}
	return runtime.At(result, n.Range(), ctx), nil
}

// evaluateVarAccess yields the bound value re-positioned at the access site.
// Providers are read here, so a module variable is re-evaluated per access.
func (i *Interpreter) evaluateVarAccess(n *ast.VarAccess, ctx *runtime.Context) (runtime.Value, error) {
	name := n.Name.Text
	val, ok := ctx.Scope.Get(name)
	if !ok {
		span := n.Range()
		return nil, diagnostics.Runtime(diagnostics.UndefinedVariable, fmt.Sprintf("'%s' is not defined", name), span.Start, span.End, ctx.Frame())
	}
	return runtime.At(runtime.Resolve(val), n.Range(), ctx), nil
}

func (i *Interpreter) evaluateVarAssign(n *ast.VarAssign, ctx *runtime.Context) (runtime.Value, error) {
	val, err := i.evaluate(n.Value, ctx)
	if err != nil {
		return nil, err
	}
	ctx.Scope.Define(n.Name.Text, val)
	return val, nil
}
