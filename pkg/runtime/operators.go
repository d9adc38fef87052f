package runtime

import (
	"math"
	"strings"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/token"
)

// Operator names a binary operation.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpGt
	OpLte
	OpGte
	OpAnd
	OpOr
	OpXor
)

var operatorSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpPow: "**",
	OpEq:  "==",
	OpNe:  "!=",
	OpLt:  "<",
	OpGt:  ">",
	OpLte: "<=",
	OpGte: ">=",
	OpAnd: "AND",
	OpOr:  "OR",
	OpXor: "XOR",
}

func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorSymbols) {
		return operatorSymbols[op]
	}
	return "?"
}

var tokenOperators = map[token.Kind]Operator{
	token.PLUS:  OpAdd,
	token.MINUS: OpSub,
	token.MUL:   OpMul,
	token.DIV:   OpDiv,
	token.MOD:   OpMod,
	token.POW:   OpPow,
	token.EE:    OpEq,
	token.NE:    OpNe,
	token.LT:    OpLt,
	token.GT:    OpGt,
	token.LTE:   OpLte,
	token.GTE:   OpGte,
}

var keywordOperators = map[string]Operator{
	"AND": OpAnd,
	"OR":  OpOr,
	"XOR": OpXor,
}

// OperatorFor maps an operator token to its Operator.
func OperatorFor(tok token.Token) (Operator, bool) {
	if tok.Kind == token.KEYWORD {
		op, ok := keywordOperators[tok.Text]
		return op, ok
	}
	op, ok := tokenOperators[tok.Kind]
	return op, ok
}

type binaryFunc func(left, right Value) (Value, error)

// operatorTables holds the supported operations per left operand kind.
// Anything missing is an illegal operation.
var operatorTables map[Kind]map[Operator]binaryFunc

func init() {
	numeric := map[Operator]binaryFunc{
		OpAdd: numberArith(OpAdd),
		OpSub: numberArith(OpSub),
		OpMul: numberArith(OpMul),
		OpDiv: numberDivide,
		OpMod: numberModulo,
		OpPow: numberArith(OpPow),
		OpEq:  numberCompare(func(a, b float64) bool { return a == b }),
		OpNe:  numberCompare(func(a, b float64) bool { return a != b }),
		OpLt:  numberCompare(func(a, b float64) bool { return a < b }),
		OpGt:  numberCompare(func(a, b float64) bool { return a > b }),
		OpLte: numberCompare(func(a, b float64) bool { return a <= b }),
		OpGte: numberCompare(func(a, b float64) bool { return a >= b }),
		OpAnd: numberCompare(func(a, b float64) bool { return a != 0 && b != 0 }),
		OpOr:  numberCompare(func(a, b float64) bool { return a != 0 || b != 0 }),
		OpXor: numberCompare(func(a, b float64) bool { return (a != 0) != (b != 0) }),
	}
	operatorTables = map[Kind]map[Operator]binaryFunc{
		KindNumber:  numeric,
		KindBoolean: numeric,
		KindNull: {
			OpEq: func(_, right Value) (Value, error) { return NewBool(right.Kind() == KindNull), nil },
			OpNe: func(_, right Value) (Value, error) { return NewBool(right.Kind() != KindNull), nil },
		},
		KindString: {
			OpAdd: stringConcat,
			OpMul: stringRepeat,
			OpEq:  stringEquality(true),
			OpNe:  stringEquality(false),
			OpLt:  stringOrder(func(a, b float64) bool { return a < b }),
			OpGt:  stringOrder(func(a, b float64) bool { return a > b }),
			OpLte: stringOrder(func(a, b float64) bool { return a <= b }),
			OpGte: stringOrder(func(a, b float64) bool { return a >= b }),
		},
		KindList: {
			OpAdd: listAdd,
			OpSub: listRemove,
			OpMul: listRepeat,
			OpPow: listIndex,
		},
	}
}

// Apply evaluates left op right. Unsupported combinations fail with an
// Illegal Operation error spanning both operands. Dividing anything by zero
// is a Division by zero error whatever the left operand is.
func Apply(op Operator, left, right Value) (Value, error) {
	left, right = Resolve(left), Resolve(right)
	if op == OpDiv || op == OpMod {
		if n, ok := asNumber(right); ok && n.Val == 0 {
			return nil, divisionByZero(left, right)
		}
	}
	fn, ok := operatorTables[left.Kind()][op]
	if !ok {
		return nil, IllegalOperation(left, right)
	}
	return fn(left, right)
}

// Negate implements unary minus as multiplication by -1.
func Negate(v Value) (Value, error) {
	return Apply(OpMul, v, NewInt(-1))
}

// Not implements NOT. Only numeric values can be negated.
func Not(v Value) (Value, error) {
	v = Resolve(v)
	n, ok := asNumber(v)
	if !ok {
		return nil, IllegalOperation(v, v)
	}
	return NewBool(n.Val == 0), nil
}

// IllegalOperation reports an unsupported operation between left and right.
func IllegalOperation(left, right Value) *diagnostics.Error {
	l, r := left.Origin(), right.Origin()
	return diagnostics.Runtime(diagnostics.IllegalOperation, "Illegal Operation", l.Start, r.End, l.Context.Frame())
}

func asNumber(v Value) (Number, bool) {
	switch val := v.(type) {
	case Number:
		return val, true
	case Boolean:
		return val.Number(), true
	}
	return Number{}, false
}

func numberArith(op Operator) binaryFunc {
	return func(left, right Value) (Value, error) {
		a, _ := asNumber(left)
		b, ok := asNumber(right)
		if !ok {
			return nil, IllegalOperation(left, right)
		}
		isFloat := a.Float || b.Float
		var out float64
		switch op {
		case OpAdd:
			out = a.Val + b.Val
		case OpSub:
			out = a.Val - b.Val
		case OpMul:
			out = a.Val * b.Val
		case OpPow:
			out = math.Pow(a.Val, b.Val)
			if b.Val < 0 {
				isFloat = true
			}
		}
		return Number{Val: out, Float: isFloat}, nil
	}
}

func divisionByZero(left, right Value) *diagnostics.Error {
	r := right.Origin()
	return diagnostics.Runtime(diagnostics.DivisionByZero, "Division by zero", r.Start, r.End, left.Origin().Context.Frame())
}

func numberDivide(left, right Value) (Value, error) {
	a, _ := asNumber(left)
	b, ok := asNumber(right)
	if !ok {
		return nil, IllegalOperation(left, right)
	}
	if b.Val == 0 {
		return nil, divisionByZero(left, right)
	}
	return NewFloat(a.Val / b.Val), nil
}

// numberModulo follows floored division: the result takes the divisor's sign.
func numberModulo(left, right Value) (Value, error) {
	a, _ := asNumber(left)
	b, ok := asNumber(right)
	if !ok {
		return nil, IllegalOperation(left, right)
	}
	if b.Val == 0 {
		return nil, divisionByZero(left, right)
	}
	out := math.Mod(a.Val, b.Val)
	if out != 0 && (out < 0) != (b.Val < 0) {
		out += b.Val
	}
	return Number{Val: out, Float: a.Float || b.Float}, nil
}

func numberCompare(cmp func(a, b float64) bool) binaryFunc {
	return func(left, right Value) (Value, error) {
		a, _ := asNumber(left)
		b, ok := asNumber(right)
		if !ok {
			return nil, IllegalOperation(left, right)
		}
		return NewBool(cmp(a.Val, b.Val)), nil
	}
}

func isScalarText(v Value) bool {
	switch v.Kind() {
	case KindString, KindNumber, KindBoolean:
		return true
	}
	return false
}

func stringConcat(left, right Value) (Value, error) {
	if !isScalarText(right) {
		return nil, IllegalOperation(left, right)
	}
	return NewString(left.(String).Val + Display(right)), nil
}

func stringRepeat(left, right Value) (Value, error) {
	n, ok := asNumber(right)
	if !ok {
		return nil, IllegalOperation(left, right)
	}
	count, ok := n.Int()
	if !ok {
		return nil, IllegalOperation(left, right)
	}
	if count < 0 {
		count = 0
	}
	return NewString(strings.Repeat(left.(String).Val, count)), nil
}

func stringEquality(want bool) binaryFunc {
	return func(left, right Value) (Value, error) {
		if !isScalarText(right) {
			return nil, IllegalOperation(left, right)
		}
		return NewBool((left.(String).Val == Display(right)) == want), nil
	}
}

func codePointSum(s string) float64 {
	var sum float64
	for _, r := range s {
		sum += float64(r)
	}
	return sum
}

func stringOrder(cmp func(a, b float64) bool) binaryFunc {
	return func(left, right Value) (Value, error) {
		a := codePointSum(left.(String).Val)
		if s, ok := right.(String); ok {
			return NewBool(cmp(a, codePointSum(s.Val))), nil
		}
		n, ok := asNumber(right)
		if !ok {
			return nil, IllegalOperation(left, right)
		}
		return NewBool(cmp(a, n.Val)), nil
	}
}

// listAdd concatenates with another list or appends any other value. The
// result has fresh storage.
func listAdd(left, right Value) (Value, error) {
	out := NewList(left.(List).Elements()...)
	if other, ok := right.(List); ok {
		out.Extend(other.Elements())
	} else {
		out.Append(right)
	}
	return out, nil
}

func listRemove(left, right Value) (Value, error) {
	out := NewList()
	for _, el := range left.(List).Elements() {
		if !Equal(el, right) {
			out.Append(el)
		}
	}
	return out, nil
}

func listRepeat(left, right Value) (Value, error) {
	n, ok := asNumber(right)
	if !ok {
		return nil, IllegalOperation(left, right)
	}
	count, ok := n.Int()
	if !ok {
		return nil, IllegalOperation(left, right)
	}
	out := NewList()
	for i := 0; i < count; i++ {
		out.Extend(left.(List).Elements())
	}
	return out, nil
}

// listIndex implements `list ** index`.
func listIndex(left, right Value) (Value, error) {
	n, ok := asNumber(right)
	if !ok {
		return nil, IllegalOperation(left, right)
	}
	idx, ok := n.Int()
	if !ok {
		return nil, IllegalOperation(left, right)
	}
	item, ok := left.(List).At(idx)
	if !ok {
		r := right.Origin()
		return nil, diagnostics.Runtime(diagnostics.IndexOutOfBounds, "Index Out of Bounds", r.Start, r.End, left.Origin().Context.Frame())
	}
	return item, nil
}
