package ast

import (
	"fmt"
	"strconv"
	"strings"

	"eel/interpreter-go/pkg/token"
)

// Dump renders node as a compact s-expression. The format is meant for
// debugging output and tests, not for round-tripping.
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node)
	return b.String()
}

func dump(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("nil")
	case *NumberLiteral:
		text := strconv.FormatFloat(n.Token.Num, 'f', -1, 64)
		if n.IsFloat() && !strings.Contains(text, ".") {
			text += ".0"
		}
		b.WriteString(text)
	case *StringLiteral:
		b.WriteString(strconv.Quote(n.Token.Text))
	case *ListExpression:
		b.WriteString("[")
		for i, el := range n.Elements {
			if i > 0 {
				b.WriteString(" ")
			}
			dump(b, el)
		}
		b.WriteString("]")
	case *DictExpression:
		b.WriteString("{")
		for i, entry := range n.Entries {
			if i > 0 {
				b.WriteString(" ")
			}
			dump(b, entry.Key)
			b.WriteString(":")
			dump(b, entry.Value)
		}
		b.WriteString("}")
	case *BinaryOp:
		fmt.Fprintf(b, "(%s ", operatorText(n.Operator))
		dump(b, n.Left)
		b.WriteString(" ")
		dump(b, n.Right)
		b.WriteString(")")
	case *UnaryOp:
		fmt.Fprintf(b, "(%s ", operatorText(n.Operator))
		dump(b, n.Operand)
		b.WriteString(")")
	case *VarAccess:
		b.WriteString(n.Name.Text)
	case *VarAssign:
		fmt.Fprintf(b, "(var %s ", n.Name.Text)
		dump(b, n.Value)
		b.WriteString(")")
	case *IfExpression:
		b.WriteString("(if")
		for _, c := range n.Cases {
			b.WriteString(" ")
			dump(b, c.Condition)
			b.WriteString(" ")
			dump(b, c.Body)
		}
		if n.Else != nil {
			b.WriteString(" else ")
			dump(b, n.Else.Body)
		}
		b.WriteString(")")
	case *ForLoop:
		fmt.Fprintf(b, "(for %s ", n.Variable.Text)
		dump(b, n.Start)
		b.WriteString(" ")
		dump(b, n.End)
		if n.Step != nil {
			b.WriteString(" step ")
			dump(b, n.Step)
		}
		b.WriteString(" ")
		dump(b, n.Body)
		b.WriteString(")")
	case *WhileLoop:
		b.WriteString("(while ")
		dump(b, n.Condition)
		b.WriteString(" ")
		dump(b, n.Body)
		b.WriteString(")")
	case *FunctionDefinition:
		name := "<anonymous>"
		if n.Name != nil {
			name = n.Name.Text
		}
		fmt.Fprintf(b, "(fn %s (%s) ", name, strings.Join(n.ParamNames(), " "))
		dump(b, n.Body)
		b.WriteString(")")
	case *FunctionCall:
		b.WriteString("(call ")
		dump(b, n.Callee)
		for _, arg := range n.Arguments {
			b.WriteString(" ")
			dump(b, arg)
		}
		b.WriteString(")")
	case *ReturnStatement:
		b.WriteString("(return")
		if n.Value != nil {
			b.WriteString(" ")
			dump(b, n.Value)
		}
		b.WriteString(")")
	case *ContinueStatement:
		b.WriteString("(continue)")
	case *BreakStatement:
		b.WriteString("(break)")
	case *ImportStatement:
		b.WriteString("(import")
		if n.Target != nil {
			b.WriteString(" ")
			dump(b, n.Target)
		}
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "<%s>", node.NodeType())
	}
}

var operatorSymbols = map[token.Kind]string{
	token.PLUS:  "+",
	token.MINUS: "-",
	token.MUL:   "*",
	token.DIV:   "/",
	token.MOD:   "%",
	token.POW:   "**",
	token.EE:    "==",
	token.NE:    "!=",
	token.LT:    "<",
	token.GT:    ">",
	token.LTE:   "<=",
	token.GTE:   ">=",
}

func operatorText(op token.Token) string {
	if sym, ok := operatorSymbols[op.Kind]; ok {
		return sym
	}
	return op.Text
}
