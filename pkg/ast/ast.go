package ast

import "eel/interpreter-go/pkg/token"

type NodeType string

const (
	NodeNumber    NodeType = "Number"
	NodeString    NodeType = "String"
	NodeList      NodeType = "List"
	NodeDict      NodeType = "Dict"
	NodeBinaryOp  NodeType = "BinaryOp"
	NodeUnaryOp   NodeType = "UnaryOp"
	NodeVarAccess NodeType = "VarAccess"
	NodeVarAssign NodeType = "VarAssign"
	NodeIf        NodeType = "If"
	NodeFor       NodeType = "For"
	NodeWhile     NodeType = "While"
	NodeFuncDef   NodeType = "FuncDef"
	NodeCall      NodeType = "Call"
	NodeReturn    NodeType = "Return"
	NodeContinue  NodeType = "Continue"
	NodeBreak     NodeType = "Break"
	NodeImport    NodeType = "Import"
)

// Node is implemented by every syntax tree node. Nodes are immutable once
// the parser returns them.
type Node interface {
	NodeType() NodeType
	Range() Span
	isNode()
}

type nodeImpl struct {
	Type NodeType
	Span Span
}

func newNodeImpl(kind NodeType, span Span) nodeImpl {
	return nodeImpl{Type: kind, Span: span}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Range() Span        { return n.Span }
func (nodeImpl) isNode()              {}

type NumberLiteral struct {
	nodeImpl
	Token token.Token
}

func NewNumberLiteral(tok token.Token) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumber, TokenSpan(tok)), Token: tok}
}

// IsFloat reports whether the literal was written with a decimal point.
func (n *NumberLiteral) IsFloat() bool { return n.Token.Kind == token.FLOAT }

type StringLiteral struct {
	nodeImpl
	Token token.Token
}

func NewStringLiteral(tok token.Token) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeString, TokenSpan(tok)), Token: tok}
}

// ListExpression is a list literal. The parser also uses it for statement
// lists, whose value is the list of statement results.
type ListExpression struct {
	nodeImpl
	Elements []Node
}

func NewListExpression(elements []Node, span Span) *ListExpression {
	return &ListExpression{nodeImpl: newNodeImpl(NodeList, span), Elements: elements}
}

type DictEntry struct {
	Key   Node
	Value Node
}

type DictExpression struct {
	nodeImpl
	Entries []DictEntry
}

func NewDictExpression(entries []DictEntry, span Span) *DictExpression {
	return &DictExpression{nodeImpl: newNodeImpl(NodeDict, span), Entries: entries}
}

type BinaryOp struct {
	nodeImpl
	Left     Node
	Operator token.Token
	Right    Node
}

func NewBinaryOp(left Node, op token.Token, right Node) *BinaryOp {
	return &BinaryOp{
		nodeImpl: newNodeImpl(NodeBinaryOp, Join(left.Range(), right.Range())),
		Left:     left,
		Operator: op,
		Right:    right,
	}
}

type UnaryOp struct {
	nodeImpl
	Operator token.Token
	Operand  Node
}

func NewUnaryOp(op token.Token, operand Node) *UnaryOp {
	return &UnaryOp{
		nodeImpl: newNodeImpl(NodeUnaryOp, Join(TokenSpan(op), operand.Range())),
		Operator: op,
		Operand:  operand,
	}
}

type VarAccess struct {
	nodeImpl
	Name token.Token
}

func NewVarAccess(name token.Token) *VarAccess {
	return &VarAccess{nodeImpl: newNodeImpl(NodeVarAccess, TokenSpan(name)), Name: name}
}

type VarAssign struct {
	nodeImpl
	Name  token.Token
	Value Node
}

func NewVarAssign(name token.Token, value Node) *VarAssign {
	return &VarAssign{
		nodeImpl: newNodeImpl(NodeVarAssign, Join(TokenSpan(name), value.Range())),
		Name:     name,
		Value:    value,
	}
}

// IfCase is one IF/ELIF arm. DiscardResult is set for the block form, which
// evaluates to Null.
type IfCase struct {
	Condition     Node
	Body          Node
	DiscardResult bool
}

type ElseCase struct {
	Body          Node
	DiscardResult bool
}

type IfExpression struct {
	nodeImpl
	Cases []IfCase
	Else  *ElseCase
}

func NewIfExpression(cases []IfCase, elseCase *ElseCase) *IfExpression {
	span := cases[0].Condition.Range()
	if elseCase != nil {
		span = Join(span, elseCase.Body.Range())
	} else {
		span = Join(span, cases[len(cases)-1].Body.Range())
	}
	return &IfExpression{nodeImpl: newNodeImpl(NodeIf, span), Cases: cases, Else: elseCase}
}

type ForLoop struct {
	nodeImpl
	Variable      token.Token
	Start         Node
	End           Node
	Step          Node
	Body          Node
	DiscardResult bool
}

func NewForLoop(variable token.Token, start, end, step, body Node, discard bool) *ForLoop {
	return &ForLoop{
		nodeImpl:      newNodeImpl(NodeFor, Join(TokenSpan(variable), body.Range())),
		Variable:      variable,
		Start:         start,
		End:           end,
		Step:          step,
		Body:          body,
		DiscardResult: discard,
	}
}

type WhileLoop struct {
	nodeImpl
	Condition     Node
	Body          Node
	DiscardResult bool
}

func NewWhileLoop(condition, body Node, discard bool) *WhileLoop {
	return &WhileLoop{
		nodeImpl:      newNodeImpl(NodeWhile, Join(condition.Range(), body.Range())),
		Condition:     condition,
		Body:          body,
		DiscardResult: discard,
	}
}

// FunctionDefinition is `FN [name](params) -> expr` or the block form. Name
// is nil for anonymous functions.
type FunctionDefinition struct {
	nodeImpl
	Name       *token.Token
	Params     []token.Token
	Body       Node
	AutoReturn bool
}

func NewFunctionDefinition(name *token.Token, params []token.Token, body Node, autoReturn bool) *FunctionDefinition {
	span := body.Range()
	switch {
	case name != nil:
		span = Join(TokenSpan(*name), span)
	case len(params) > 0:
		span = Join(TokenSpan(params[0]), span)
	}
	return &FunctionDefinition{
		nodeImpl:   newNodeImpl(NodeFuncDef, span),
		Name:       name,
		Params:     params,
		Body:       body,
		AutoReturn: autoReturn,
	}
}

// ParamNames returns the parameter identifiers in order.
func (f *FunctionDefinition) ParamNames() []string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Text
	}
	return names
}

type FunctionCall struct {
	nodeImpl
	Callee    Node
	Arguments []Node
}

func NewFunctionCall(callee Node, args []Node) *FunctionCall {
	span := callee.Range()
	if len(args) > 0 {
		span = Join(span, args[len(args)-1].Range())
	}
	return &FunctionCall{nodeImpl: newNodeImpl(NodeCall, span), Callee: callee, Arguments: args}
}

// ReturnStatement carries an optional value; Value is nil for a bare RETURN.
type ReturnStatement struct {
	nodeImpl
	Value Node
}

func NewReturnStatement(value Node, span Span) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturn, span), Value: value}
}

type ContinueStatement struct {
	nodeImpl
}

func NewContinueStatement(span Span) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinue, span)}
}

type BreakStatement struct {
	nodeImpl
}

func NewBreakStatement(span Span) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreak, span)}
}

// ImportStatement names its target with an expression evaluated at run time.
// Target is nil when IMPORT was written without one.
type ImportStatement struct {
	nodeImpl
	Target Node
}

func NewImportStatement(target Node, span Span) *ImportStatement {
	return &ImportStatement{nodeImpl: newNodeImpl(NodeImport, span), Target: target}
}
