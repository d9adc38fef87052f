package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/driver"
	"eel/interpreter-go/pkg/modules"
	"eel/interpreter-go/pkg/parser"
	"eel/interpreter-go/pkg/runtime"
	"eel/interpreter-go/pkg/stdlib"
	"eel/interpreter-go/pkg/token"
)

// ProgramName is the frame name of a top-level program.
const ProgramName = "<program>"

// ImporterName is the frame name of an imported script.
const ImporterName = "<_importer_>"

// ScriptLoader resolves IMPORT names to eel scripts.
type ScriptLoader interface {
	ResolveLocal(name string) (driver.Source, bool)
	ResolveLibrary(name string) (driver.Source, bool)
	Read(src driver.Source) (string, error)
}

// Interpreter evaluates eel programs against one global scope.
type Interpreter struct {
	globals   *runtime.Scope
	modules   *modules.Registry
	loader    ScriptLoader
	stdout    io.Writer
	stdin     *bufio.Reader
	importing map[string]bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

func WithStdin(r io.Reader) Option {
	return func(i *Interpreter) { i.stdin = bufio.NewReader(r) }
}

// WithModules replaces the native module registry.
func WithModules(reg *modules.Registry) Option {
	return func(i *Interpreter) { i.modules = reg }
}

// WithLoader replaces the script loader used by IMPORT.
func WithLoader(l ScriptLoader) Option {
	return func(i *Interpreter) { i.loader = l }
}

// New returns an interpreter whose globals hold the built-ins. By default
// scripts resolve from the working directory and the bundled library, and
// every standard native module is importable.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		globals:   runtime.NewScope(nil),
		modules:   modules.Standard(),
		loader:    &driver.Loader{WorkDir: ".", Bundled: stdlib.Scripts},
		stdout:    os.Stdout,
		stdin:     bufio.NewReader(os.Stdin),
		importing: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.defineGlobals()
	return i
}

// Globals returns the interpreter's global scope.
func (i *Interpreter) Globals() *runtime.Scope {
	return i.globals
}

func (i *Interpreter) Stdout() io.Writer { return i.stdout }

func (i *Interpreter) Stdin() io.Reader { return i.stdin }

// ProgramContext returns a fresh top-level frame over the globals.
func (i *Interpreter) ProgramContext() *runtime.Context {
	return runtime.NewContext(ProgramName, nil, token.Position{}, i.globals)
}

// Run scans, parses and evaluates text as a program named file. The result
// is the list of top-level statement values, or the value of a top-level
// RETURN.
func (i *Interpreter) Run(file, text string) (runtime.Value, error) {
	program, err := parser.ParseSource(file, text)
	if err != nil {
		return nil, err
	}
	return i.Evaluate(program, i.ProgramContext())
}

// Evaluate runs a parsed program in ctx. Stray BREAK and CONTINUE become
// runtime errors; a RETURN ends the program with its value.
func (i *Interpreter) Evaluate(program ast.Node, ctx *runtime.Context) (runtime.Value, error) {
	val, err := i.evaluate(program, ctx)
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		return nil, escapedSignal(err)
	}
	return val, nil
}

// evaluate dispatches on the node type. The error result is either a
// *diagnostics.Error or one of the control signals.
func (i *Interpreter) evaluate(node ast.Node, ctx *runtime.Context) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return i.evaluateNumber(n, ctx), nil
	case *ast.StringLiteral:
		return runtime.At(runtime.NewString(n.Token.Text), n.Range(), ctx), nil
	case *ast.ListExpression:
		return i.evaluateList(n, ctx)
	case *ast.DictExpression:
		return i.evaluateDict(n, ctx)
	case *ast.BinaryOp:
		return i.evaluateBinaryOp(n, ctx)
	case *ast.UnaryOp:
		return i.evaluateUnaryOp(n, ctx)
	case *ast.VarAccess:
		return i.evaluateVarAccess(n, ctx)
	case *ast.VarAssign:
		return i.evaluateVarAssign(n, ctx)
	case *ast.IfExpression:
		return i.evaluateIf(n, ctx)
	case *ast.ForLoop:
		return i.evaluateFor(n, ctx)
	case *ast.WhileLoop:
		return i.evaluateWhile(n, ctx)
	case *ast.FunctionDefinition:
		return i.evaluateFunctionDefinition(n, ctx), nil
	case *ast.FunctionCall:
		return i.evaluateCall(n, ctx)
	case *ast.ReturnStatement:
		return i.evaluateReturn(n, ctx)
	case *ast.ContinueStatement:
		return nil, continueSignal{span: n.Range(), ctx: ctx}
	case *ast.BreakStatement:
		return nil, breakSignal{span: n.Range(), ctx: ctx}
	case *ast.ImportStatement:
		return i.evaluateImport(n, ctx)
	default:
		span := node.Range()
		return nil, diagnostics.Runtime(diagnostics.RuntimeError, fmt.Sprintf("unsupported node type: %s", node.NodeType()), span.Start, span.End, ctx.Frame())
	}
}

// renderError returns the text of err as it would be shown to a user.
func renderError(err error) string {
	var diag *diagnostics.Error
	if errors.As(err, &diag) {
		return diag.Render()
	}
	return err.Error()
}
