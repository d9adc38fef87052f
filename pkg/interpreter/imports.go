package interpreter

import (
	"fmt"

	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/driver"
	"eel/interpreter-go/pkg/modules"
	"eel/interpreter-go/pkg/parser"
	"eel/interpreter-go/pkg/runtime"
)

// evaluateImport binds the members of a script or native module into the
// current scope as name::member. A script next to the working directory
// wins over a library script, which wins over a native module.
func (i *Interpreter) evaluateImport(n *ast.ImportStatement, ctx *runtime.Context) (runtime.Value, error) {
	span := n.Range()
	if n.Target == nil {
		return nil, diagnostics.Runtime(diagnostics.ImportError, "Import Error: Expected a module name string", span.Start, span.End, ctx.Frame())
	}
	target, err := i.evaluate(n.Target, ctx)
	if err != nil {
		return nil, err
	}
	name, ok := runtime.Resolve(target).(runtime.String)
	if !ok {
		return nil, diagnostics.Runtime(diagnostics.ImportError, "Import Error: Expected a module name string", span.Start, span.End, ctx.Frame())
	}

	if i.loader != nil {
		src, found := i.loader.ResolveLocal(name.Val)
		if !found {
			src, found = i.loader.ResolveLibrary(name.Val)
		}
		if found {
			if err := i.importScript(name.Val, src, span, ctx); err != nil {
				return nil, err
			}
			return runtime.At(name, span, ctx), nil
		}
	}
	if mod, ok := i.modules.Lookup(name.Val); ok {
		bindModule(mod, ctx.Scope)
		return runtime.At(name, span, ctx), nil
	}
	return nil, diagnostics.Runtime(diagnostics.ImportError, fmt.Sprintf("Import Error: No module or local file named '%s'", name.Val), span.Start, span.End, ctx.Frame())
}

// importScript runs src in its own importer frame over a copy of the
// globals, then copies the script's top-level bindings into ctx.
func (i *Interpreter) importScript(name string, src driver.Source, span ast.Span, ctx *runtime.Context) error {
	key := src.Path
	if i.importing[key] {
		return diagnostics.Runtime(diagnostics.ImportError, fmt.Sprintf("Import Error: Circular import of '%s'", name), span.Start, span.End, ctx.Frame())
	}
	i.importing[key] = true
	defer delete(i.importing, key)

	text, err := i.loader.Read(src)
	if err != nil {
		return diagnostics.Runtime(diagnostics.ImportError, fmt.Sprintf("Failed to load script \"%s\"\n%s", src.Path, err), span.Start, span.End, ctx.Frame())
	}
	program, err := parser.ParseSource(src.Path, text)
	if err != nil {
		return diagnostics.Runtime(diagnostics.ImportError, fmt.Sprintf("Failed to load script \"%s\"\n%s", src.Path, renderError(err)), span.Start, span.End, ctx.Frame())
	}

	frame := runtime.NewContext(ImporterName, ctx, span.Start, runtime.NewScope(i.globals.Clone()))
	if _, err := i.Evaluate(program, frame); err != nil {
		return diagnostics.Runtime(diagnostics.ImportError, fmt.Sprintf("Failed to finish executing script \"%s\"\n%s", src.Path, renderError(err)), span.Start, span.End, ctx.Frame())
	}

	prefix := name + "::"
	for _, member := range frame.Scope.Keys() {
		val, _ := frame.Scope.Own(member)
		ctx.Scope.Define(prefix+member, val)
	}
	return nil
}

// bindModule exposes variables as providers so every read sees a fresh
// value.
func bindModule(mod *modules.Module, scope *runtime.Scope) {
	prefix := mod.Name + "::"
	for name, read := range mod.Variables {
		scope.Define(prefix+name, &runtime.Provider{Name: name, Read: read})
	}
	for name, fn := range mod.Functions {
		scope.Define(prefix+name, fn)
	}
}
