package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"eel/interpreter-go/pkg/ast"
	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/driver"
	"eel/interpreter-go/pkg/interpreter"
	"eel/interpreter-go/pkg/parser"
	"eel/interpreter-go/pkg/stdlib"
)

// newInterpreter builds an interpreter whose IMPORTs resolve from workDir
// and the project's library paths.
func newInterpreter(cfg config, workDir string, manifest *driver.Manifest, stdin io.Reader) (*interpreter.Interpreter, error) {
	libs, err := libraryPaths(cfg, manifest)
	if err != nil {
		return nil, err
	}
	loader, err := driver.NewLoader(workDir, libs, stdlib.Scripts)
	if err != nil {
		return nil, err
	}
	logDebug("work dir %s", loader.WorkDir)
	for _, dir := range loader.LibraryPaths {
		logDebug("library path %s", dir)
	}
	return interpreter.New(
		interpreter.WithLoader(loader),
		interpreter.WithStdout(os.Stdout),
		interpreter.WithStdin(stdin),
	), nil
}

// resolveEntry picks the script to run: the argument when given, else the
// manifest's main.
func resolveEntry(args []string) (string, *driver.Manifest, error) {
	if len(args) > 1 {
		return "", nil, fmt.Errorf("expected a single script, got %d arguments", len(args))
	}
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", nil, err
		}
		manifest, err := findProjectManifest(filepath.Dir(abs))
		if err != nil {
			return "", nil, err
		}
		return args[0], manifest, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}
	manifest, err := findProjectManifest(cwd)
	if err != nil {
		return "", nil, err
	}
	if manifest == nil {
		return "", nil, fmt.Errorf("no script given and no %s found", driver.ManifestName)
	}
	if manifest.Main == "" {
		return "", nil, fmt.Errorf("%s does not declare main", manifest.Path)
	}
	return manifest.MainPath(), manifest, nil
}

func runEntry(cfg config, args []string) int {
	entry, manifest, err := resolveEntry(args)
	if err != nil {
		logError("%v", err)
		return exitError
	}
	text, err := os.ReadFile(entry)
	if err != nil {
		logError("read %s: %v", entry, err)
		return exitError
	}
	interp, err := newInterpreter(cfg, filepath.Dir(entry), manifest, os.Stdin)
	if err != nil {
		logError("%v", err)
		return exitError
	}
	if _, err := interp.Run(entry, string(text)); err != nil {
		logError("%s", renderError(err))
		return exitCodeFor(err)
	}
	return exitOK
}

// runCheck scans and parses without evaluating. With --ast the parsed tree
// is printed.
func runCheck(_ config, args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dumpAST := fs.Bool("ast", false, "print the parsed tree")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() != 1 {
		logError("eel check requires exactly one script")
		return exitError
	}
	entry := fs.Arg(0)
	text, err := os.ReadFile(entry)
	if err != nil {
		logError("read %s: %v", entry, err)
		return exitError
	}
	program, err := parser.ParseSource(entry, string(text))
	if err != nil {
		logError("%s", renderError(err))
		return exitCodeFor(err)
	}
	if *dumpAST {
		fmt.Fprintln(os.Stdout, ast.Dump(program))
		return exitOK
	}
	logSuccess(os.Stdout, "ok: %s (%d statements)", entry, len(program.Elements))
	return exitOK
}

func renderError(err error) string {
	var diag *diagnostics.Error
	if errors.As(err, &diag) {
		return diag.Render()
	}
	return err.Error()
}
