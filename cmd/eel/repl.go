package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/peterh/liner"

	"eel/interpreter-go/pkg/diagnostics"
	"eel/interpreter-go/pkg/interpreter"
	"eel/interpreter-go/pkg/parser"
	"eel/interpreter-go/pkg/runtime"
)

const (
	replFile       = "<stdin>"
	promptMain     = "eel > "
	promptContinue = "  ... "
)

func runRepl(cfg config, args []string) int {
	if len(args) > 0 {
		logError("eel repl does not take arguments")
		return exitError
	}
	cwd, err := os.Getwd()
	if err != nil {
		logError("%v", err)
		return exitError
	}
	manifest, err := findProjectManifest(cwd)
	if err != nil {
		logError("%v", err)
		return exitError
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	loadHistory(ln, cfg.History)
	defer saveHistory(ln, cfg.History)

	interp, err := newInterpreter(cfg, cwd, manifest, os.Stdin)
	if err != nil {
		logError("%v", err)
		return exitError
	}

	for {
		src, ok := readStatement(ln)
		if !ok {
			fmt.Fprintln(os.Stdout)
			return exitOK
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if out, ok := evalLine(interp, src); ok {
			fmt.Fprintln(os.Stdout, out)
		}
	}
}

// evalLine runs one REPL entry. The returned text is a value to echo or a
// rendered error; ok is false when there is nothing to print.
func evalLine(interp *interpreter.Interpreter, src string) (string, bool) {
	val, err := interp.Run(replFile, src)
	if err != nil {
		return paint(ansiRed, renderError(err)), true
	}
	return formatResult(val)
}

// formatResult echoes a lone statement's value unless it is null, and the
// whole statement list otherwise.
func formatResult(val runtime.Value) (string, bool) {
	list, ok := val.(runtime.List)
	if !ok {
		if val == nil || val.Kind() == runtime.KindNull {
			return "", false
		}
		return runtime.Repr(val), true
	}
	switch list.Len() {
	case 0:
		return "", false
	case 1:
		only, _ := list.At(0)
		if only.Kind() == runtime.KindNull {
			return "", false
		}
		return runtime.Repr(only), true
	}
	return runtime.Repr(list), true
}

// readStatement keeps prompting while the input so far only fails to
// parse because it ends early, so blocks can span lines.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptContinue
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			logError("%v", err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if src := b.String(); !incomplete(src) {
			return src, true
		}
	}
}

func incomplete(src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	_, err := parser.ParseSource(replFile, src)
	var diag *diagnostics.Error
	if !errors.As(err, &diag) || diag.Kind != diagnostics.InvalidSyntax {
		return false
	}
	return diag.Start.Offset >= len(strings.TrimRightFunc(src, unicode.IsSpace))
}

func loadHistory(ln *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := ln.ReadHistory(f); err != nil {
		logDebug("read history %s: %v", path, err)
	}
}

func saveHistory(ln *liner.State, path string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logDebug("history dir: %v", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		logDebug("write history %s: %v", path, err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		logDebug("write history %s: %v", path, err)
	}
}
