package main

import (
	"fmt"
	"io"
	"os"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[94m"
	ansiDim   = "\x1b[2m"
)

var (
	colorEnabled = true
	debugEnabled = false
)

func configureLogging(cfg config) {
	colorEnabled = !cfg.NoColor
	debugEnabled = cfg.Debug
}

func paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + ansiReset
}

// logError writes to stderr. Rendered diagnostics go through "%s".
func logError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, paint(ansiRed, fmt.Sprintf(format, args...)))
}

func logInfo(format string, args ...any) {
	fmt.Fprintln(os.Stdout, paint(ansiBlue, fmt.Sprintf(format, args...)))
}

func logSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, paint(ansiGreen, fmt.Sprintf(format, args...)))
}

func logDebug(format string, args ...any) {
	if !debugEnabled {
		return
	}
	fmt.Fprintln(os.Stderr, paint(ansiDim, "debug: "+fmt.Sprintf(format, args...)))
}
