package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  eel <file.eel>")
	fmt.Fprintln(w, "  eel run [file.eel]")
	fmt.Fprintln(w, "  eel check [--ast] <file.eel>")
	fmt.Fprintln(w, "  eel repl")
	fmt.Fprintln(w, "  eel deps install")
	fmt.Fprintln(w, "  eel modules [name]")
	fmt.Fprintln(w, "  eel --version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  EEL_HOME     package cache and libraries (default ~/.eel)")
	fmt.Fprintln(w, "  EEL_PATH     extra library directories")
	fmt.Fprintln(w, "  EEL_HISTORY  REPL history file")
	fmt.Fprintln(w, "  EEL_DEBUG    print debug output")
	fmt.Fprintln(w, "  NO_COLOR     disable coloured output")
}
