package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"eel/interpreter-go/pkg/lexer"
)

const cliToolVersion = "eel 0.1.0"

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitFault = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := loadConfig()
	configureLogging(cfg)

	if len(args) == 0 {
		return runRepl(cfg, nil)
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(os.Stdout)
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return exitOK
	case "run":
		return runEntry(cfg, args[1:])
	case "check":
		return runCheck(cfg, args[1:])
	case "repl":
		return runRepl(cfg, args[1:])
	case "deps":
		return runDeps(cfg, args[1:])
	case "modules":
		return runModules(args[1:])
	}
	if strings.HasPrefix(args[0], "-") {
		logError("unknown flag %s", args[0])
		printUsage(os.Stderr)
		return exitError
	}
	return runEntry(cfg, args)
}

// exitCodeFor maps a scanning, parsing or runtime failure to an exit code.
func exitCodeFor(err error) int {
	if errors.Is(err, lexer.ErrTooManyDots) {
		return exitFault
	}
	return exitError
}
