package main

import (
	"fmt"
	"os"
	"strings"

	"eel/interpreter-go/pkg/modules"
)

// runModules lists the native modules, or the members of one module.
func runModules(args []string) int {
	reg := modules.Standard()
	switch len(args) {
	case 0:
		for _, name := range reg.Names() {
			fmt.Fprintln(os.Stdout, name)
		}
		return exitOK
	case 1:
		mod, ok := reg.Lookup(args[0])
		if !ok {
			logError("no native module named %q (available: %s)", args[0], strings.Join(reg.Names(), ", "))
			return exitError
		}
		for _, member := range mod.Members() {
			if fn, ok := mod.Functions[member]; ok {
				params := append(append([]string{}, fn.Params...), optionalParams(fn.Optional)...)
				fmt.Fprintf(os.Stdout, "%s::%s(%s)\n", mod.Name, member, strings.Join(params, ", "))
				continue
			}
			fmt.Fprintf(os.Stdout, "%s::%s\n", mod.Name, member)
		}
		return exitOK
	default:
		logError("eel modules takes at most one module name")
		return exitError
	}
}

func optionalParams(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = name + "?"
	}
	return out
}
