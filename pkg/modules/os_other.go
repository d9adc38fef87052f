//go:build !unix

package modules

import (
	"os/exec"
	goruntime "runtime"
)

func currentUID() (int, bool) {
	return 0, false
}

func shellCommand(command string) *exec.Cmd {
	if goruntime.GOOS == "windows" {
		return exec.Command("cmd", "/C", command)
	}
	return exec.Command("sh", "-c", command)
}
