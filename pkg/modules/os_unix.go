//go:build unix

package modules

import (
	"os/exec"

	"golang.org/x/sys/unix"
)

func currentUID() (int, bool) {
	return unix.Getuid(), true
}

func shellCommand(command string) *exec.Cmd {
	return exec.Command("/bin/sh", "-c", command)
}
