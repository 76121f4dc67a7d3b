//go:build unix

package adapter

import (
	"os/exec"
	"syscall"
)

// killProcessGroup makes the timeout kill the whole process group, so the
// test binary started by the go tool dies with it.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
