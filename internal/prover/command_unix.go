//go:build unix

package prover

import (
	"os/exec"
	"syscall"
)

// killGroupOnCancel runs the prover in its own process group and kills the
// whole group on cancellation, so helpers it spawned die with it.
func killGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
