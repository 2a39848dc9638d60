//go:build unix

package dispatch

import (
	"os"
	"syscall"
)

var (
	relayedSignals   = []os.Signal{syscall.SIGTERM, syscall.SIGHUP}
	swallowedSignals = []os.Signal{os.Interrupt, syscall.SIGQUIT}
)

// exitCode maps a finished child to a shell-style status: its exit code, or
// 128 plus the signal number when it was killed by a signal.
func exitCode(state *os.ProcessState) int {
	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	return 1
}
