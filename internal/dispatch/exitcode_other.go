//go:build !unix

package dispatch

import "os"

// Console Ctrl-C reaches the child directly.
var (
	relayedSignals   []os.Signal
	swallowedSignals = []os.Signal{os.Interrupt}
)

func exitCode(state *os.ProcessState) int {
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	return 1
}
