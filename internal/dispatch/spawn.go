package dispatch

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"slices"
)

var notifySignals = signal.Notify

// spawn starts path and waits for it. While the child runs the shim does not
// die from signals: relayedSignals are passed on to the child, and
// swallowedSignals are dropped because the terminal already delivered them to
// the whole foreground process group.
// A non-nil error means the child could not be started.
func spawn(path string, args []string, dir string, stdin io.Reader, stdout io.Writer, stderr io.Writer) (int, error) {
	cmd := exec.Command(path, args...)
	cmd.Dir = dir
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return 1, err
	}

	sigs := make(chan os.Signal, 1)
	notifySignals(sigs, slices.Concat(relayedSignals, swallowedSignals)...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				if slices.Contains(relayedSignals, sig) {
					_ = cmd.Process.Signal(sig)
				}
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	signal.Stop(sigs)
	close(done)

	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitCode(exitErr.ProcessState), nil
	}
	// Wait failed for a reason other than the child's status, e.g. a broken stdio copy.
	return 1, nil
}
