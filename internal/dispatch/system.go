package dispatch

import (
	"io"
	"os"
)

// System abstracts the OS operations the runner needs so tests can replace
// them without touching the real process.
type System interface {
	Stat(name string) (os.FileInfo, error)
	Getwd() (string, error)
	// Spawn runs path with args in dir, wired to the process's standard
	// streams, and returns the child's exit code once it has finished.
	Spawn(path string, args []string, dir string) (int, error)
	Stderr() io.Writer
}

// RealSystem implements System using the current process.
type RealSystem struct{}

// Stat returns the FileInfo for the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Getwd returns the current working directory.
func (RealSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Spawn runs the binary with inherited stdio and environment.
func (RealSystem) Spawn(path string, args []string, dir string) (int, error) {
	return spawn(path, args, dir, os.Stdin, os.Stdout, os.Stderr)
}

// Stderr returns the standard error writer.
func (RealSystem) Stderr() io.Writer {
	return os.Stderr
}
