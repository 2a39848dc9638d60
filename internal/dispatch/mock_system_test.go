package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
//
// Stat and Getwd fall back to RealSystem so tests can use t.TempDir fixtures.
// Spawn fails fast unless mocked. Stderr defaults to io.Discard.
type testSystem struct {
	RealSystem

	StatFunc   func(name string) (os.FileInfo, error)
	GetwdFunc  func() (string, error)
	SpawnFunc  func(path string, args []string, dir string) (int, error)
	StderrFunc func() io.Writer
}

func (s *testSystem) Stat(name string) (os.FileInfo, error) {
	if s.StatFunc != nil {
		return s.StatFunc(name)
	}
	return s.RealSystem.Stat(name)
}

func (s *testSystem) Getwd() (string, error) {
	if s.GetwdFunc != nil {
		return s.GetwdFunc()
	}
	return s.RealSystem.Getwd()
}

func (s *testSystem) Spawn(path string, args []string, dir string) (int, error) {
	if s.SpawnFunc != nil {
		return s.SpawnFunc(path, args, dir)
	}
	return 0, fmt.Errorf("%w: Spawn", errNotMocked)
}

func (s *testSystem) Stderr() io.Writer {
	if s.StderrFunc != nil {
		return s.StderrFunc()
	}
	return io.Discard
}
