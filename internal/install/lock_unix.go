//go:build unix

package install

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

var flockFn = unix.Flock

// tryLockFile attempts a non-blocking exclusive flock.
func tryLockFile(file *os.File) (bool, error) {
	err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
		return false, nil
	}
	return false, err
}

func unlockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_UN)
}
