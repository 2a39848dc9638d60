package install

import (
	"fmt"
	"os"
	"time"

	"github.com/xmit-co/xmit-npm/internal/messages"
)

type fileLock struct {
	file *os.File
}

var (
	tryLockFn     = tryLockFile
	unlockFn      = unlockFile
	lockSleep     = time.Sleep
	lockWait      = 30 * time.Second
	lockPollEvery = 100 * time.Millisecond
)

// withFileLock acquires a lock for path, runs fn, and releases the lock.
func withFileLock(path string, fn func() error) error {
	lock, err := acquireFileLock(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.release()
	}()
	return fn()
}

// acquireFileLock opens or creates path and polls for an exclusive lock.
func acquireFileLock(path string) (*fileLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.InstallOpenLockFmt, path, err)
	}
	deadline := time.Now().Add(lockWait)
	for {
		acquired, err := tryLockFn(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf(messages.InstallLockFmt, path, err)
		}
		if acquired {
			return &fileLock{file: file}, nil
		}
		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf(messages.InstallLockTimeoutFmt, lockWait)
		}
		lockSleep(lockPollEvery)
	}
}

// release unlocks and closes the file lock.
func (l *fileLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFn(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}
