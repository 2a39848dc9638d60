//go:build unix

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/xmit-co/xmit-npm/internal/messages"
)

var uname = unix.Uname

// osType returns the uname sysname, e.g. "Linux" or "Darwin".
func osType() (string, error) {
	var buf unix.Utsname
	if err := uname(&buf); err != nil {
		return "", fmt.Errorf(messages.PlatformUnameFailedFmt, err)
	}
	return unix.ByteSliceToString(buf.Sysname[:]), nil
}
