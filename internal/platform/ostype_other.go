//go:build !unix && !windows

package platform

import (
	"runtime"
	"strings"
)

// osType capitalizes GOOS on systems without uname, e.g. "Plan9".
func osType() (string, error) {
	name := runtime.GOOS
	if name == "" {
		return "", nil
	}
	return strings.ToUpper(name[:1]) + name[1:], nil
}
