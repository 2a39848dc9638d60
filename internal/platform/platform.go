// Package platform maps the host OS type and CPU architecture onto the
// goos/goarch identifiers used in release archive names.
package platform

import (
	"errors"
	"fmt"

	"github.com/xmit-co/xmit-npm/internal/messages"
)

// ErrUnsupported matches every *UnsupportedError.
var ErrUnsupported = errors.New("unsupported platform")

// Raw OS type values as reported by the host.
const (
	OSTypeWindows = "Windows_NT"
	OSTypeLinux   = "Linux"
	OSTypeDarwin  = "Darwin"
)

// Raw architecture values as reported by the host.
const (
	ArchARM64 = "arm64"
	ArchX64   = "x64"
)

var goosByOSType = map[string]string{
	OSTypeWindows: "windows",
	OSTypeLinux:   "linux",
	OSTypeDarwin:  "darwin",
}

var goarchByArch = map[string]string{
	ArchARM64: "arm64",
	ArchX64:   "amd64",
}

// Platform is a resolved release target platform.
type Platform struct {
	GOOS   string
	GOARCH string
}

// String returns the install directory name for the platform, e.g. "linux-amd64".
func (p Platform) String() string {
	return p.GOOS + "-" + p.GOARCH
}

// UnsupportedError reports an OS type or architecture outside the release matrix.
type UnsupportedError struct {
	OSType string
	Arch   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf(messages.PlatformUnsupportedFmt, e.OSType, e.Arch)
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Resolve maps a raw OS type and architecture to release identifiers.
// Both values must be in the table; there is no fallback.
func Resolve(osType, arch string) (Platform, error) {
	goos, okOS := goosByOSType[osType]
	goarch, okArch := goarchByArch[arch]
	if !okOS || !okArch {
		return Platform{}, &UnsupportedError{OSType: osType, Arch: arch}
	}
	return Platform{GOOS: goos, GOARCH: goarch}, nil
}
