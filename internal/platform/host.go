package platform

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// Host holds the raw OS type and architecture reported by the running system.
type Host struct {
	OSType string
	Arch   string
}

var (
	osTypeFunc     = osType
	kernelArchFunc = host.KernelArch
	runtimeGOARCH  = runtime.GOARCH
)

// Detect queries the running system for its OS type and CPU architecture.
// The architecture is reported in the x64/arm64 vocabulary Resolve expects.
func Detect() (Host, error) {
	name, err := osTypeFunc()
	if err != nil {
		return Host{}, err
	}
	return Host{OSType: name, Arch: detectArch()}, nil
}

// detectArch prefers the kernel's view and falls back to the build architecture.
func detectArch() string {
	raw, err := kernelArchFunc()
	if err != nil || strings.TrimSpace(raw) == "" {
		return normalizeArch(runtimeGOARCH)
	}
	return normalizeArch(raw)
}

// normalizeArch converts uname machine names and GOARCH values to x64/arm64 style names.
func normalizeArch(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "x86_64", "amd64", "x64":
		return ArchX64
	case "aarch64", "arm64":
		return ArchARM64
	case "i386", "i486", "i586", "i686", "x86", "386", "ia32":
		return "ia32"
	case "arm", "armv6l", "armv7l", "armv8l":
		return "arm"
	default:
		return strings.TrimSpace(raw)
	}
}
