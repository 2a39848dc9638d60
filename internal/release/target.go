package release

import (
	"fmt"

	"github.com/xmit-co/xmit-npm/internal/platform"
)

// Target identifies one release archive.
type Target struct {
	Name     string
	Version  string
	Platform platform.Platform
}

// NewTarget builds the release target for a manifest on the given platform.
func NewTarget(m Manifest, p platform.Platform) Target {
	return Target{
		Name:     m.Name,
		Version:  m.ReleaseVersion(),
		Platform: p,
	}
}

// ArchiveName returns the archive file name, e.g. "xmit_1.2.3_linux_amd64.tgz".
func (t Target) ArchiveName() string {
	return fmt.Sprintf("%s_%s_%s_%s.tgz", t.Name, t.Version, t.Platform.GOOS, t.Platform.GOARCH)
}

// URL returns the download URL for the archive under a repository base URL.
func (t Target) URL(baseURL string) string {
	return fmt.Sprintf("%s/releases/download/v%s/%s", baseURL, t.Version, t.ArchiveName())
}
