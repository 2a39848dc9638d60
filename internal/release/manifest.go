package release

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/xmit-co/xmit-npm/internal/messages"
)

//go:embed package.toml
var packageMetadata []byte

// Manifest is the package metadata baked into the shim.
type Manifest struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Host    string `toml:"host"`
	Org     string `toml:"org"`
	Repo    string `toml:"repo"`
}

// DefaultManifest decodes the embedded package metadata.
func DefaultManifest() (Manifest, error) {
	return ParseManifest(packageMetadata)
}

// ParseManifest decodes and validates package metadata.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf(messages.ReleaseDecodeManifestFmt, err)
	}
	required := []struct {
		key   string
		value string
	}{
		{"name", m.Name},
		{"version", m.Version},
		{"host", m.Host},
		{"org", m.Org},
		{"repo", m.Repo},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return Manifest{}, fmt.Errorf(messages.ReleaseManifestFieldFmt, field.key)
		}
	}
	if m.ReleaseVersion() == "" {
		return Manifest{}, fmt.Errorf(messages.ReleaseInvalidVersionFmt, m.Version)
	}
	return m, nil
}

// ReleaseVersion returns the declared version without its prerelease suffix.
func (m Manifest) ReleaseVersion() string {
	return StripPrerelease(m.Version)
}

// StripPrerelease drops everything from the first "-", so "1.2.3-beta" becomes "1.2.3".
func StripPrerelease(version string) string {
	base, _, _ := strings.Cut(strings.TrimSpace(version), "-")
	return base
}

// BaseURL returns the repository URL releases are downloaded from.
func (m Manifest) BaseURL() string {
	return fmt.Sprintf("https://%s/%s/%s", m.Host, m.Org, m.Repo)
}
