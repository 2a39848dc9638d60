// Package release describes what the shim installs and where: the embedded
// package metadata, the resolved release target, and the on-disk layout.
package release

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xmit-co/xmit-npm/internal/messages"
	"github.com/xmit-co/xmit-npm/internal/platform"
)

// Config is built once at startup and passed to the installer and runner.
type Config struct {
	Target      Target
	URL         string
	InstallRoot string
	InstallDir  string
	// BinaryName is the canonical file name inside InstallDir. It defaults to
	// Target.Name; no platform executable suffix is added.
	BinaryName string
	BinaryPath string
}

// Options customize Load.
type Options struct {
	// Manifest overrides the embedded package metadata.
	Manifest *Manifest
	// Host overrides host detection.
	Host *platform.Host
	// InstallRoot overrides the directory containing the shim executable.
	InstallRoot string
}

var (
	detectHost     = platform.Detect
	executablePath = os.Executable
	evalSymlinks   = filepath.EvalSymlinks
)

// Load resolves the platform and builds the Config. An unsupported platform
// fails here, before anything touches the network or filesystem.
func Load(opts Options) (*Config, error) {
	var host platform.Host
	if opts.Host != nil {
		host = *opts.Host
	} else {
		detected, err := detectHost()
		if err != nil {
			return nil, err
		}
		host = detected
	}
	p, err := platform.Resolve(host.OSType, host.Arch)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if opts.Manifest != nil {
		manifest = *opts.Manifest
	} else {
		manifest, err = DefaultManifest()
		if err != nil {
			return nil, err
		}
	}

	root := strings.TrimSpace(opts.InstallRoot)
	if root == "" {
		root, err = shimDir()
		if err != nil {
			return nil, err
		}
	}
	return New(manifest, p, root)
}

// New builds a Config from already-resolved parts.
func New(m Manifest, p platform.Platform, installRoot string) (*Config, error) {
	if strings.TrimSpace(installRoot) == "" {
		return nil, fmt.Errorf(messages.ReleaseInstallRootRequired)
	}
	target := NewTarget(m, p)
	dir := filepath.Join(installRoot, p.String())
	return &Config{
		Target:      target,
		URL:         target.URL(m.BaseURL()),
		InstallRoot: installRoot,
		InstallDir:  dir,
		BinaryName:  target.Name,
		BinaryPath:  filepath.Join(dir, target.Name),
	}, nil
}

// LockPath returns the lock file guarding installs into InstallDir.
// It lives beside InstallDir so clearing the directory leaves it alone.
func (c *Config) LockPath() string {
	return c.InstallDir + ".lock"
}

// shimDir returns the directory holding the running executable, with symlinks resolved.
func shimDir() (string, error) {
	exe, err := executablePath()
	if err != nil {
		return "", fmt.Errorf(messages.ReleaseResolveExecutableFmt, err)
	}
	resolved, err := evalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf(messages.ReleaseResolveExecutableFmt, err)
	}
	return filepath.Dir(resolved), nil
}
