// Package dispatch runs the installed release binary on behalf of the shim,
// installing it first when it is missing.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/xmit-co/xmit-npm/internal/install"
	"github.com/xmit-co/xmit-npm/internal/logging"
	"github.com/xmit-co/xmit-npm/internal/messages"
	"github.com/xmit-co/xmit-npm/internal/release"
)

// Installer is the part of install.Installer the runner uses.
type Installer interface {
	EnsureInstalled(ctx context.Context, cfg *release.Config, opts install.Options) (install.Result, error)
}

// Options customize Run.
type Options struct {
	// Installer fetches the release when the binary is missing. Nil uses an
	// install.Installer writing to the system's stderr.
	Installer Installer
	Logger    *slog.Logger
	Fetch     install.FetchOptions
}

// Run forwards args to the installed binary and returns its exit code.
// args excludes the program name and is passed through verbatim.
func Run(ctx context.Context, cfg *release.Config, args []string, opts Options) (int, error) {
	return RunWithSystem(ctx, RealSystem{}, cfg, args, opts)
}

// RunWithSystem is Run with explicit OS operations.
//
// A failed install is reported by the installer and otherwise ignored; the
// missing binary then surfaces as a spawn failure with exit code 1. The
// returned error is reserved for failures before anything is spawned.
func RunWithSystem(ctx context.Context, sys System, cfg *release.Config, args []string, opts Options) (int, error) {
	if sys == nil {
		return 1, errors.New(messages.DispatchSystemRequired)
	}
	if cfg == nil {
		return 1, errors.New(messages.DispatchConfigRequired)
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	installed, err := binaryExists(sys, cfg.BinaryPath)
	if err != nil {
		return 1, err
	}
	if !installed {
		in := opts.Installer
		if in == nil {
			in = install.New(install.Config{Stderr: sys.Stderr(), Logger: log})
		}
		log.Debug("binary missing, installing", "path", cfg.BinaryPath)
		if _, err := in.EnsureInstalled(ctx, cfg, install.Options{Quiet: true, Fetch: opts.Fetch}); err != nil {
			log.Debug("install failed, spawning anyway", "error", err)
		}
	}

	cwd, err := sys.Getwd()
	if err != nil {
		return 1, fmt.Errorf(messages.DispatchWorkingDirFmt, err)
	}

	log.Debug("spawning", "path", cfg.BinaryPath, "args", args, "dir", cwd)
	code, err := sys.Spawn(cfg.BinaryPath, args, cwd)
	if err != nil {
		_, _ = fmt.Fprintf(sys.Stderr(), messages.DispatchSpawnFailedFmt, cfg.BinaryPath, err)
		return 1, nil
	}
	log.Debug("child exited", "code", code)
	return code, nil
}

func binaryExists(sys System, path string) (bool, error) {
	if _, err := sys.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(messages.DispatchCheckInstalledFmt, path, err)
	}
	return true, nil
}
