package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/xmit-co/xmit-npm/internal/logging"
	"github.com/xmit-co/xmit-npm/internal/messages"
	"github.com/xmit-co/xmit-npm/internal/release"
)

// Status is the outcome of EnsureInstalled.
type Status int

const (
	// StatusFailed means the binary is still missing.
	StatusFailed Status = iota
	// StatusAlreadyInstalled means the binary existed and nothing was touched.
	StatusAlreadyInstalled
	// StatusInstalled means the release was downloaded and extracted.
	StatusInstalled
)

func (s Status) String() string {
	switch s {
	case StatusAlreadyInstalled:
		return "already-installed"
	case StatusInstalled:
		return "installed"
	default:
		return "failed"
	}
}

// Result reports what EnsureInstalled did.
type Result struct {
	Status   Status
	Path     string
	Duration time.Duration
}

// FetchOptions tune the download request.
type FetchOptions struct {
	// Headers are added to the GET request.
	Headers http.Header
	// Timeout bounds download and extraction. Zero means no timeout.
	Timeout time.Duration
}

// Options tune a single EnsureInstalled call.
type Options struct {
	// Quiet suppresses the skip, downloading, and success notices.
	// Failures are always reported.
	Quiet bool
	Fetch FetchOptions
}

// Config wires an Installer.
type Config struct {
	Stderr io.Writer
	Logger *slog.Logger
	Client *http.Client
	// Progress renders a download progress bar on Stderr for non-quiet installs.
	Progress bool
}

// Installer downloads and extracts release archives.
type Installer struct {
	stderr   io.Writer
	log      *slog.Logger
	client   *http.Client
	progress bool
}

// DefaultUserAgent is sent with download requests.
const DefaultUserAgent = "xmit-npm"

var (
	osStat      = os.Stat
	osRemoveAll = os.RemoveAll
	osMkdirAll  = os.MkdirAll
	osRename    = os.Rename
	osChmod     = os.Chmod
)

// New returns an Installer. Nil fields fall back to stderr, a discarding
// logger, and an http.Client without a timeout.
func New(cfg Config) *Installer {
	in := &Installer{
		stderr:   cfg.Stderr,
		log:      cfg.Logger,
		client:   cfg.Client,
		progress: cfg.Progress,
	}
	if in.stderr == nil {
		in.stderr = os.Stderr
	}
	if in.log == nil {
		in.log = logging.Discard()
	}
	if in.client == nil {
		in.client = &http.Client{}
	}
	return in
}

// IsInstalled reports whether the binary path exists. Existence is the only
// integrity check.
func (in *Installer) IsInstalled(cfg *release.Config) (bool, error) {
	if cfg == nil {
		return false, errors.New(messages.InstallConfigRequired)
	}
	return exists(cfg.BinaryPath)
}

// EnsureInstalled makes sure cfg.BinaryPath exists, downloading the release if
// needed. Failures are reported on stderr and returned; the caller may ignore
// the error and let the missing binary surface later.
func (in *Installer) EnsureInstalled(ctx context.Context, cfg *release.Config, opts Options) (Result, error) {
	if cfg == nil {
		return Result{}, errors.New(messages.InstallConfigRequired)
	}
	if cfg.BinaryPath == "" {
		return Result{}, errors.New(messages.InstallBinaryPathRequired)
	}

	found, err := exists(cfg.BinaryPath)
	if err != nil {
		return in.fail(cfg, &Error{Op: OpPrepare, URL: cfg.URL, Err: err})
	}
	if found {
		in.log.Debug("binary present", "path", cfg.BinaryPath)
		if !opts.Quiet {
			_, _ = color.New(color.FgYellow).Fprintf(in.stderr, messages.InstallAlreadyInstalledFmt, cfg.Target.Name)
		}
		return Result{Status: StatusAlreadyInstalled, Path: cfg.BinaryPath}, nil
	}

	start := time.Now()
	status, err := in.install(ctx, cfg, opts)
	if err != nil {
		return in.fail(cfg, err)
	}
	result := Result{Status: status, Path: cfg.BinaryPath, Duration: time.Since(start)}
	in.log.Debug("install finished", "status", status, "path", cfg.BinaryPath, "duration", result.Duration)
	if status == StatusInstalled && !opts.Quiet {
		_, _ = color.New(color.FgGreen).Fprintf(in.stderr, messages.InstallInstalledFmt, cfg.Target.Name)
	}
	return result, nil
}

func (in *Installer) fail(cfg *release.Config, err error) (Result, error) {
	in.log.Debug("install failed", "url", cfg.URL, "error", err)
	_, _ = color.New(color.FgRed).Fprintf(in.stderr, messages.InstallFetchFailedFmt, err)
	return Result{Status: StatusFailed, Path: cfg.BinaryPath}, err
}

// install runs the locked clear, download, extract, and finalize sequence.
func (in *Installer) install(ctx context.Context, cfg *release.Config, opts Options) (Status, error) {
	if err := osMkdirAll(cfg.InstallRoot, 0o755); err != nil {
		return StatusFailed, &Error{Op: OpPrepare, URL: cfg.URL, Err: fmt.Errorf(messages.InstallCreateDirFmt, cfg.InstallRoot, err)}
	}

	status := StatusFailed
	err := withFileLock(cfg.LockPath(), func() error {
		found, err := exists(cfg.BinaryPath)
		if err != nil {
			return &Error{Op: OpPrepare, URL: cfg.URL, Err: err}
		}
		if found {
			// Another invocation finished the install while we waited.
			status = StatusAlreadyInstalled
			return nil
		}
		if err := in.resetDir(cfg); err != nil {
			return err
		}

		if !opts.Quiet {
			_, _ = fmt.Fprintf(in.stderr, messages.InstallDownloadingFmt, cfg.URL)
		}
		if err := in.downloadAndExtract(ctx, cfg, opts); err != nil {
			return err
		}
		if err := finalize(cfg); err != nil {
			return &Error{Op: OpFinalize, URL: cfg.URL, Err: err}
		}
		status = StatusInstalled
		return nil
	})
	if err != nil {
		var installErr *Error
		if !errors.As(err, &installErr) {
			err = &Error{Op: OpPrepare, URL: cfg.URL, Err: err}
		}
		return StatusFailed, err
	}
	return status, nil
}

// resetDir removes leftovers of an earlier attempt and recreates the install directory.
func (in *Installer) resetDir(cfg *release.Config) error {
	if _, err := osStat(cfg.InstallDir); err == nil {
		in.log.Debug("clearing stale install dir", "dir", cfg.InstallDir)
		if err := osRemoveAll(cfg.InstallDir); err != nil {
			return &Error{Op: OpPrepare, URL: cfg.URL, Err: fmt.Errorf(messages.InstallRemoveDirFmt, cfg.InstallDir, err)}
		}
	}
	if err := osMkdirAll(cfg.InstallDir, 0o755); err != nil {
		return &Error{Op: OpPrepare, URL: cfg.URL, Err: fmt.Errorf(messages.InstallCreateDirFmt, cfg.InstallDir, err)}
	}
	return nil
}

func (in *Installer) downloadAndExtract(ctx context.Context, cfg *release.Config, opts Options) error {
	if opts.Fetch.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Fetch.Timeout)
		defer cancel()
	}

	in.log.Debug("downloading", "url", cfg.URL)
	resp, err := in.fetch(ctx, cfg.URL, opts.Fetch.Headers)
	if err != nil {
		return &Error{Op: OpDownload, URL: cfg.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	var body io.Reader = resp.Body
	if in.progress && !opts.Quiet {
		bar := newProgressBar(in.stderr, resp.ContentLength)
		defer func() { _ = bar.Close() }()
		body = io.TeeReader(resp.Body, bar)
	}

	entries, err := extractTarGz(body, cfg.InstallDir)
	if err != nil {
		return &Error{Op: OpExtract, URL: cfg.URL, Err: err}
	}
	in.log.Debug("extracted archive", "dir", cfg.InstallDir, "entries", entries)
	return nil
}

// finalize moves the extracted binary to its canonical path and makes it executable.
func finalize(cfg *release.Config) error {
	extracted := filepath.Join(cfg.InstallDir, cfg.Target.Name)
	info, err := osStat(extracted)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf(messages.InstallBinaryNotInArchiveFmt, ErrBinaryNotInArchive, cfg.Target.Name)
		}
		return fmt.Errorf(messages.InstallCheckBinaryFmt, extracted, err)
	}
	if info.IsDir() {
		return fmt.Errorf(messages.InstallBinaryNotInArchiveFmt, ErrBinaryNotInArchive, cfg.Target.Name)
	}
	if extracted != cfg.BinaryPath {
		if err := osRename(extracted, cfg.BinaryPath); err != nil {
			return fmt.Errorf(messages.InstallRenameBinaryFmt, cfg.Target.Name, err)
		}
	}
	if info.Mode().Perm()&0o111 == 0 {
		if err := osChmod(cfg.BinaryPath, info.Mode().Perm()|0o755); err != nil {
			return fmt.Errorf(messages.InstallChmodBinaryFmt, cfg.BinaryPath, err)
		}
	}
	return nil
}

// Uninstall removes the install directory and its lock file. A missing
// directory is not an error.
func (in *Installer) Uninstall(cfg *release.Config, quiet bool) error {
	if cfg == nil {
		return errors.New(messages.InstallConfigRequired)
	}
	present, err := exists(cfg.InstallDir)
	if err != nil {
		return err
	}
	if err := osRemoveAll(cfg.InstallDir); err != nil {
		return fmt.Errorf(messages.InstallRemoveDirFmt, cfg.InstallDir, err)
	}
	if err := os.Remove(cfg.LockPath()); err != nil && !os.IsNotExist(err) {
		in.log.Debug("remove lock file", "path", cfg.LockPath(), "error", err)
	}
	if quiet {
		return nil
	}
	if !present {
		_, _ = color.New(color.FgYellow).Fprintf(in.stderr, messages.InstallNotInstalledFmt, cfg.Target.Name)
		return nil
	}
	_, _ = color.New(color.FgGreen).Fprintf(in.stderr, messages.InstallUninstalledFmt, cfg.Target.Name)
	return nil
}

func exists(path string) (bool, error) {
	if _, err := osStat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf(messages.InstallCheckBinaryFmt, path, err)
	}
	return true, nil
}
