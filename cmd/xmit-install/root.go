package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/xmit-co/xmit-npm/internal/logging"
	"github.com/xmit-co/xmit-npm/internal/messages"
	"github.com/xmit-co/xmit-npm/internal/release"
	"github.com/xmit-co/xmit-npm/internal/terminal"
)

var (
	loadConfigFunc   = release.Load
	isInteractive    = terminal.IsInteractive
	stderrIsTerminal = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && terminal.IsTerminal(f)
	}
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	dir     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", messages.RootFlagDir)
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, messages.RootFlagVerbose)

	cmd.AddCommand(
		newInstallCmd(opts),
		newUninstallCmd(opts),
		newPathCmd(opts),
		newInfoCmd(opts),
	)
	return cmd
}

// config resolves the release Config, honoring --dir.
func (o *rootOptions) config() (*release.Config, error) {
	dir := strings.TrimSpace(o.dir)
	if dir != "" {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return nil, fmt.Errorf(messages.RootExpandDirFmt, o.dir, err)
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return nil, fmt.Errorf(messages.RootExpandDirFmt, o.dir, err)
		}
		dir = abs
	}
	return loadConfigFunc(release.Options{InstallRoot: dir})
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	return logging.New(w, o.verbose)
}
