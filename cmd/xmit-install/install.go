package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xmit-co/xmit-npm/internal/install"
	"github.com/xmit-co/xmit-npm/internal/messages"
)

func newInstallCmd(root *rootOptions) *cobra.Command {
	var quiet bool
	var headers []string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header, err := parseHeaders(headers)
			if err != nil {
				return err
			}
			cfg, err := root.config()
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			in := install.New(install.Config{
				Stderr:   stderr,
				Logger:   root.logger(stderr),
				Progress: !quiet && stderrIsTerminal(stderr),
			})
			_, err = in.EnsureInstalled(cmd.Context(), cfg, install.Options{
				Quiet: quiet,
				Fetch: install.FetchOptions{Headers: header, Timeout: timeout},
			})
			if err != nil {
				// The installer already reported the failure.
				return &SilentExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, messages.InstallFlagQuiet)
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, messages.InstallFlagHeader)
	cmd.Flags().DurationVar(&timeout, "timeout", 0, messages.InstallFlagTimeout)

	return cmd
}

// parseHeaders turns KEY=VALUE pairs into request headers.
func parseHeaders(pairs []string) (http.Header, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	header := http.Header{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf(messages.InstallHeaderFmt, pair)
		}
		header.Add(key, strings.TrimSpace(value))
	}
	return header, nil
}
