package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xmit-co/xmit-npm/internal/install"
	"github.com/xmit-co/xmit-npm/internal/messages"
)

var confirmFunc = confirm

func newUninstallCmd(root *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()

			if !yes && isInteractive() {
				ok, err := confirmFunc(fmt.Sprintf(messages.UninstallPromptFmt, cfg.InstallDir))
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(stderr, messages.UninstallAborted)
					return nil
				}
			}

			in := install.New(install.Config{Stderr: stderr, Logger: root.logger(stderr)})
			return in.Uninstall(cfg, false)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.UninstallFlagYes)

	return cmd
}
