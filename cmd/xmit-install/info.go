package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xmit-co/xmit-npm/internal/install"
	"github.com/xmit-co/xmit-npm/internal/messages"
)

func newInfoCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.InfoUse,
		Short: messages.InfoShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			in := install.New(install.Config{Stderr: cmd.ErrOrStderr(), Logger: root.logger(cmd.ErrOrStderr())})
			installed, err := in.IsInstalled(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.InfoNameFmt, cfg.Target.Name)
			_, _ = fmt.Fprintf(out, messages.InfoVersionFmt, cfg.Target.Version)
			_, _ = fmt.Fprintf(out, messages.InfoPlatformFmt, cfg.Target.Platform)
			_, _ = fmt.Fprintf(out, messages.InfoURLFmt, cfg.URL)
			_, _ = fmt.Fprintf(out, messages.InfoInstallDirFmt, cfg.InstallDir)
			_, _ = fmt.Fprintf(out, messages.InfoBinaryFmt, cfg.BinaryPath)
			_, _ = fmt.Fprintf(out, messages.InfoInstalledFmt, installed)
			return nil
		},
	}
}
