package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xmit-co/xmit-npm/internal/messages"
)

func newPathCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.PathUse,
		Short: messages.PathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cfg.BinaryPath)
			return err
		},
	}
}
