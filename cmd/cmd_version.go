package cmd

import (
	"fmt"

	"github.com/gaze-network/blocks-explorer/core/constants"
	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show blocks-explorer version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), constants.Version)
			return err
		},
	}
}
