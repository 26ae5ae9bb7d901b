package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Print the fingerprint of every source file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.Hash(cmd.Context(), buildOptions(cmd), cmd.OutOrStdout())
			return err
		},
	}
}
