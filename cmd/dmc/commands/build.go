package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile changed sources and link the executable",
		Args:  cobra.NoArgs,
		RunE:  c.runBuild,
	}
}

func (c *CLI) runBuild(cmd *cobra.Command, _ []string) error {
	_, err := c.app.Build(cmd.Context(), buildOptions(cmd))
	return err
}
