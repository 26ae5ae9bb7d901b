// Package commands implements the CLI commands for the dmc build driver.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/dmc/internal/app"
	"go.trai.ch/dmc/internal/build"
)

const (
	flagRoot         = "root"
	flagDebug        = "debug"
	flagSingleThread = "single-thread"
	flagDev          = "dev"
	flagLinker       = "linker"
	flagJobs         = "jobs"
	flagSchedule     = "schedule"
	flagMetricsFile  = "metrics-file"
)

// CLI represents the command line interface for dmc.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "dmc",
		Short:         "An incremental, content addressed build driver",
		Long:          "dmc fingerprints preprocessed sources, compiles only what changed and links a single executable.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
		RunE:          c.runBuild,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	pf := rootCmd.PersistentFlags()
	pf.StringP(flagRoot, "C", ".", "Workspace root")
	pf.BoolP(flagDebug, "d", false, "Trace every step (DMC_DEBUG)")
	pf.BoolP(flagSingleThread, "s", false, "Compile with a single worker (DMC_STHREAD)")
	pf.Bool(flagDev, false, "Optimize with -O2 and link with -flto (DMC_DEV)")
	pf.String(flagLinker, "", "Force a link backend instead of auto-detection (DMC_LINKER)")
	pf.IntP(flagJobs, "j", 0, "Number of compile workers, 0 for one per CPU (DMC_JOBS)")
	pf.String(flagSchedule, "", "Work distribution: stride or queue (DMC_SCHEDULE)")
	pf.String(flagMetricsFile, "", "Write Prometheus metrics to this file after each build")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newHashCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

// buildOptions collects the flags that were set explicitly on the command line.
func buildOptions(cmd *cobra.Command) app.BuildOptions {
	flags := cmd.Flags()
	opts := app.BuildOptions{}
	opts.Root, _ = flags.GetString(flagRoot)
	opts.MetricsFile, _ = flags.GetString(flagMetricsFile)

	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}
	opts.Overrides.Debug = boolFlag(flagDebug)
	opts.Overrides.SingleThread = boolFlag(flagSingleThread)
	opts.Overrides.Dev = boolFlag(flagDev)

	if flags.Changed(flagJobs) {
		jobs, _ := flags.GetInt(flagJobs)
		opts.Overrides.Jobs = &jobs
	}
	opts.Overrides.Linker, _ = flags.GetString(flagLinker)
	opts.Overrides.Schedule, _ = flags.GetString(flagSchedule)
	return opts
}
