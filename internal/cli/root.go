package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/symtools/symver/pkg/buildinfo"
)

// Execute runs the symver CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with its subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
// Errors are returned rather than printed so the caller controls the exit
// path; the update command's abort lines reach stderr exactly once.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:           "symver",
		Short:         "Symver maintains linker version maps",
		Long:          `Symver keeps linker version maps in sync with the symbols a built library actually exports: new symbols land in the open release, removals need an explicit ABI-break override, and released blocks are never touched.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newUpdateCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
