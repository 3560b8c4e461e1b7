package cli

import (
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/symtools/symver/pkg/symbols"
	"github.com/symtools/symver/pkg/update"
)

// updateOpts holds the command-line flags for the update command.
type updateOpts struct {
	input      string // symbol list file (stdin if empty)
	out        string // destination map path (in place if empty)
	release    string // target release name (open release if empty)
	finalize   bool   // freeze the target release after updating
	allowBreak bool   // permit symbol removal from the open release
	dryRun     bool   // report without writing
}

// newUpdateCmd creates the update command. It reads the observed symbol
// list from stdin or --in, applies it to the map given as the positional
// argument, and prints one report line per change to stdout.
func newUpdateCmd() *cobra.Command {
	var opts updateOpts

	cmd := &cobra.Command{
		Use:   "update [flags] <map-file>",
		Short: "Update a version map with the symbols of a built artifact",
		Long: `Update reconciles a version map with an observed symbol list.

The symbol list is read from stdin, or from a file with --in; any output of
nm or readelf works, since every run of word characters counts as one
symbol. New symbols are recorded in the map's open release (creating one
past the last released block when needed), and symbols that disappeared are
only dropped with --allow-abi-break. Released blocks are never modified.

Updating a map in place first moves the previous content to <map>.old.

Examples:
  nm -D --defined-only libfoo.so | symver update libfoo.map
  symver update --in symbols.txt --finalize libfoo.map
  symver update --in symbols.txt --out next.map --release LIBFOO_1_2_0 libfoo.map`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.input, "in", "i", "", "symbol list file (default: stdin)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "destination map file (default: update in place)")
	cmd.Flags().StringVarP(&opts.release, "release", "r", "", "target release name (default: the open release)")
	cmd.Flags().BoolVarP(&opts.finalize, "finalize", "f", false, "mark the target release as released")
	cmd.Flags().BoolVarP(&opts.allowBreak, "allow-abi-break", "b", false, "allow symbols to be removed from the open release")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "report changes without writing any file")

	return cmd
}

func runUpdate(cmd *cobra.Command, opts updateOpts, mapPath string) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := loadConfig(mapPath)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}

	observed, err := readObserved(cmd, opts.input)
	if err != nil {
		return err
	}
	logger.Debug("read symbol list", "symbols", len(observed), "source", inputName(opts.input))

	runner := update.NewRunner(logger)
	res, err := runner.Run(update.Request{
		MapPath:    mapPath,
		Observed:   observed,
		Release:    opts.release,
		Library:    cfg.Library,
		Finalize:   opts.finalize,
		AllowBreak: opts.allowBreak,
		Out:        opts.out,
		DryRun:     opts.dryRun,
	})
	if err != nil {
		return err
	}

	if len(res.Notices) == 0 {
		logger.Info("No symbols added or removed. Nothing done.")
		return nil
	}
	printReport(cmd.OutOrStdout(), res.Notices)
	if res.Written {
		logger.Debug("wrote map", "path", res.Path, "backup", res.Backup)
	}
	return nil
}

// readObserved reads the symbol list from the given file, or from the
// command's stdin when no file was named.
func readObserved(cmd *cobra.Command, path string) ([]string, error) {
	if path == "" {
		return symbols.Read(cmd.InOrStdin())
	}
	return symbols.ReadFile(path)
}

func inputName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}
