// Package cli implements the depreciation command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"depreciation-calculator/config"
	"depreciation-calculator/logging"
)

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

// NewRootCommand builds a fresh command tree so tests do not share flag
// state.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "depreciation",
		Short: "Compute asset depreciation schedules",
		Long: `Compute year-by-year depreciation schedules using straight-line,
declining balance, units of production, sum-of-the-years-digits or double
declining balance. Run "depreciation serve" for the web form and JSON API,
or "depreciation calc" for a table on the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "depreciation.toml", "Path to a TOML config file (optional)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newCalcCommand())
	root.AddCommand(newCompareCommand())
	root.AddCommand(newMethodsCommand())
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return logging.New(w, cfg.Log.Level, cfg.Log.Format)
}
