// =============================================================================
// txcompare - Root Command
// =============================================================================
//
// The root command wires the Cobra CLI together:
//
//   txcompare compare   - compare two transaction log files
//   txcompare convert   - convert a transaction log between formats
//   txcompare formats   - list the supported format identifiers
//   txcompare version   - display the application version
//
// Exit codes:
//   0 - compared sequences match
//   1 - field-level mismatch found
//   2 - length mismatch found
//   3 - any failure (decode error, unsupported format, I/O, bad usage)
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ypbank/txcompare/internal/config"
	"github.com/ypbank/txcompare/internal/logger"
	"github.com/ypbank/txcompare/internal/record"
)

// exitFailure is the exit code for every failure that is not a computed
// comparison divergence.
const exitFailure = 3

// cfgFile holds the path to the configuration file, settable via --config.
var cfgFile string

// verbose forces debug logging regardless of the configured level.
var verbose bool

// cfg and log are initialized by the root PersistentPreRunE before any
// subcommand runs.
var (
	cfg *config.Config
	log zerolog.Logger
)

// exitError carries a non-zero exit code for an outcome that was already
// reported to the user; Execute exits with the code without printing again.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "txcompare",
	Short: "Compare and convert bank transaction log files",
	Long: `txcompare verifies that two independently produced transaction logs describe
the same transaction stream. Each file is decoded from its own format (csv,
text, bin, json or xlsx) into a canonical record sequence, and the two
sequences are compared position by position; the first point of divergence is
reported with the differing fields.

The tool can also convert a transaction log from any supported format to any
other.`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := logger.ParseLevel(cfg.Logging.Level)
		if verbose {
			level = zerolog.DebugLevel
		}
		log = logger.New(level)

		if cfg.Currency.Default != "" {
			currency, err := record.NormalizeCurrency(cfg.Currency.Default)
			if err != nil {
				return fmt.Errorf("invalid default currency: %w", err)
			}
			record.DefaultCurrency = currency
		}

		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI and maps the result onto the process exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFailure)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
