// =============================================================================
// txcompare - Compare Command
// =============================================================================
//
// The compare command decodes two transaction log files and reports whether
// they describe the same transaction stream. The two decodes run
// concurrently unless the configuration says otherwise; the comparison
// itself is positional and deterministic.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ypbank/txcompare/internal/compare"
	"github.com/ypbank/txcompare/internal/registry"
	"github.com/ypbank/txcompare/pkg/fileutil"
)

var (
	// compareFile1 and compareFile2 are the two input paths.
	compareFile1 string
	compareFile2 string

	// compareFormat1 and compareFormat2 select the decoder for each side.
	compareFormat1 string
	compareFormat2 string

	// compareAll reports every divergence instead of only the first.
	compareAll bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two transaction log files",
	Long: `The compare command decodes both files into canonical transaction records and
compares the sequences position by position. Records are never reordered or
deduplicated: the tool verifies integrity of an ordered stream, it does not
reconcile reordered ledgers.

The exit code distinguishes the outcome: 0 when the files match, 1 on a
field-level mismatch, 2 on a length mismatch and 3 when either file could not
be decoded.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare(cmd)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareFile1, "file1", "", "First file to read")
	compareCmd.Flags().StringVar(&compareFormat1, "format1", "", "Data format of the first file (default from config)")
	compareCmd.Flags().StringVar(&compareFile2, "file2", "", "Second file to read")
	compareCmd.Flags().StringVar(&compareFormat2, "format2", "", "Data format of the second file (default from config)")
	compareCmd.Flags().BoolVar(&compareAll, "all", false, "Report every divergence instead of only the first")

	compareCmd.MarkFlagRequired("file1")
	compareCmd.MarkFlagRequired("file2")
}

func runCompare(cmd *cobra.Command) error {
	format1, format2 := compareFormat1, compareFormat2
	if format1 == "" {
		format1 = cfg.Compare.Format1
	}
	if format2 == "" {
		format2 = cfg.Compare.Format2
	}
	if format1 == "" || format2 == "" {
		return fmt.Errorf("both formats must be given, via --format1/--format2 or the config file")
	}

	file1, err := fileutil.OpenInput(compareFile1)
	if err != nil {
		return err
	}
	defer file1.Close()

	file2, err := fileutil.OpenInput(compareFile2)
	if err != nil {
		return err
	}
	defer file2.Close()

	pipeline := compare.NewPipeline(registry.Default(), log)
	pipeline.Sequential = cfg.Compare.Sequential

	first := compare.Input{Name: compareFile1, Format: format1, Reader: file1}
	second := compare.Input{Name: compareFile2, Format: format2, Reader: file2}

	var outcomes []compare.Outcome
	if compareAll || cfg.Compare.ReportAll {
		outcomes = pipeline.RunAll(cmd.Context(), first, second)
	} else {
		outcomes = []compare.Outcome{pipeline.Run(cmd.Context(), first, second)}
	}

	code := 0
	for _, outcome := range outcomes {
		printOutcome(os.Stdout, outcome)
		if c := outcomeExitCode(outcome); c > code {
			code = c
		}
	}

	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// printOutcome renders one outcome for the operator.
func printOutcome(w io.Writer, outcome compare.Outcome) {
	switch o := outcome.(type) {
	case compare.Match:
		fmt.Fprintf(w, "Files %s and %s are identical (%d records).\n",
			compareFile1, compareFile2, o.Records)

	case compare.Mismatch:
		fmt.Fprintf(w, "Records at index %d differ (fields: %s):\n",
			o.Index, strings.Join(o.DifferingFields, ", "))
		fmt.Fprintf(w, "  first:  %s\n", o.Left)
		fmt.Fprintf(w, "  second: %s\n", o.Right)

	case compare.LengthMismatch:
		fmt.Fprintf(w, "Record counts differ: the %s file has %d extra record(s) after a shared prefix of %d:\n",
			o.LongerSide, o.LongerLen-o.ShorterLen, o.ShorterLen)
		for i, rec := range o.ExtraRecords {
			fmt.Fprintf(w, "  index %d: %s\n", o.ShorterLen+i, rec)
		}

	case compare.DecodeFailure:
		fmt.Fprintf(w, "Failed to decode the %s file: %v\n", o.Side, o.Err)
	}
}

// outcomeExitCode maps an outcome onto the documented exit codes.
func outcomeExitCode(outcome compare.Outcome) int {
	switch outcome.(type) {
	case compare.Match:
		return 0
	case compare.Mismatch:
		return 1
	case compare.LengthMismatch:
		return 2
	default:
		return exitFailure
	}
}
