// =============================================================================
// txcompare - Convert Command
// =============================================================================
//
// The convert command decodes a transaction log in one format and re-encodes
// the same record sequence in another. Conversion is exact: the canonical
// sequence is preserved record for record, and a target format that cannot
// represent a record (for example a non-default currency in a legacy format)
// fails instead of dropping information.
//
// =============================================================================

package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ypbank/txcompare/internal/registry"
	"github.com/ypbank/txcompare/pkg/fileutil"
)

var (
	convertInput        string
	convertInputFormat  string
	convertOutputFormat string

	// convertOutput is the output path; empty writes to stdout.
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a transaction log between formats",
	Long: `The convert command reads a transaction log in the given input format and
writes the same sequence in the output format, to stdout or to --output.
Output files are written atomically: a failed conversion leaves no partial
file behind.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertInput, "input", "", "File to read")
	convertCmd.Flags().StringVar(&convertInputFormat, "input-format", "", "Data format of the input file")
	convertCmd.Flags().StringVar(&convertOutputFormat, "output-format", "", "Data format to write")
	convertCmd.Flags().StringVar(&convertOutput, "output", "", "Output file (default is stdout)")

	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("input-format")
	convertCmd.MarkFlagRequired("output-format")
}

func runConvert() error {
	reg := registry.Default()

	decoder, err := reg.Lookup(convertInputFormat)
	if err != nil {
		return err
	}
	encoder, err := reg.Lookup(convertOutputFormat)
	if err != nil {
		return err
	}

	input, err := fileutil.OpenInput(convertInput)
	if err != nil {
		return err
	}
	defer input.Close()

	records, err := decoder.Decode(input)
	if err != nil {
		return err
	}
	log.Debug().
		Str("input", convertInput).
		Str("from", decoder.Name()).
		Str("to", encoder.Name()).
		Int("records", len(records)).
		Msg("decoded input")

	if convertOutput == "" {
		return encoder.Encode(os.Stdout, records)
	}
	return fileutil.WriteFileAtomic(convertOutput, func(w io.Writer) error {
		return encoder.Encode(w, records)
	})
}
