package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ypbank/txcompare/internal/registry"
)

// formatsCmd lists the format identifiers accepted by --format1/--format2
// and the convert command. The set is fixed at build time.
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported format identifiers",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range registry.Default().Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
