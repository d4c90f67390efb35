// txcompare verifies that two independently produced bank transaction logs
// agree, and converts logs between the supported formats. See cmd for the
// CLI surface and internal/compare for the comparison engine.
package main

import "github.com/ypbank/txcompare/cmd"

func main() {
	cmd.Execute()
}
