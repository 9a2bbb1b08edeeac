// Command apexsym runs the symbol collector and same-file reference
// resolver over a demo Apex compilation unit and prints the resulting
// symbol table, reference list, or diagnostics.
package main

import (
	"fmt"
	"os"

	"github.com/apex-lang-tools/symbol-core/cmd/apexsym/cmd"
)

func main() {
	if err := cmd.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
