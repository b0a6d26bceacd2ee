// Command gosheet runs an interactive or server-backed session against
// the spreadsheet evaluation core.
package main

import (
	"fmt"
	"os"

	"github.com/vogtb/gosheet/cmd/gosheet/internal/command"
)

func main() {
	if err := command.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
