// Package command wires the gosheet CLI's subcommands.
package command

import (
	"github.com/spf13/cobra"
)

// Root builds the top-level gosheet command.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "gosheet",
		Short:         "A reactive, formula-driven spreadsheet core",
		Long:          "gosheet evaluates a sparse grid of text, numbers, and formulas, recomputing dependents as cells change.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(replCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(evalCmd())
	return root
}
