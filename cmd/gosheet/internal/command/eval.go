package command

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vogtb/gosheet/internal/sheet"
)

func evalCmd() *cobra.Command {
	var showTexts bool

	cmd := &cobra.Command{
		Use:   "eval [file]",
		Short: "Apply ADDR=TEXT edits from a file (or stdin) and print the result",
		Long: `Reads ADDR=TEXT edits one per line, in order, applying each to a
fresh sheet. Blank lines and lines starting with # are skipped. Use a
double = for a formula, e.g. B1==A1+3. Prints the resulting displayed
values unless --texts is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, showTexts)
		},
	}
	cmd.Flags().BoolVar(&showTexts, "texts", false, "print raw cell text instead of displayed values")
	return cmd
}

func runEval(cmd *cobra.Command, args []string, showTexts bool) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	sh := sheet.New()
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := applyAssignment(sh, line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if showTexts {
		return sh.PrintTexts(cmd.OutOrStdout())
	}
	return sh.PrintValues(cmd.OutOrStdout())
}
