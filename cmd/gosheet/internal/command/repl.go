package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vogtb/gosheet/internal/position"
	"github.com/vogtb/gosheet/internal/replio"
	"github.com/vogtb/gosheet/internal/sheet"
)

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session against a new sheet",
		Long: `Each line is either:

  ADDR=TEXT     set a cell, e.g. A1=2 or B1==A1+3
  .clear ADDR   clear a cell
  .print        print displayed values
  .texts        print raw cell text
  .size         print the printable envelope
  .help         show this message
  .quit         exit

A line beginning with "." that isn't a known command is treated as an
error, not a cell write.`,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, args []string) error {
	sh := sheet.New()
	reader := replio.NewLineReader(os.Stdin, os.Stdout)
	defer reader.Close()

	for {
		line, ok := reader.ReadLine("gosheet> ")
		if !ok {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if !runDotCommand(cmd, sh, line) {
				return nil
			}
			continue
		}
		if err := applyAssignment(sh, line); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), err)
		}
	}
}

// runDotCommand handles a "." prefixed control line. It returns false
// when the session should end.
func runDotCommand(cmd *cobra.Command, sh *sheet.Sheet, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".quit", ".exit":
		return false
	case ".help":
		fmt.Fprintln(cmd.OutOrStdout(), cmd.Long)
	case ".print":
		_ = sh.PrintValues(cmd.OutOrStdout())
	case ".texts":
		_ = sh.PrintTexts(cmd.OutOrStdout())
	case ".size":
		rows, cols := sh.GetPrintableSize()
		fmt.Fprintf(cmd.OutOrStdout(), "%d rows x %d cols\n", rows, cols)
	case ".clear":
		if len(fields) != 2 {
			fmt.Fprintln(cmd.OutOrStdout(), "usage: .clear ADDR")
			return true
		}
		pos, err := position.Parse(fields[1])
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), err)
			return true
		}
		if err := sh.ClearCell(pos); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), err)
		}
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "unknown command %q, try .help\n", fields[0])
	}
	return true
}

// applyAssignment parses "ADDR=TEXT" and applies it to sh.
func applyAssignment(sh *sheet.Sheet, line string) error {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return fmt.Errorf("expected ADDR=TEXT, got %q", line)
	}
	addr := strings.TrimSpace(line[:idx])
	text := line[idx+1:]

	pos, err := position.Parse(addr)
	if err != nil {
		return err
	}
	return sh.SetCell(pos, text)
}
