package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ddd/internal/diagfmt"
	"ddd/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.ddd",
	Short: "Parse a contract file and print its parse tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|sexpr|json)")
	parseCmd.Flags().String("diagnostics", "pretty", "diagnostics format on stderr (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	diagFormat, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	s, err := loadSettings(cmd, startDirFor(filePath))
	if err != nil {
		return err
	}
	src, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	fs, tree, bag := driver.Parse(filePath, src, s.cfg.DSL.Keywords, s.maxDiagnostics)
	switch diagFormat {
	case "pretty":
		printBag(os.Stderr, bag, fs, s)
	case "json":
		if bag.Len() > 0 {
			bag.Sort()
			if err := diagfmt.JSON(os.Stderr, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, BaseDir: s.root}); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown diagnostics format: %s", diagFormat)
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTreePretty(os.Stdout, tree)
	case "sexpr":
		_, err = fmt.Fprintln(os.Stdout, tree.Sexpr(tree.Root))
	case "json":
		err = diagfmt.FormatTreeJSON(os.Stdout, tree)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if bag.HasErrors() {
		return fmt.Errorf("%s has syntax errors", filePath)
	}
	return nil
}
