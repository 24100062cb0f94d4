package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ddd/internal/diagfmt"
	"ddd/internal/driver"
)

var modelCmd = &cobra.Command{
	Use:   "model [flags] file.ddd",
	Short: "Build the semantic model of a contract file and dump it",
	Args:  cobra.ExactArgs(1),
	RunE:  runModel,
}

func init() {
	modelCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

func runModel(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd, startDirFor(filePath))
	if err != nil {
		return err
	}

	res, err := driver.CompileFile(cmd.Context(), filePath, driver.Options{
		Keywords:       s.cfg.DSL.Keywords,
		MaxDiagnostics: s.maxDiagnostics,
		Templates:      s.cfg.Templates,
	})
	if err != nil {
		return err
	}
	if res.Model == nil {
		printBag(os.Stderr, res.Bag, res.FileSet, s)
		return res.Err
	}

	out := bufio.NewWriter(os.Stdout)
	if format == "pretty" {
		err = diagfmt.FormatModelPretty(out, res.Model, colorEnabled(cmd, os.Stdout))
	} else {
		f, perr := driver.ParseExportFormat(format)
		if perr != nil {
			return perr
		}
		err = driver.ExportModel(out, res.Model, f)
	}
	if err != nil {
		return err
	}
	if s.timings {
		fmt.Fprint(os.Stderr, res.Timer.Summary())
	}
	return out.Flush()
}
