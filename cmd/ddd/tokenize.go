package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ddd/internal/diagfmt"
	"ddd/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.ddd",
	Short: "Tokenize a contract file",
	Long:  `Tokenize breaks down a contract file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := loadSettings(cmd, startDirFor(filePath))
	if err != nil {
		return err
	}
	src, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	fs, tokens, bag := driver.Tokenize(filePath, src, s.maxDiagnostics)
	// Выводим диагностику в stderr, если есть
	printBag(os.Stderr, bag, fs, s)

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fs)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
