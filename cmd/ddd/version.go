package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ddd/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprint(os.Stdout, version.Info(colorEnabled(cmd, os.Stdout)))
		return err
	},
}
