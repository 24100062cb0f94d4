package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ddd/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ddd",
	Short: "Message-contract DSL compiler",
	Long: `ddd compiles entity, command and event declarations into generated
source files using configurable templates`,
	SilenceUsage: true,
}

// main registers subcommands and persistent flags and executes the root
// command. Any error exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to ddd.toml or ddd.yaml (default: search upwards)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (none|normal|debug), overrides the project file")
	addProfileFlags(rootCmd)
	rootCmd.PersistentPreRunE = startProfiling

	err := rootCmd.Execute()
	stopProfiling()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
