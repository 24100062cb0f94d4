package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ddd/internal/prof"
)

var profSession *prof.Session

func addProfileFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("cpuprofile", "", "write CPU profile to file")
	cmd.PersistentFlags().String("memprofile", "", "write heap profile to file on exit")
	cmd.PersistentFlags().String("trace", "", "write runtime trace to file")
}

// startProfiling is the root PersistentPreRunE; profiles are flushed by
// stopProfiling after the command returns, even when it failed.
func startProfiling(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	opts.CPU, _ = flags.GetString("cpuprofile")
	opts.Mem, _ = flags.GetString("memprofile")
	opts.Trace, _ = flags.GetString("trace")
	if !opts.Enabled() {
		return nil
	}
	s, err := prof.Start(opts)
	if err != nil {
		return err
	}
	profSession = s
	return nil
}

func stopProfiling() {
	if err := profSession.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
	}
	profSession = nil
}
