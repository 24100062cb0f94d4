package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ddd/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new ddd project",
	Long: `Initialize a new ddd project by creating a project manifest (ddd.toml)
with the default configuration and an example contract file. If [path] is
omitted, initializes the current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const exampleContract = `namespace Example.Orders;
using System.Runtime.Serialization;

fragment id = string OrderId;

entity Order { id } {
    modifier ? = IOrderCommand;

    command PlaceOrder (?) { int Quantity; display Quantity }
    event OrderPlaced { id; int Quantity }
}
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath, err := project.WriteDefault(target)
	if err != nil {
		return err
	}
	created := []string{manifestPath}

	examplePath := filepath.Join(target, "orders.ddd")
	if _, err := os.Stat(examplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(examplePath, []byte(exampleContract), 0o644); err != nil { // #nosec G306 -- project sources are shared
			return fmt.Errorf("failed to write %s: %w", examplePath, err)
		}
		created = append(created, examplePath)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		for _, path := range created {
			fmt.Fprintf(os.Stdout, "created %s\n", path)
		}
	}
	return nil
}
