package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalProjectDir accepts at most one [project_dir] argument.
func OptionalProjectDir(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./service`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// projectDir returns the project directory argument, defaulting to ".".
func projectDir(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "."
	}
	return args[0]
}
