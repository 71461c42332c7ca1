package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/buildmeta/internal/config"
	"github.com/vvka-141/buildmeta/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init [project_dir]",
	Short: "Write a default buildmeta.yaml",
	Long: `Write buildmeta.yaml with the default settings into the project directory.

An existing file is kept unless --force is given.

Examples:
  buildmeta init            # Current directory
  buildmeta init ./service  # Subdirectory`,
	Args:              OptionalProjectDir,
	ValidArgsFunction: completeDirectories,
	RunE:              runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing buildmeta.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := projectDir(args)
	target := filepath.Join(dir, config.ConfigFileName)

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot access project directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if _, err := os.Stat(target); err == nil && !initForce {
		return fmt.Errorf("%s already exists\n\nUse --force to overwrite it", target)
	}

	data, err := config.Marshal(config.Default())
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	out := cmd.OutOrStdout()
	check := tui.SymbolCheck
	if tui.IsStyled(out) {
		check = tui.SuccessStyle.Render(check)
	}
	fmt.Fprintf(out, "%s Wrote %s\n", check, target)
	return nil
}
