package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/buildmeta/internal/files/filesystem"
	"github.com/vvka-141/buildmeta/internal/logging"
	"github.com/vvka-141/buildmeta/internal/services"
	"github.com/vvka-141/buildmeta/internal/tui"
)

var showCmd = &cobra.Command{
	Use:   "show [project_dir]",
	Short: "Show the current build metadata",
	Long: `Print the children of the managed element without modifying anything.

Examples:
  # Human-readable listing
  buildmeta show

  # JSON for scripts
  buildmeta show ./service --json`,
	Args:              OptionalProjectDir,
	ValidArgsFunction: completeDirectories,
	RunE:              runShow,
}

var (
	showDescFlags descriptorFlags
	showJSON      bool
)

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showDescFlags.file, "file", "f", "", "Descriptor to read, relative to the project directory (default pom.xml)")
	showCmd.Flags().StringVar(&showDescFlags.path, "path", "", "Absolute path of the managed element (default /project/properties)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	_ = showCmd.RegisterFlagCompletionFunc("file", completeDescriptors)
}

func runShow(cmd *cobra.Command, args []string) error {
	dir := projectDir(args)
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	s, err := resolveSettings(dir, showDescFlags, updateFlagValues{}, logger)
	if err != nil {
		return err
	}

	svc := services.NewUpdateService(filesystem.NewOSFileSystem(), logger)
	snapshot, err := svc.Show(s.Descriptor, s.ElementPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showJSON {
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if !snapshot.Found {
		logger.Warn("Element %s not found in %s", snapshot.ElementPath, snapshot.Descriptor)
		return nil
	}

	styled := tui.IsStyled(out)
	title := fmt.Sprintf("%s %s", snapshot.Descriptor, snapshot.ElementPath)
	if styled {
		title = tui.TitleStyle.Render(title)
	}
	fmt.Fprintln(out, title)
	for _, p := range snapshot.Properties {
		name, value := p.Name, p.Value
		if styled {
			name, value = tui.NameStyle.Render(name), tui.ValueStyle.Render(value)
		}
		fmt.Fprintf(out, "  %s = %s\n", name, value)
	}
	return nil
}
