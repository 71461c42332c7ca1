package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vvka-141/buildmeta/internal/files/filesystem"
	"github.com/vvka-141/buildmeta/internal/logging"
	"github.com/vvka-141/buildmeta/internal/metadata"
	"github.com/vvka-141/buildmeta/internal/preview"
	"github.com/vvka-141/buildmeta/internal/services"
	"github.com/vvka-141/buildmeta/internal/tui"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

var updateCmd = &cobra.Command{
	Use:   "update [project_dir]",
	Short: "Write build metadata into the descriptor",
	Long: `Write build metadata into the children of the managed element.

The build number is incremented (or forced with BUILDMETA_BUILD_NUMBER), the
build date and year are set from the current time, and extra properties are
replaced verbatim. Missing children are appended; a missing managed element is
created inside its parent.

Before the descriptor is replaced it is copied to <name>-backup<ext>.

Configuration is read from buildmeta.yaml and .env in the project directory.
Priority (highest to lowest): flags > BUILDMETA_* env > buildmeta.yaml > defaults

Examples:
  # Update ./pom.xml
  buildmeta update

  # Preview the change without writing
  buildmeta update ./service --dry-run

  # Add extra properties
  buildmeta update -p build.host=ci-01 -p build.branch=main

  # Manage a different element with the document updater
  buildmeta update -f build.xml --path /project/metadata --updater document`,
	Args:              OptionalProjectDir,
	ValidArgsFunction: completeDirectories,
	RunE:              runUpdate,
}

type updateFlagValues struct {
	updater       string
	datePattern   string
	properties    []string
	propertyFiles []string
	dryRun        bool
}

var (
	updateDescFlags descriptorFlags
	updateFlags     updateFlagValues
)

// clock is replaced in tests.
var clock = time.Now

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVarP(&updateDescFlags.file, "file", "f", "", "Descriptor to update, relative to the project directory (default pom.xml)")
	updateCmd.Flags().StringVar(&updateDescFlags.path, "path", "", "Absolute path of the managed element (default /project/properties)")
	updateCmd.Flags().StringVar(&updateFlags.updater, "updater", "", "Updater implementation: streaming or document")
	updateCmd.Flags().StringVar(&updateFlags.datePattern, "date-pattern", "", "strftime pattern for the build date (default %d.%m.%Y)")
	updateCmd.Flags().StringArrayVarP(&updateFlags.properties, "property", "p", nil, "Extra property as name=value (repeatable)")
	updateCmd.Flags().StringArrayVar(&updateFlags.propertyFiles, "property-file", nil, "Load extra properties from a .env formatted file (repeatable)")
	updateCmd.Flags().BoolVar(&updateFlags.dryRun, "dry-run", false, "Show the change as a diff without writing")

	_ = updateCmd.RegisterFlagCompletionFunc("updater", completeUpdaterKinds)
	_ = updateCmd.RegisterFlagCompletionFunc("file", completeDescriptors)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	dir := projectDir(args)
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), verbose)

	s, err := resolveSettings(dir, updateDescFlags, updateFlags, logger)
	if err != nil {
		return err
	}

	specs, err := metadata.Collect(s.Options, clock())
	if err != nil {
		return err
	}

	svc := services.NewUpdateService(filesystem.NewOSFileSystem(), logger)
	report, err := svc.Update(buildmeta.UpdateConfig{
		Descriptor:  s.Descriptor,
		ElementPath: s.ElementPath,
		Updater:     s.Updater,
		Properties:  specs,
		DryRun:      updateFlags.dryRun,
		Verbose:     verbose,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styled := tui.IsStyled(out)
	if report.DryRun {
		diff := preview.Render(string(report.Before), string(report.After), styled)
		if diff == "" {
			fmt.Fprintln(out, "No changes.")
		} else {
			fmt.Fprint(out, diff)
		}
		logger.Info("Dry run: %s was not modified", report.Descriptor)
		return nil
	}

	printReport(out, report, styled)
	return nil
}

// printReport writes a summary of the outcomes of a finished update.
func printReport(out io.Writer, report *buildmeta.UpdateReport, styled bool) {
	if len(report.Result.Properties) == 0 {
		return
	}

	style := func(st lipgloss.Style, s string) string {
		if styled {
			return st.Render(s)
		}
		return s
	}

	fmt.Fprintf(out, "%s Updated %s (%s, %s updater)\n",
		style(tui.SuccessStyle, tui.SymbolCheck), report.Descriptor, report.ElementPath, report.Updater)
	if report.Result.TargetCreated {
		fmt.Fprintf(out, "  created %s\n", report.ElementPath)
	}
	for _, o := range report.Result.Properties {
		previous := "(new)"
		if o.Present {
			previous = o.Previous
		}
		fmt.Fprintf(out, "  %s: %s %s %s\n",
			style(tui.NameStyle, o.Name), previous, tui.SymbolArrowRight, style(tui.ValueStyle, o.Value))
	}
	if report.BackupPath != "" {
		fmt.Fprintf(out, "Backup: %s\n", report.BackupPath)
	}
}
