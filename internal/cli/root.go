package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "buildmeta",
	Short: "Stamp build metadata into XML build descriptors",
	Long: `buildmeta writes build metadata (build number, build date, build year and
your own properties) into the children of one element of an XML build
descriptor such as a Maven pom.xml.

The descriptor is rewritten in a single streaming pass: every byte outside the
managed children is copied verbatim, and the original is kept as a backup next
to it before being replaced.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or element path
  20 - Descriptor is not well-formed XML
  21 - Build number property is not a number
  30 - Backup failed (original untouched)
  31 - Original could not be replaced (original intact)
  32 - Atomic move failed (original missing, restore from backup)
  33 - Writing the updated descriptor failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("verbose")
	if flag == nil {
		flag = cmd.InheritedFlags().Lookup("verbose")
	}
	if flag == nil {
		fmt.Fprintln(os.Stderr, "Warning: Failed to get verbose flag")
		return false
	}
	return flag.Value.String() == "true"
}
