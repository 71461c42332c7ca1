package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/buildmeta/internal/updater"
)

// completeUpdaterKinds provides shell completion for the --updater flag.
func completeUpdaterKinds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, kind := range updater.Kinds {
		if strings.HasPrefix(string(kind), toComplete) {
			matches = append(matches, string(kind))
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeDescriptors provides shell completion for the --file flag.
func completeDescriptors(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"xml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}
