package metadata

import (
	"fmt"
	"strings"

	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// formatValidationErrors converts ValidationResult to a user-friendly error.
func formatValidationErrors(result ValidationResult) error {
	if result.Valid {
		return nil
	}

	var msg strings.Builder
	msg.WriteString("invalid property settings:\n")

	for i, err := range result.Errors {
		msg.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err))
	}

	msg.WriteString("\nSee the properties section of buildmeta.yaml or run:\n")
	msg.WriteString("  buildmeta init --force\n")

	return fmt.Errorf("%w: %s", buildmeta.ErrInvalidConfig, msg.String())
}
