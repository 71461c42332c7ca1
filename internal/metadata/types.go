package metadata

import (
	"fmt"
	"strings"

	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Options selects the property names and values to collect.
type Options struct {
	// BuildNumberProperty names the counter element.
	BuildNumberProperty string

	// BuildDateProperty names the date element.
	BuildDateProperty string

	// BuildYearProperty names the year element. Empty disables it.
	BuildYearProperty string

	// DatePattern is a strftime pattern for the build date.
	DatePattern string

	// BuildNumber forces the counter to this value instead of incrementing it.
	BuildNumber string

	// Extra holds additional properties written verbatim.
	Extra map[string]string
}

// DefaultOptions returns the property names used by Maven builds.
func DefaultOptions() Options {
	return Options{
		BuildNumberProperty: buildmeta.DefaultBuildNumberProperty,
		BuildDateProperty:   buildmeta.DefaultBuildDateProperty,
		BuildYearProperty:   buildmeta.DefaultBuildYearProperty,
		DatePattern:         buildmeta.DefaultDatePattern,
	}
}

// ValidationResult contains the outcome of options validation.
// If Valid is false, Errors contains human-readable error messages.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// AddError appends an error message to the validation result and marks it as invalid.
func (v *ValidationResult) AddError(format string, args ...interface{}) {
	v.Valid = false
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// HasErrors returns true if the validation result contains errors.
func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// ErrorString returns all validation errors joined with semicolons.
// Returns empty string if no errors.
func (v *ValidationResult) ErrorString() string {
	return strings.Join(v.Errors, "; ")
}
