package buildmeta

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ComputeFunc derives the new text of a managed element.
// present is false when the element does not exist in the source document;
// current is then empty.
type ComputeFunc func(current string, present bool) (string, error)

// PropertySpec declares one managed child element and how its value is derived.
type PropertySpec struct {
	// Name is the qualified element name, e.g. "build.number.current" or "ns:buildDate".
	Name string

	// Compute returns the new text for the element.
	Compute ComputeFunc
}

// Replace returns a spec that always writes value, whatever the element held before.
func Replace(name, value string) PropertySpec {
	return PropertySpec{
		Name: name,
		Compute: func(string, bool) (string, error) {
			return value, nil
		},
	}
}

// Increment returns a spec for a base-10 counter.
// A missing or blank element starts at InitialCounterValue. A value that does
// not parse, or that is already the largest int64, fails with ErrNotANumber
// rather than being reset.
func Increment(name string) PropertySpec {
	return PropertySpec{
		Name: name,
		Compute: func(current string, present bool) (string, error) {
			text := strings.TrimSpace(current)
			if !present || text == "" {
				return InitialCounterValue, nil
			}
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return "", &DocumentError{
					Kind:    ErrNotANumber,
					Message: fmt.Sprintf("property <%s> holds %q", name, current),
					Hint:    "The counter must be a base-10 integer. Fix the value by hand; it is never reset automatically.",
					Err:     err,
				}
			}
			if n == math.MaxInt64 {
				return "", &DocumentError{
					Kind:    ErrNotANumber,
					Message: fmt.Sprintf("property <%s> holds %q, which cannot be incremented", name, current),
					Hint:    "The counter has reached the largest supported value. Reset it by hand.",
				}
			}
			return strconv.FormatInt(n+1, 10), nil
		},
	}
}

// ValidateSpecs checks that specs are usable: non-empty names, no duplicates,
// a compute function on each.
func ValidateSpecs(specs []PropertySpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("at least one property is required: %w", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		if strings.TrimSpace(spec.Name) == "" {
			return fmt.Errorf("property %d has an empty name: %w", i+1, ErrInvalidConfig)
		}
		if strings.ContainsAny(spec.Name, " \t\r\n<>/&\"'") {
			return fmt.Errorf("property name %q is not a valid element name: %w", spec.Name, ErrInvalidConfig)
		}
		if spec.Compute == nil {
			return fmt.Errorf("property %q has no compute function: %w", spec.Name, ErrInvalidConfig)
		}
		if seen[spec.Name] {
			return fmt.Errorf("property %q is declared twice: %w", spec.Name, ErrInvalidConfig)
		}
		seen[spec.Name] = true
	}
	return nil
}
