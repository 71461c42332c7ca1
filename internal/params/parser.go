package params

import (
	"fmt"
	"strings"

	"github.com/vvka-141/buildmeta/internal/xmlpath"
)

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
//
// Example:
//
//	props, err := ParseKeyValuePairs([]string{"build.host=ci-01", "build.branch=main"})
//	// Returns: map[string]string{"build.host": "ci-01", "build.branch": "main"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("property %q is not in key=value format (example: --property build.host=ci-01)", pair)
		}

		if key == "" {
			return nil, fmt.Errorf("property has empty key: %q", pair)
		}
		if err := xmlpath.CheckName(key); err != nil {
			return nil, fmt.Errorf("property %q: %w", pair, err)
		}

		result[key] = value
	}

	return result, nil
}
