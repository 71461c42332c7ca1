package metadata

import (
	"sort"
	"strconv"
	"strings"
)

// Validate checks opts before any property is computed:
//   - build number and date property names are set
//   - the date pattern is set
//   - a forced build number is a base-10 integer
//   - no property name is used twice, extras included
func Validate(opts Options) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	if strings.TrimSpace(opts.BuildNumberProperty) == "" {
		result.AddError("build number property name is required")
	}
	if strings.TrimSpace(opts.BuildDateProperty) == "" {
		result.AddError("build date property name is required")
	}
	if strings.TrimSpace(opts.DatePattern) == "" {
		result.AddError("date pattern cannot be empty.\n" +
			"  Use strftime directives, e.g. \"%%d.%%m.%%Y\" or \"%%Y-%%m-%%dT%%H:%%M:%%S\"")
	}

	if n := strings.TrimSpace(opts.BuildNumber); n != "" {
		if _, err := strconv.ParseInt(n, 10, 64); err != nil {
			result.AddError("forced build number %q is not a base-10 integer", opts.BuildNumber)
		}
	}

	seen := map[string]string{}
	claim := func(name, role string) {
		if name == "" {
			return
		}
		if prev, ok := seen[name]; ok {
			result.AddError("property %q is used for both %s and %s", name, prev, role)
			return
		}
		seen[name] = role
	}
	claim(opts.BuildNumberProperty, "the build number")
	claim(opts.BuildDateProperty, "the build date")
	claim(opts.BuildYearProperty, "the build year")
	for _, key := range sortedKeys(opts.Extra) {
		if strings.TrimSpace(key) == "" {
			result.AddError("extra property with an empty name")
			continue
		}
		claim(key, "an extra property")
	}

	return result
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
