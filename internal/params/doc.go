// Package params parses user supplied property assignments.
//
// Extra properties reach buildmeta from three places: the extra section of
// buildmeta.yaml, .env formatted property files passed with --property-file,
// and repeated --property flags. Later sources override earlier ones.
//
// # Example Usage
//
//	props, err := params.ParseKeyValuePairs([]string{"build.host=ci-01"})
//	if err != nil {
//	    return fmt.Errorf("invalid property: %w", err)
//	}
//
// Keys must be plain element names: they become child elements of the
// managed element, so whitespace and XPath syntax are rejected.
package params
