// Package metadata builds the list of managed properties for a descriptor
// update.
//
// # Properties
//
// Collect returns the specs in a fixed order:
//   - build number: incremented, or replaced by a forced value
//   - build date: the clock formatted with a strftime pattern (default %d.%m.%Y)
//   - build year: the clock's four digit year, unless disabled
//   - extra properties: replaced verbatim, sorted by name
//
// The order matters because properties missing from the descriptor are
// appended in it.
//
// # Example
//
//	opts := metadata.DefaultOptions()
//	opts.Extra = map[string]string{"build.host": "ci-01"}
//	specs, err := metadata.Collect(opts, time.Now())
package metadata
