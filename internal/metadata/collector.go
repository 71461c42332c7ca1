package metadata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Collect returns the managed properties for a build at now.
func Collect(opts Options, now time.Time) ([]buildmeta.PropertySpec, error) {
	if err := formatValidationErrors(Validate(opts)); err != nil {
		return nil, err
	}

	specs := make([]buildmeta.PropertySpec, 0, 3+len(opts.Extra))

	if n := strings.TrimSpace(opts.BuildNumber); n != "" {
		v, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: forced build number %q: %w", buildmeta.ErrInvalidConfig, opts.BuildNumber, err)
		}
		specs = append(specs, buildmeta.Replace(opts.BuildNumberProperty, strconv.FormatInt(v, 10)))
	} else {
		specs = append(specs, buildmeta.Increment(opts.BuildNumberProperty))
	}

	specs = append(specs, buildmeta.Replace(opts.BuildDateProperty, strftime.Format(opts.DatePattern, now)))

	if opts.BuildYearProperty != "" {
		specs = append(specs, buildmeta.Replace(opts.BuildYearProperty, strftime.Format("%Y", now)))
	}

	for _, key := range sortedKeys(opts.Extra) {
		specs = append(specs, buildmeta.Replace(key, opts.Extra[key]))
	}

	return specs, nil
}
