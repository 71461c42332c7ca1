// Package xmlpath matches a stream of XML events against one absolute
// element path such as /project/properties.
package xmlpath

import (
	"fmt"
	"strings"

	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Separator divides path segments.
const Separator = "/"

// Path is an absolute sequence of qualified element names. The zero Path and
// the path "/" denote the document root.
type Path struct {
	segments []string
}

// Parse parses an absolute path. Each segment is a name or prefix:name.
// Predicates, wildcards and relative paths are rejected with buildmeta.ErrInvalidPath.
func Parse(s string) (Path, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Path{}, invalid(s, "path is blank")
	}
	if !strings.HasPrefix(trimmed, Separator) {
		return Path{}, invalid(s, "relative paths are not allowed, use an absolute path such as /project/properties")
	}
	if trimmed == Separator {
		return Path{}, nil
	}

	parts := strings.Split(trimmed[1:], Separator)
	for i, part := range parts {
		if err := checkSegment(part); err != nil {
			return Path{}, invalid(s, fmt.Sprintf("segment %d: %s", i+1, err))
		}
	}
	return Path{segments: parts}, nil
}

// MustParse is like Parse but panics on error. For constants and tests.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// CheckName reports whether name can be used as an element name in a path
// or as a managed property.
func CheckName(name string) error {
	if err := checkSegment(name); err != nil {
		return fmt.Errorf("%w: %w", buildmeta.ErrInvalidPath, err)
	}
	return nil
}

func checkSegment(seg string) error {
	if seg == "" {
		return fmt.Errorf("empty segment")
	}
	if strings.ContainsAny(seg, " \t\r\n") {
		return fmt.Errorf("%q contains whitespace", seg)
	}
	if strings.ContainsAny(seg, "@[]*()=") {
		return fmt.Errorf("%q uses XPath syntax, only plain element names are supported", seg)
	}
	prefix, local, found := strings.Cut(seg, ":")
	if found {
		if prefix == "" || local == "" {
			return fmt.Errorf("%q has an empty prefix or local name", seg)
		}
		if strings.Contains(local, ":") {
			return fmt.Errorf("%q has more than one prefix", seg)
		}
	}
	return nil
}

func invalid(s, reason string) error {
	return fmt.Errorf("%q: %s: %w", s, reason, buildmeta.ErrInvalidPath)
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// IsRoot reports whether p denotes the document root.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Segment returns the i-th qualified name.
func (p Path) Segment(i int) string {
	return p.segments[i]
}

// Segments returns a copy of the qualified names.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Last returns the final segment, empty for the root path.
func (p Path) Last() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Parent returns the path without its last segment. The root has no parent.
func (p Path) Parent() (Path, bool) {
	if len(p.segments) == 0 {
		return Path{}, false
	}
	return Path{segments: p.segments[:len(p.segments)-1]}, true
}

func (p Path) String() string {
	return Separator + strings.Join(p.segments, Separator)
}
