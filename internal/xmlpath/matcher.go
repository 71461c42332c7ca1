package xmlpath

import "github.com/vvka-141/buildmeta/internal/xmlevent"

// Matcher tracks whether the current parser position is exactly at a path.
//
// Names alone cannot tell "just opened the target" from "opened a same-named
// element further down", so a depth counter runs alongside the pointer into
// the path: matches holds iff pointer == len(path) && depth == pointer.
//
// Once the pointer has run past the end of the path it moves with every start
// and end tag, whatever the name. Mismatching names below a partial match do
// not move it at all.
type Matcher struct {
	path    []string
	pointer int
	depth   int
	matches bool
}

// NewMatcher creates a matcher for path positioned before the document start.
func NewMatcher(path Path) *Matcher {
	return &Matcher{path: path.segments}
}

// Matches returns the state after the last handled event.
func (m *Matcher) Matches() bool {
	return m.matches
}

// Depth returns the number of open elements seen so far.
func (m *Matcher) Depth() int {
	return m.depth
}

// HandleEvent consumes one event and returns the new match state.
// Character data and other content events leave the state unchanged.
func (m *Matcher) HandleEvent(ev xmlevent.Event) bool {
	switch ev.Kind {
	case xmlevent.StartElement:
		m.depth++
		if m.pointer >= len(m.path) || m.matches {
			m.pointer++
			m.matches = false
		} else if m.path[m.pointer] == ev.Name {
			m.pointer++
			if m.pointer == len(m.path) && m.depth == m.pointer {
				m.matches = true
			}
		}

	case xmlevent.EndElement:
		m.depth--
		if m.pointer >= len(m.path) {
			m.pointer--
			m.matches = m.pointer == len(m.path) && m.depth == m.pointer
		} else if m.pointer > 0 && m.path[m.pointer-1] == ev.Name {
			m.pointer--
			if m.pointer >= len(m.path) {
				m.matches = false
			}
		}

	case xmlevent.StartDocument:
		if len(m.path) == 0 {
			m.matches = true
		}

	case xmlevent.EndDocument:
		m.matches = false
	}

	return m.matches
}
