package transform

import (
	"io"
	"strings"

	"github.com/vvka-141/buildmeta/internal/xmlevent"
	"github.com/vvka-141/buildmeta/internal/xmlpath"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Inspect reads the direct children of the first element at path without
// writing anything. found is false when the element does not occur. Reading
// stops at the end of that element; the rest of the document is not checked.
func Inspect(src io.Reader, path xmlpath.Path) (props []buildmeta.Property, found bool, err error) {
	events := xmlevent.NewReader(src)
	m := xmlpath.NewMatcher(path)

	for {
		ev, err := events.Next()
		if err == io.EOF {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		m.HandleEvent(ev)
		if ev.Kind == xmlevent.StartElement && m.Matches() {
			props, err := children(events)
			return props, err == nil, err
		}
	}
}

// children collects name and text of each direct child up to the end tag
// of the enclosing element.
func children(events xmlevent.Source) ([]buildmeta.Property, error) {
	props := []buildmeta.Property{}
	var text strings.Builder
	depth := 0
	for {
		ev, err := events.Next()
		if err == io.EOF {
			return nil, unexpectedEnd("element")
		}
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case xmlevent.StartElement:
			if depth == 0 {
				props = append(props, buildmeta.Property{Name: ev.Name})
				text.Reset()
			}
			depth++
		case xmlevent.EndElement:
			if depth == 0 {
				return props, nil
			}
			depth--
			if depth == 0 {
				props[len(props)-1].Value = strings.TrimSpace(text.String())
			}
		case xmlevent.CharData:
			if depth > 0 {
				text.WriteString(ev.Text)
			}
		}
	}
}
