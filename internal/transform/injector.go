package transform

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/buildmeta/internal/xmlevent"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Target describes the matched element whose interior is handed to the
// injector. Its start tag has already been written.
type Target struct {
	Name        string
	Open        string // whitespace that preceded the start tag
	Level       int    // nesting level, the root element is 1
	SelfClosing bool
}

// Injector rewrites the managed children of the target element and appends
// the ones that are missing. It holds no per-document state and can be
// reused.
type Injector struct {
	specs []buildmeta.PropertySpec
	index map[string]int
}

// NewInjector creates an injector managing specs, in declaration order.
func NewInjector(specs ...buildmeta.PropertySpec) *Injector {
	index := make(map[string]int, len(specs))
	for i, s := range specs {
		index[s.Name] = i
	}
	return &Injector{specs: specs, index: index}
}

// pass is the state of one ProcessInterior call.
type pass struct {
	outcomes []buildmeta.PropertyOutcome
	seen     []bool
}

func (in *Injector) newPass() *pass {
	p := &pass{
		outcomes: make([]buildmeta.PropertyOutcome, len(in.specs)),
		seen:     make([]bool, len(in.specs)),
	}
	for i, s := range in.specs {
		p.outcomes[i].Name = s.Name
	}
	return p
}

func (p *pass) result(created bool) *buildmeta.UpdateResult {
	return &buildmeta.UpdateResult{TargetCreated: created, Properties: p.outcomes}
}

// ProcessInterior consumes events up to and including the end tag of target
// and writes the rewritten interior to sink. Children that are not managed
// are copied verbatim. Every occurrence of a managed child gets a new value;
// managed children that never occur are appended before the end tag.
func (in *Injector) ProcessInterior(events xmlevent.Source, sink *xmlevent.Writer, target Target) (*buildmeta.UpdateResult, error) {
	p := in.newPass()
	l := layout{open: target.Open, level: target.Level}

	var held []byte // whitespace directly inside the target, not yet written
	depth := 0

	for {
		ev, err := events.Next()
		if err == io.EOF {
			return nil, unexpectedEnd(target.Name)
		}
		if err != nil {
			return nil, err
		}

		if depth == 0 {
			switch {
			case ev.IsWhitespace():
				held = append(held, ev.Raw...)
				continue

			case ev.Kind == xmlevent.StartElement:
				l.sibling, l.hasSibling = string(held), true
				sink.WriteRaw(held)
				held = held[:0]
				if i, ok := in.index[ev.Name]; ok {
					if err := in.rewrite(events, sink, ev, i, p); err != nil {
						return nil, err
					}
					continue
				}

			case ev.Kind == xmlevent.EndElement:
				l.closing = string(held)
				if err := in.appendMissing(sink, p, l); err != nil {
					return nil, err
				}
				sink.WriteRaw(held)
				sink.WriteRaw(closeTag(ev.Raw, target.Name))
				return p.result(false), sink.Err()
			}
		}

		if len(held) > 0 {
			sink.WriteRaw(held)
			held = held[:0]
		}
		switch ev.Kind {
		case xmlevent.StartElement:
			depth++
		case xmlevent.EndElement:
			depth--
		}
		if err := sink.Write(ev); err != nil {
			return nil, err
		}
	}
}

// rewrite replaces the content of one managed child, keeping its start and
// end tags. Nested markup inside the child is dropped.
func (in *Injector) rewrite(events xmlevent.Source, sink *xmlevent.Writer, start xmlevent.Event, i int, p *pass) error {
	var text strings.Builder
	var end xmlevent.Event
	for depth := 1; depth > 0; {
		ev, err := events.Next()
		if err == io.EOF {
			return unexpectedEnd(start.Name)
		}
		if err != nil {
			return err
		}
		switch ev.Kind {
		case xmlevent.StartElement:
			depth++
		case xmlevent.EndElement:
			depth--
			end = ev
		case xmlevent.CharData:
			text.WriteString(ev.Text)
		}
	}

	current := text.String()
	value, err := in.specs[i].Compute(current, true)
	if err != nil {
		return err
	}
	if !p.seen[i] {
		p.seen[i] = true
		p.outcomes[i].Previous = strings.TrimSpace(current)
		p.outcomes[i].Present = true
	}
	p.outcomes[i].Value = value

	sink.WriteRaw(openTag(start.Raw, start.SelfClosing))
	sink.WriteText(value)
	return sink.WriteRaw(closeTag(end.Raw, start.Name))
}

// appendMissing writes every managed child that has not been seen, in
// declaration order, followed by the closing indentation.
func (in *Injector) appendMissing(sink *xmlevent.Writer, p *pass, l layout) error {
	indent := l.childIndent()
	appended := false
	for i, spec := range in.specs {
		if p.seen[i] {
			continue
		}
		value, err := spec.Compute("", false)
		if err != nil {
			return err
		}
		p.seen[i] = true
		p.outcomes[i].Value = value
		sink.WriteString(indent)
		sink.WriteElement(spec.Name, value)
		appended = true
	}
	if appended {
		sink.WriteString(l.closeIndent())
	}
	return sink.Err()
}

// synthesize writes a complete target element named name, holding every
// managed child with its absent value, at the position described by parent.
func (in *Injector) synthesize(sink *xmlevent.Writer, name string, parent layout) (*buildmeta.UpdateResult, error) {
	p := in.newPass()
	indent := parent.childIndent()
	inner := parent.nested(indent)

	sink.WriteString(indent)
	sink.WriteString("<" + name + ">")
	if err := in.appendMissing(sink, p, inner); err != nil {
		return nil, err
	}
	sink.WriteString("</" + name + ">")
	return p.result(true), sink.Err()
}

func unexpectedEnd(name string) error {
	return &buildmeta.DocumentError{
		Kind:    buildmeta.ErrParse,
		Message: fmt.Sprintf("unexpected end of document inside <%s>", name),
		Hint:    "Check that every opening tag has a matching closing tag.",
	}
}
