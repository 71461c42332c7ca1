// Package transform implements the streaming rewrite of one element of an
// XML document.
//
// The Transformer copies every event of the source verbatim until the
// element at the configured path opens, hands the interior of that element
// to the Injector, and continues copying afterwards. If the element never
// occurs, it is synthesized just before its parent closes, so that every
// document containing the parent ends up with the managed properties.
package transform

import (
	"io"

	"github.com/vvka-141/buildmeta/internal/xmlevent"
	"github.com/vvka-141/buildmeta/internal/xmlpath"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Transformer rewrites the element at a fixed path. A Transformer keeps no
// state between runs.
type Transformer struct {
	path     xmlpath.Path
	parent   xmlpath.Path
	injector *Injector
}

// NewTransformer creates a transformer for the element at path.
// The root path "/" does not name an element and is rejected.
func NewTransformer(path xmlpath.Path, injector *Injector) (*Transformer, error) {
	if path.IsRoot() {
		return nil, &buildmeta.DocumentError{
			Kind:    buildmeta.ErrInvalidPath,
			Message: "the root path does not name an element",
			Hint:    "Use an element path such as /project/properties.",
		}
	}
	parent, _ := path.Parent()
	return &Transformer{path: path, parent: parent, injector: injector}, nil
}

// Transform parses src and writes the rewritten document to dst.
func (t *Transformer) Transform(src io.Reader, dst io.Writer) (*buildmeta.UpdateResult, error) {
	sink := xmlevent.NewWriter(dst)
	result, err := t.Run(xmlevent.NewReader(src), sink)
	if err != nil {
		return nil, err
	}
	if err := sink.Flush(); err != nil {
		return nil, err
	}
	return result, nil
}

// run holds the state of one pass over a document.
type run struct {
	*Transformer
	events  xmlevent.Source
	sink    *xmlevent.Writer
	target  *xmlpath.Matcher
	parent  *xmlpath.Matcher // nil for single-segment paths
	held    []byte           // whitespace not yet written
	layout  layout           // of the current parent element
	result  *buildmeta.UpdateResult
	expand  bool // the current parent was self-closing and has been opened
	handled bool
}

// Run copies events to sink, rewriting the target element. The caller
// flushes sink. The returned result has no properties when neither the
// target nor its parent occur in the document.
func (t *Transformer) Run(events xmlevent.Source, sink *xmlevent.Writer) (*buildmeta.UpdateResult, error) {
	r := &run{
		Transformer: t,
		events:      events,
		sink:        sink,
		target:      xmlpath.NewMatcher(t.path),
	}
	if t.path.Len() > 1 {
		r.parent = xmlpath.NewMatcher(t.parent)
	}

	for {
		ev, err := events.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.handle(ev); err != nil {
			return nil, err
		}
	}

	r.flushHeld()
	if err := sink.Err(); err != nil {
		return nil, err
	}
	if r.result == nil {
		return &buildmeta.UpdateResult{}, nil
	}
	return r.result, nil
}

func (r *run) handle(ev xmlevent.Event) error {
	if ev.IsWhitespace() {
		r.held = append(r.held, ev.Raw...)
		return nil
	}

	inParent := r.parent != nil && r.parent.Matches()

	switch ev.Kind {
	case xmlevent.StartElement:
		if inParent {
			r.layout.sibling, r.layout.hasSibling = string(r.held), true
		}

	case xmlevent.EndElement:
		if inParent && !r.handled {
			r.layout.closing = string(r.held)
			if err := r.synthesize(); err != nil {
				return err
			}
		}
	}

	r.feed(ev)

	if ev.Kind == xmlevent.StartElement {
		if r.target.Matches() {
			return r.enterTarget(ev)
		}
		if r.parent != nil && r.parent.Matches() {
			r.enterParent(ev)
			return nil
		}
	}

	r.flushHeld()
	if ev.Kind == xmlevent.EndElement && len(ev.Raw) == 0 && r.expand && inParent {
		r.expand = false
		return r.sink.WriteRaw(closeTag(nil, ev.Name))
	}
	return r.sink.Write(ev)
}

func (r *run) feed(ev xmlevent.Event) {
	r.target.HandleEvent(ev)
	if r.parent != nil {
		r.parent.HandleEvent(ev)
	}
}

// enterParent writes the start tag of the parent, opening it when it is
// self-closing so that the target can be synthesized inside.
func (r *run) enterParent(ev xmlevent.Event) {
	open := string(r.held)
	r.flushHeld()
	r.layout = layout{open: open, level: r.parent.Depth()}
	r.expand = ev.SelfClosing && !r.handled
	r.sink.WriteRaw(openTag(ev.Raw, r.expand))
}

func (r *run) enterTarget(ev xmlevent.Event) error {
	open := string(r.held)
	r.flushHeld()
	r.sink.WriteRaw(openTag(ev.Raw, ev.SelfClosing))

	result, err := r.injector.ProcessInterior(r.events, r.sink, Target{
		Name:        ev.Name,
		Open:        open,
		Level:       r.target.Depth(),
		SelfClosing: ev.SelfClosing,
	})
	if err != nil {
		return err
	}

	// The injector consumed the interior and the end tag. The interior is
	// balanced, so one end event brings both matchers back in step.
	r.feed(xmlevent.End(ev.Name))
	r.record(result)
	return nil
}

func (r *run) synthesize() error {
	result, err := r.injector.synthesize(r.sink, r.path.Last(), r.layout)
	if err != nil {
		return err
	}
	r.record(result)
	return nil
}

// record keeps the outcome of the first occurrence of the target.
func (r *run) record(result *buildmeta.UpdateResult) {
	r.handled = true
	if r.result == nil {
		r.result = result
	}
}

func (r *run) flushHeld() {
	if len(r.held) > 0 {
		r.sink.WriteRaw(r.held)
		r.held = r.held[:0]
	}
}
