package updater

import (
	"bufio"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/vvka-141/buildmeta/internal/xmlevent"
	"github.com/vvka-141/buildmeta/internal/xmlpath"
	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Document loads the whole descriptor into an element tree, edits it and
// writes the tree back. Comments and attribute order survive; whitespace
// between attributes and quoting style do not.
type Document struct {
	path xmlpath.Path
}

// NewDocument creates a document updater for the element at path.
func NewDocument(path xmlpath.Path) *Document {
	return &Document{path: path}
}

func (d *Document) Kind() buildmeta.UpdaterKind {
	return buildmeta.UpdaterDocument
}

func (d *Document) Rewrite(src io.Reader, dst io.Writer, specs []buildmeta.PropertySpec) (*buildmeta.UpdateResult, error) {
	if err := buildmeta.ValidateSpecs(specs); err != nil {
		return nil, err
	}
	if d.path.IsRoot() {
		return nil, &buildmeta.DocumentError{
			Kind:    buildmeta.ErrInvalidPath,
			Message: "the root path does not name an element",
			Hint:    "Use an element path such as /project/properties.",
		}
	}

	in := bufio.NewReader(src)
	bom := xmlevent.SkipBOM(in)

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(in); err != nil {
		return nil, &buildmeta.DocumentError{
			Kind:    buildmeta.ErrParse,
			Message: strings.TrimPrefix(err.Error(), "xml: "),
			Hint:    "Verify the document is well-formed UTF-8 XML.",
		}
	}
	root := doc.Root()
	if root == nil {
		return nil, &buildmeta.DocumentError{
			Kind:    buildmeta.ErrParse,
			Message: "document has no root element",
			Hint:    "The descriptor must contain a single root element such as <project>.",
		}
	}

	result := &buildmeta.UpdateResult{}
	target, created := d.locate(root)
	if target != nil {
		if err := apply(target, specs, result); err != nil {
			return nil, err
		}
		result.TargetCreated = created
	}

	if err := write(dst, bom, doc); err != nil {
		return nil, &buildmeta.DocumentError{
			Kind:    buildmeta.ErrWrite,
			Message: "cannot write transformed document",
			Hint:    "Check free disk space and permissions of the target directory.",
			Err:     err,
		}
	}
	return result, nil
}

// write serializes doc to dst, restoring a byte-order mark the source had.
func write(dst io.Writer, bom []byte, doc *etree.Document) error {
	if len(bom) > 0 {
		if _, err := dst.Write(bom); err != nil {
			return err
		}
	}
	_, err := doc.WriteTo(dst)
	return err
}

// locate follows the path from the root element, taking the first child
// with a matching name at each level. The last segment is created when its
// parent exists.
func (d *Document) locate(root *etree.Element) (*etree.Element, bool) {
	if root.FullTag() != d.path.Segment(0) {
		return nil, false
	}
	el := root
	for i := 1; i < d.path.Len(); i++ {
		next := childNamed(el, d.path.Segment(i))
		if next == nil {
			if i < d.path.Len()-1 {
				return nil, false
			}
			return el.CreateElement(d.path.Segment(i)), true
		}
		el = next
	}
	return el, false
}

func apply(target *etree.Element, specs []buildmeta.PropertySpec, result *buildmeta.UpdateResult) error {
	for _, spec := range specs {
		outcome := buildmeta.PropertyOutcome{Name: spec.Name}
		children := childrenNamed(target, spec.Name)

		if len(children) == 0 {
			value, err := spec.Compute("", false)
			if err != nil {
				return err
			}
			target.CreateElement(spec.Name).SetText(value)
			outcome.Value = value
		}

		for i, child := range children {
			current := textOf(child)
			value, err := spec.Compute(current, true)
			if err != nil {
				return err
			}
			if i == 0 {
				outcome.Present = true
				outcome.Previous = strings.TrimSpace(current)
			}
			outcome.Value = value
			for len(child.Child) > 0 {
				child.RemoveChildAt(0)
			}
			child.SetText(value)
		}

		result.Properties = append(result.Properties, outcome)
	}
	return nil
}

func childNamed(el *etree.Element, name string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.FullTag() == name {
			return c
		}
	}
	return nil
}

func childrenNamed(el *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.FullTag() == name {
			out = append(out, c)
		}
	}
	return out
}

// textOf concatenates all character data below el.
func textOf(el *etree.Element) string {
	var b strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			b.WriteString(textOf(t))
		}
	}
	return b.String()
}
