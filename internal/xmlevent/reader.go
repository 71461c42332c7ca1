package xmlevent

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Source yields events one at a time and returns io.EOF after EndDocument.
type Source interface {
	Next() (Event, error)
}

// captureReader records every byte handed to the decoder so the raw text of
// each token can be cut out by offset. It implements io.ByteReader, which
// makes xml.Decoder read from it directly instead of adding its own buffer.
type captureReader struct {
	r    *bufio.Reader
	buf  []byte // bytes read since offset base
	base int64
	err  error // first non-EOF read error
}

func (c *captureReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		if err != io.EOF && c.err == nil {
			c.err = err
		}
		return b, err
	}
	c.buf = append(c.buf, b)
	return b, nil
}

func (c *captureReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.buf = append(c.buf, p[:n]...)
	if err != nil && err != io.EOF && c.err == nil {
		c.err = err
	}
	return n, err
}

// take returns the bytes between the previous cut and offset and drops them
// from the buffer. Bytes read ahead of offset stay buffered.
func (c *captureReader) take(offset int64) []byte {
	n := int(offset - c.base)
	raw := make([]byte, n)
	copy(raw, c.buf[:n])
	rest := copy(c.buf, c.buf[n:])
	c.buf = c.buf[:rest]
	c.base = offset
	return raw
}

// BOM is the UTF-8 byte-order mark. XML allows it before the prolog.
const BOM = "\xef\xbb\xbf"

// SkipBOM consumes a leading byte-order mark from r and returns it, or nil
// when r does not start with one.
func SkipBOM(r *bufio.Reader) []byte {
	head, err := r.Peek(len(BOM))
	if err != nil || string(head) != BOM {
		return nil
	}
	mark := []byte(BOM)
	_, _ = r.Discard(len(BOM))
	return mark
}

const (
	stateInit = iota
	stateBody
	stateDone
)

// Reader is a pull parser producing events with their source bytes.
// It checks that start and end tags pair up and that there is exactly one
// root element; everything else is left to encoding/xml.
type Reader struct {
	dec      *xml.Decoder
	src      *captureReader
	stack    []string
	rootSeen bool
	bom      []byte // pending byte-order mark, reported as an Other event
	state    int
	err      error
}

// NewReader creates a Reader over r. Only UTF-8 input is supported; a
// leading byte-order mark is passed through as an Other event.
func NewReader(r io.Reader) *Reader {
	src := &captureReader{r: bufio.NewReader(r)}
	return &Reader{
		dec: xml.NewDecoder(src),
		src: src,
	}
}

// Depth returns the number of currently open elements.
func (r *Reader) Depth() int {
	return len(r.stack)
}

// Next returns the next event. The first event is always StartDocument and
// the last EndDocument; io.EOF follows. Parse failures are returned as
// *buildmeta.DocumentError of kind buildmeta.ErrParse and are sticky.
func (r *Reader) Next() (Event, error) {
	switch r.state {
	case stateInit:
		r.state = stateBody
		r.bom = SkipBOM(r.src.r)
		return Event{Kind: StartDocument}, nil
	case stateDone:
		return Event{}, io.EOF
	}
	if r.err != nil {
		return Event{}, r.err
	}
	if r.bom != nil {
		raw := r.bom
		r.bom = nil
		return Event{Kind: Other, Raw: raw}, nil
	}

	tok, err := r.dec.RawToken()
	if err == io.EOF {
		if len(r.stack) > 0 {
			return r.fail(fmt.Sprintf("unexpected end of document, element <%s> is not closed", r.stack[len(r.stack)-1]),
				"Check that every opening tag has a matching closing tag.", nil)
		}
		if !r.rootSeen {
			return r.fail("document has no root element", "The descriptor must contain a single root element such as <project>.", nil)
		}
		r.state = stateDone
		return Event{Kind: EndDocument}, nil
	}
	if err != nil {
		return r.failDecode(err)
	}

	raw := r.src.take(r.dec.InputOffset())

	switch t := tok.(type) {
	case xml.StartElement:
		name := QualifiedName(t.Name)
		if len(r.stack) == 0 && r.rootSeen {
			return r.fail(fmt.Sprintf("second root element <%s>", name), "An XML document has exactly one root element.", nil)
		}
		r.rootSeen = true
		r.stack = append(r.stack, name)
		return Event{Kind: StartElement, Name: name, Raw: raw, SelfClosing: bytes.HasSuffix(raw, []byte("/>"))}, nil

	case xml.EndElement:
		name := QualifiedName(t.Name)
		if len(r.stack) == 0 {
			return r.fail(fmt.Sprintf("unexpected closing tag </%s>", name), "Remove the stray closing tag.", nil)
		}
		open := r.stack[len(r.stack)-1]
		if open != name {
			return r.fail(fmt.Sprintf("element <%s> closed by </%s>", open, name),
				"Check that every opening tag has a matching closing tag.", nil)
		}
		r.stack = r.stack[:len(r.stack)-1]
		return Event{Kind: EndElement, Name: name, Raw: raw}, nil

	case xml.CharData:
		ev := Event{Kind: CharData, Text: string(t), Raw: raw}
		if len(r.stack) == 0 && !ev.IsWhitespace() {
			return r.fail("text outside the root element", "Only comments, processing instructions and whitespace may surround the root element.", nil)
		}
		return ev, nil

	default:
		return Event{Kind: Other, Raw: raw}, nil
	}
}

func (r *Reader) fail(msg, hint string, cause error) (Event, error) {
	line, col := r.dec.InputPos()
	r.err = &buildmeta.DocumentError{
		Line:    line,
		Column:  col,
		Kind:    buildmeta.ErrParse,
		Message: msg,
		Hint:    hint,
		Err:     cause,
	}
	return Event{}, r.err
}

// failDecode converts decoder errors, keeping line numbers when available.
func (r *Reader) failDecode(err error) (Event, error) {
	if r.src.err != nil {
		r.err = fmt.Errorf("failed to read document: %w", r.src.err)
		return Event{}, r.err
	}

	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		r.err = &buildmeta.DocumentError{
			Line:    syntaxErr.Line,
			Kind:    buildmeta.ErrParse,
			Message: syntaxErr.Msg,
			Hint:    "Check that all XML tags are properly closed and attributes are quoted.",
		}
		return Event{}, r.err
	}

	hint := "Verify the document is well-formed XML."
	if strings.Contains(err.Error(), "encoding") {
		hint = "Only UTF-8 documents are supported. Convert the file or change the encoding declaration."
	}
	return r.fail(strings.TrimPrefix(err.Error(), "xml: "), hint, nil)
}
