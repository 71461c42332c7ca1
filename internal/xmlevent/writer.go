package xmlevent

import (
	"bufio"
	"encoding/xml"
	"io"

	"github.com/vvka-141/buildmeta/pkg/buildmeta"
)

// Writer is the sink side of a transform. The first write error is sticky
// and reported as a *buildmeta.DocumentError of kind buildmeta.ErrWrite.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter creates a buffered Writer. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write copies the source bytes of ev.
func (w *Writer) Write(ev Event) error {
	return w.WriteRaw(ev.Raw)
}

// WriteRaw writes p unchanged.
func (w *Writer) WriteRaw(p []byte) error {
	if w.err != nil {
		return w.err
	}
	if _, err := w.w.Write(p); err != nil {
		return w.fail(err)
	}
	return nil
}

// WriteString writes s unchanged.
func (w *Writer) WriteString(s string) error {
	if w.err != nil {
		return w.err
	}
	if _, err := w.w.WriteString(s); err != nil {
		return w.fail(err)
	}
	return nil
}

// WriteText writes s escaped as character data.
func (w *Writer) WriteText(s string) error {
	if w.err != nil {
		return w.err
	}
	if err := xml.EscapeText(w.w, []byte(s)); err != nil {
		return w.fail(err)
	}
	return nil
}

// WriteElement writes <name>text</name> with text escaped.
func (w *Writer) WriteElement(name, text string) error {
	w.WriteString("<" + name + ">")
	w.WriteText(text)
	return w.WriteString("</" + name + ">")
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) fail(err error) error {
	w.err = &buildmeta.DocumentError{
		Kind:    buildmeta.ErrWrite,
		Message: "cannot write transformed document",
		Hint:    "Check free disk space and permissions of the target directory.",
		Err:     err,
	}
	return w.err
}
