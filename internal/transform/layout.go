package transform

import (
	"bytes"
	"strings"
)

const defaultIndentUnit = "  "

// layout collects the whitespace around one element so that appended
// children can be indented like their siblings.
type layout struct {
	open       string // whitespace before the element's own start tag
	level      int    // nesting level of the element, the root element is 1
	sibling    string // whitespace before the last child start tag
	hasSibling bool
	closing    string // whitespace before the end tag
}

// childIndent returns the whitespace to write before each appended child.
func (l layout) childIndent() string {
	switch {
	case l.hasSibling:
		if hasNewline(l.sibling) {
			return lineStart(l.sibling)
		}
		return l.sibling
	case hasNewline(l.closing):
		return lineStart(l.closing) + l.unit(l.closing)
	case hasNewline(l.open):
		return lineStart(l.open) + l.unit(l.open)
	}
	return ""
}

// closeIndent returns the whitespace to write before the end tag after
// children were appended. Held closing whitespace is written by the caller,
// so this is only non-empty for elements that had no whitespace inside.
func (l layout) closeIndent() string {
	if l.closing != "" || l.hasSibling || !hasNewline(l.open) {
		return ""
	}
	return lineStart(l.open)
}

// nested returns the layout of a new child element written at indent.
func (l layout) nested(indent string) layout {
	return layout{open: indent, level: l.level + 1}
}

// unit guesses one indentation step from ws, the indentation of the element
// itself, which holds level-1 steps.
func (l layout) unit(ws string) string {
	tail := ws[strings.LastIndexByte(ws, '\n')+1:]
	if steps := l.level - 1; steps > 0 && tail != "" && len(tail)%steps == 0 {
		u := tail[:len(tail)/steps]
		if strings.Repeat(u, steps) == tail {
			return u
		}
	}
	if strings.Contains(tail, "\t") {
		return "\t"
	}
	return defaultIndentUnit
}

func hasNewline(ws string) bool {
	return strings.IndexByte(ws, '\n') >= 0
}

// lineStart keeps the line break and the indentation of the last line of ws,
// dropping blank lines.
func lineStart(ws string) string {
	i := strings.LastIndexByte(ws, '\n')
	if i < 0 {
		return ws
	}
	if i > 0 && ws[i-1] == '\r' {
		return "\r\n" + ws[i+1:]
	}
	return ws[i:]
}

// openTag turns the raw bytes of a start tag into an opening tag, expanding
// <name/> to <name>.
func openTag(raw []byte, selfClosing bool) []byte {
	if !selfClosing {
		return raw
	}
	trimmed := bytes.TrimRight(bytes.TrimSuffix(raw, []byte("/>")), " \t\r\n")
	out := make([]byte, 0, len(trimmed)+1)
	out = append(out, trimmed...)
	return append(out, '>')
}

// closeTag returns the raw end tag, or a synthesized one for the end event
// of a self-closing element.
func closeTag(raw []byte, name string) []byte {
	if len(raw) > 0 {
		return raw
	}
	return []byte("</" + name + ">")
}
