// Package xmlevent turns an XML byte stream into a forward-only sequence of
// parse events that remember the exact source bytes of every token, and
// writes such events back out.
//
// Copying Event.Raw for every event reproduces the input byte-for-byte, so a
// transform only pays for the parts it actually changes: comments,
// whitespace, attribute order and quoting all survive untouched.
package xmlevent

import (
	"bytes"
	"encoding/xml"
)

// Kind classifies an event.
type Kind int

const (
	StartDocument Kind = iota
	EndDocument
	StartElement
	EndElement
	CharData
	// Other covers comments, processing instructions, directives and a
	// leading byte-order mark.
	Other
)

func (k Kind) String() string {
	switch k {
	case StartDocument:
		return "StartDocument"
	case EndDocument:
		return "EndDocument"
	case StartElement:
		return "StartElement"
	case EndElement:
		return "EndElement"
	case CharData:
		return "CharData"
	case Other:
		return "Other"
	}
	return "Unknown"
}

// Event is one parse event.
type Event struct {
	Kind Kind

	// Name is the qualified element name ("prefix:local" or "local") for
	// StartElement and EndElement.
	Name string

	// Text is the decoded character data for CharData.
	Text string

	// Raw holds the exact source bytes of the token. The EndElement paired
	// with a self-closing start has no bytes of its own.
	Raw []byte

	// SelfClosing marks a StartElement written as <name/>.
	SelfClosing bool
}

// IsWhitespace reports whether ev is character data made of XML whitespace
// only. CDATA sections never count as whitespace.
func (ev Event) IsWhitespace() bool {
	if ev.Kind != CharData || len(ev.Raw) == 0 {
		return false
	}
	return len(bytes.TrimLeft(ev.Raw, " \t\r\n")) == 0
}

// Start builds a StartElement event with no source bytes, for tests and
// synthesized streams.
func Start(name string) Event {
	return Event{Kind: StartElement, Name: name}
}

// End builds an EndElement event with no source bytes.
func End(name string) Event {
	return Event{Kind: EndElement, Name: name}
}

// QualifiedName renders an xml.Name as "prefix:local". RawToken leaves the
// prefix in Space without resolving it to a namespace URI.
func QualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
