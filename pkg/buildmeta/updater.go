package buildmeta

import "io"

// UpdaterKind names one of the closed set of updater implementations.
type UpdaterKind string

const (
	// UpdaterStreaming rewrites the document in one pass over its parse events,
	// copying untouched bytes verbatim.
	UpdaterStreaming UpdaterKind = "streaming"

	// UpdaterDocument loads the whole document into a tree, edits it and
	// serializes it back.
	UpdaterDocument UpdaterKind = "document"
)

// Updater rewrites a descriptor so that the element at the configured path
// holds the managed properties.
type Updater interface {
	// Kind identifies the implementation.
	Kind() UpdaterKind

	// Rewrite reads the document from src and writes the updated document to dst.
	Rewrite(src io.Reader, dst io.Writer, specs []PropertySpec) (*UpdateResult, error)
}

// PropertyOutcome reports what happened to one managed property.
type PropertyOutcome struct {
	Name     string `json:"name"`
	Previous string `json:"previous,omitempty"`
	Value    string `json:"value"`
	Present  bool   `json:"present"` // element existed in the source document
}

// UpdateResult summarizes one rewrite.
type UpdateResult struct {
	// TargetCreated is true when the managed element itself was missing and
	// has been synthesized inside its parent.
	TargetCreated bool `json:"targetCreated"`

	// Properties lists outcomes in spec declaration order.
	Properties []PropertyOutcome `json:"properties"`
}

// Outcome returns the outcome for name, or false if name was not handled.
func (r *UpdateResult) Outcome(name string) (PropertyOutcome, bool) {
	if r == nil {
		return PropertyOutcome{}, false
	}
	for _, o := range r.Properties {
		if o.Name == name {
			return o, true
		}
	}
	return PropertyOutcome{}, false
}

// Present returns the names of properties that already existed in the source.
func (r *UpdateResult) Present() []string {
	if r == nil {
		return nil
	}
	var names []string
	for _, o := range r.Properties {
		if o.Present {
			names = append(names, o.Name)
		}
	}
	return names
}
