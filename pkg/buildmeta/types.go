package buildmeta

import (
	"errors"
	"fmt"
)

// UpdateConfig contains all parameters needed for an update operation.
type UpdateConfig struct {
	// Descriptor is the path of the XML file to update
	Descriptor string

	// ElementPath is the absolute path of the element whose children are managed
	ElementPath string

	// Updater selects the implementation; empty means streaming
	Updater string

	// Properties are the managed children in declaration order
	Properties []PropertySpec

	// DryRun computes the result without touching the filesystem
	DryRun bool

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the UpdateConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *UpdateConfig) Validate() error {
	var errs []error

	if c.Descriptor == "" {
		errs = append(errs, fmt.Errorf("Descriptor is required: %w", ErrInvalidConfig))
	}

	if c.ElementPath == "" {
		errs = append(errs, fmt.Errorf("ElementPath is required: %w", ErrInvalidConfig))
	}

	if err := ValidateSpecs(c.Properties); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Property is the name and trimmed text of one child of the managed element.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UpdateReport describes a finished update.
type UpdateReport struct {
	Descriptor  string        `json:"descriptor"`
	ElementPath string        `json:"path"`
	Updater     UpdaterKind   `json:"updater"`
	BackupPath  string        `json:"backup,omitempty"`
	DryRun      bool          `json:"dryRun"`
	Result      *UpdateResult `json:"result"`

	// Before and After hold the full document for dry runs only.
	Before []byte `json:"-"`
	After  []byte `json:"-"`
}

// Snapshot lists the current children of the managed element.
type Snapshot struct {
	Descriptor  string     `json:"descriptor"`
	ElementPath string     `json:"path"`
	Found       bool       `json:"found"`
	Properties  []Property `json:"properties"`
}

// Lookup returns the value of the child named name.
func (s *Snapshot) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
