package buildmeta

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure kinds of a descriptor update.
// Callers distinguish them with errors.Is().
//
// Example usage:
//
//	err := replacer.Replace(pomPath, transform)
//	if errors.Is(err, buildmeta.ErrAtomicMove) {
//	    // original is gone, restore from the backup file
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidPath indicates an element path that is blank, relative or malformed.
	ErrInvalidPath = errors.New("invalid element path")

	// ErrParse indicates the source document is not well-formed XML.
	ErrParse = errors.New("malformed XML document")

	// ErrNotANumber indicates a counter property whose current value is not an integer.
	ErrNotANumber = errors.New("value is not a number")

	// ErrBackup indicates the backup copy of the original could not be created.
	// The original file is untouched.
	ErrBackup = errors.New("backup failed")

	// ErrReplace indicates the original file could not be deleted.
	// The original file is intact and the temporary file is kept for inspection.
	ErrReplace = errors.New("replace failed")

	// ErrAtomicMove indicates the temporary file could not be renamed after the
	// original was deleted. The original no longer exists; use the backup file.
	ErrAtomicMove = errors.New("atomic move failed")

	// ErrWrite indicates an I/O failure while writing the transformed document.
	ErrWrite = errors.New("write failed")
)

// DocumentError is a structured error with location and an actionable hint.
// Kind is one of the sentinel errors above; Err is the underlying cause.
type DocumentError struct {
	FilePath string // Path of the document, empty if not yet known
	Line     int    // Line number (0 if unknown)
	Column   int    // Column number (0 if unknown)
	Kind     error  // Sentinel classifying the failure
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
	Err      error  // Underlying cause, may be nil
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	location := e.FilePath
	if location == "" {
		location = "<input>"
	}
	if e.Line > 0 {
		if e.Column > 0 {
			location = fmt.Sprintf("%s (line %d, col %d)", location, e.Line, e.Column)
		} else {
			location = fmt.Sprintf("%s (line %d)", location, e.Line)
		}
	}

	kind := "error"
	if e.Kind != nil {
		kind = e.Kind.Error()
	}

	msg := fmt.Sprintf("%s in %s: %s", kind, location, e.Message)
	if e.Err != nil && !strings.Contains(e.Message, e.Err.Error()) {
		msg += ": " + e.Err.Error()
	}
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *DocumentError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// WithFile returns err with the file path filled in when err is a
// DocumentError that has no path yet. Other errors are returned unchanged.
func WithFile(err error, path string) error {
	var docErr *DocumentError
	if errors.As(err, &docErr) && docErr.FilePath == "" {
		docErr.FilePath = path
	}
	return err
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrInvalidPath):
		return ExitConfigError
	case errors.Is(err, ErrParse):
		return ExitParseError
	case errors.Is(err, ErrNotANumber):
		return ExitNotANumber
	case errors.Is(err, ErrBackup):
		return ExitBackupFailed
	case errors.Is(err, ErrReplace):
		return ExitReplaceFailed
	case errors.Is(err, ErrAtomicMove):
		return ExitAtomicMoveFailed
	case errors.Is(err, ErrWrite):
		return ExitWriteFailed
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.Contains(errStr, "arg(s), received") {
		return ExitUsageError
	}

	return ExitGeneralError
}
