package jdoc2md

import "context"

// OutputFile is a rendered document ready to be written.
type OutputFile struct {
	// Path is slash-separated and relative to the output root.
	Path    string
	Content string
}

// Validate returns an error if the file contains invalid fields.
func (f *OutputFile) Validate() error {
	if f.Path == "" {
		return Errorf(EINVALID, "output file path required")
	}
	return nil
}

// TreeWriter writes output files beneath an output root.
type TreeWriter interface {
	// EnsureRoot creates the output root if needed and verifies that it is
	// a writable directory. A failure here is fatal to a run.
	EnsureRoot() error

	// Write creates missing parent directories and overwrites any existing
	// file at the target path. Writes to the same path are serialized.
	Write(ctx context.Context, file *OutputFile) error
}
