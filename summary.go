package jdoc2md

import (
	"fmt"
	"io"
)

// PageFailure records why one page or file could not be processed.
type PageFailure struct {
	Page  string
	Stage string // "extract", "render", "write"
	Err   error
}

// RunSummary aggregates per-page outcomes of one run.
type RunSummary struct {
	TotalPages       int
	Extracted        int
	SkippedNonClass  int
	DuplicateContent int
	DuplicateName    int
	RenderFailures   int
	WriteFailures    int
	FilesWritten     int

	// Collisions lists the pages dropped as DUPLICATE_NAME, as
	// "qualified name (page)" in traversal order.
	Collisions []string

	// Failures lists render and write failures.
	Failures []PageFailure
}

// DuplicatesDropped returns the total number of documents dropped by deduplication.
func (s *RunSummary) DuplicatesDropped() int {
	return s.DuplicateContent + s.DuplicateName
}

// Healthy reports whether the run had no naming collisions and no render failures.
func (s *RunSummary) Healthy() bool {
	return s.DuplicateName == 0 && s.RenderFailures == 0
}

// Err returns the fatal condition of a finished run, if any: no extractable
// class page at all, or no file written.
func (s *RunSummary) Err() error {
	if s.Extracted == 0 {
		return Errorf(ENOTFOUND, "no class documentation found in %d pages", s.TotalPages)
	}
	if s.FilesWritten == 0 {
		return Errorf(EINTERNAL, "no files written (%d write failures)", s.WriteFailures)
	}
	return nil
}

// WriteTo prints the summary, one counter per line, followed by collision
// warnings.
func (s *RunSummary) WriteTo(w io.Writer) (int64, error) {
	var total int64
	lines := []string{
		fmt.Sprintf("Total pages:        %d", s.TotalPages),
		fmt.Sprintf("Extracted:          %d", s.Extracted),
		fmt.Sprintf("Skipped (no class): %d", s.SkippedNonClass),
		fmt.Sprintf("Duplicates dropped: %d (content %d, name %d)", s.DuplicatesDropped(), s.DuplicateContent, s.DuplicateName),
		fmt.Sprintf("Render failures:    %d", s.RenderFailures),
		fmt.Sprintf("Write failures:     %d", s.WriteFailures),
		fmt.Sprintf("Files written:      %d", s.FilesWritten),
	}
	for _, c := range s.Collisions {
		lines = append(lines, "warning: naming collision: "+c)
	}
	for _, line := range lines {
		n, err := fmt.Fprintln(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
