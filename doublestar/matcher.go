// Package doublestar matches bundle paths against glob patterns.
package doublestar

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/jdoc2md"
)

// Ensure Matcher implements jdoc2md.PageMatcher at compile time.
var _ jdoc2md.PageMatcher = (*Matcher)(nil)

// Matcher selects bundle paths with doublestar glob patterns.
type Matcher struct {
	include []string
	exclude []string
}

// NewMatcher creates a Matcher from a filter.
// Returns EINVALID if any pattern is malformed.
func NewMatcher(filter jdoc2md.PageFilter) (*Matcher, error) {
	for _, pattern := range append(append([]string{}, filter.Include...), filter.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, jdoc2md.Errorf(jdoc2md.EINVALID, "invalid glob pattern %q", pattern)
		}
	}
	return &Matcher{include: filter.Include, exclude: filter.Exclude}, nil
}

// Match reports whether p matches at least one include pattern (or there
// are none) and no exclude pattern.
func (m *Matcher) Match(p string) bool {
	if len(m.include) > 0 && !matchAny(m.include, p) {
		return false
	}
	return !matchAny(m.exclude, p)
}

// matchAny checks the full path against every pattern, and the base name
// against patterns without a directory part.
func matchAny(patterns []string, p string) bool {
	base := path.Base(p)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}
