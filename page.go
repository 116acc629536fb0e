package jdoc2md

import (
	"context"
	"path"
	"sort"
	"strings"
)

// RawPage is one documentation page as unpacked from the bundle.
// Path is slash-separated and relative to the bundle root; it is the
// page's identity.
type RawPage struct {
	Path string
	HTML string
}

// PageSet is an immutable, ordered collection of pages.
// Pages are ordered lexically by path, which fixes the traversal order
// that deduplication relies on regardless of how the pages were loaded.
type PageSet struct {
	pages []RawPage
	index map[string]int
}

// NewPageSet builds a PageSet from the given pages.
// Returns EINVALID if a path is empty, escapes the bundle root, or appears twice.
func NewPageSet(pages ...RawPage) (*PageSet, error) {
	sorted := make([]RawPage, 0, len(pages))
	for _, p := range pages {
		clean, err := CleanPagePath(p.Path)
		if err != nil {
			return nil, err
		}
		sorted = append(sorted, RawPage{Path: clean, HTML: p.HTML})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	index := make(map[string]int, len(sorted))
	for i, p := range sorted {
		if _, ok := index[p.Path]; ok {
			return nil, Errorf(EINVALID, "duplicate page path %q", p.Path)
		}
		index[p.Path] = i
	}

	return &PageSet{pages: sorted, index: index}, nil
}

// Len returns the number of pages in the set.
func (s *PageSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pages)
}

// Pages returns a copy of the pages in traversal order.
func (s *PageSet) Pages() []RawPage {
	if s == nil {
		return nil
	}
	out := make([]RawPage, len(s.pages))
	copy(out, s.pages)
	return out
}

// Get returns the page at the given path.
func (s *PageSet) Get(p string) (RawPage, bool) {
	if s == nil {
		return RawPage{}, false
	}
	i, ok := s.index[p]
	if !ok {
		return RawPage{}, false
	}
	return s.pages[i], true
}

// CleanPagePath normalizes a bundle-relative page path to slash form.
// Returns EINVALID for empty paths and paths escaping the bundle root.
func CleanPagePath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	if strings.TrimSpace(p) == "" {
		return "", Errorf(EINVALID, "page path required")
	}
	if strings.HasPrefix(p, "/") {
		return "", Errorf(EINVALID, "page path %q must be relative", p)
	}
	clean := path.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", Errorf(EINVALID, "page path %q escapes bundle root", p)
	}
	return clean, nil
}

// PageMatcher decides which files of a bundle are loaded as pages.
type PageMatcher interface {
	// Match reports whether the slash-separated, bundle-relative path
	// should be loaded.
	Match(path string) bool
}

// PageFilter holds glob patterns selecting bundle files.
// A path is loaded when it matches at least one Include pattern and no
// Exclude pattern. Patterns are matched against both the full relative
// path and the base name.
type PageFilter struct {
	Include []string
	Exclude []string
}

// DefaultPageFilter returns the filter that loads HTML pages and skips the
// generator's index, overview, and cross-reference pages.
func DefaultPageFilter() PageFilter {
	return PageFilter{
		Include: []string{"**/*.html"},
		Exclude: []string{
			"index*",
			"overview*",
			"allclasses*",
			"allpackages*",
			"constant-values*",
			"deprecated-list*",
			"help*",
			"search*",
			"serialized-form*",
			"package-*",
			"module-*",
			"**/class-use/**",
			"**/doc-files/**",
			"legal/**",
			"src-html/**",
		},
	}
}

// PageLoader materializes a PageSet from an unpacked or packed bundle.
type PageLoader interface {
	LoadPages(ctx context.Context) (*PageSet, error)
}
