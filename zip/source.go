// Package zip loads documentation pages from javadoc jars.
package zip

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/jdoc2md"
	"github.com/klauspost/compress/zip"
)

// Ensure JarSource implements jdoc2md.PageLoader at compile time.
var _ jdoc2md.PageLoader = (*JarSource)(nil)

// JarSource loads pages from a javadoc jar without unpacking it to disk.
type JarSource struct {
	path    string
	matcher jdoc2md.PageMatcher
}

// NewJarSource creates a new JarSource reading the entries of the jar at
// path that the matcher selects.
func NewJarSource(path string, matcher jdoc2md.PageMatcher) *JarSource {
	return &JarSource{path: path, matcher: matcher}
}

// LoadPages reads every selected entry into a PageSet.
func (s *JarSource) LoadPages(ctx context.Context) (*jdoc2md.PageSet, error) {
	r, err := zip.OpenReader(s.path)
	if err != nil {
		return nil, jdoc2md.Errorf(jdoc2md.EINVALID, "open jar %s: %v", s.path, err)
	}
	defer r.Close()

	return LoadPages(ctx, &r.Reader, s.matcher)
}

// LoadPages reads the entries of an open archive that the matcher selects.
// Returns EINVALID if an entry name escapes the archive root.
func LoadPages(ctx context.Context, r *zip.Reader, matcher jdoc2md.PageMatcher) (*jdoc2md.PageSet, error) {
	var pages []jdoc2md.RawPage
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.FileInfo().IsDir() {
			continue
		}

		name, err := jdoc2md.CleanPagePath(f.Name)
		if err != nil {
			return nil, err
		}
		if !matcher.Match(name) {
			continue
		}

		html, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		pages = append(pages, jdoc2md.RawPage{Path: name, HTML: html})
	}

	return jdoc2md.NewPageSet(pages...)
}

func readEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
