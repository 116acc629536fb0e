package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/jdoc2md"
	"github.com/spf13/afero"
)

// Ensure DirSource implements jdoc2md.PageLoader at compile time.
var _ jdoc2md.PageLoader = (*DirSource)(nil)

// DirSource loads pages from an unpacked documentation bundle.
type DirSource struct {
	fs      afero.Fs
	dir     string
	matcher jdoc2md.PageMatcher
}

// NewDirSource creates a new DirSource reading the files below dir that
// the matcher selects.
func NewDirSource(fs afero.Fs, dir string, matcher jdoc2md.PageMatcher) *DirSource {
	return &DirSource{fs: fs, dir: dir, matcher: matcher}
}

// LoadPages reads every selected file into a PageSet.
// Returns ENOTFOUND if dir does not exist.
func (s *DirSource) LoadPages(ctx context.Context) (*jdoc2md.PageSet, error) {
	info, err := s.fs.Stat(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, jdoc2md.Errorf(jdoc2md.ENOTFOUND, "input directory %s not found", s.dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, jdoc2md.Errorf(jdoc2md.EINVALID, "input %s is not a directory", s.dir)
	}

	var pages []jdoc2md.RawPage
	err = afero.Walk(s.fs, s.dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !s.matcher.Match(rel) {
			return nil
		}

		data, err := afero.ReadFile(s.fs, p)
		if err != nil {
			return err
		}
		pages = append(pages, jdoc2md.RawPage{Path: rel, HTML: string(data)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return jdoc2md.NewPageSet(pages...)
}
