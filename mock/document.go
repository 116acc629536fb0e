package mock

import "github.com/fwojciec/jdoc2md"

var _ jdoc2md.DocumentTree = (*DocumentTree)(nil)

// DocumentTree is a mock implementation of jdoc2md.DocumentTree.
type DocumentTree struct {
	HasClassDescriptionFn func() bool
	TitleFn               func() string
	PackageNameFn         func() string
	ContentSectionsFn     func() ([]string, error)
}

func (d *DocumentTree) HasClassDescription() bool {
	return d.HasClassDescriptionFn()
}

func (d *DocumentTree) Title() string {
	return d.TitleFn()
}

func (d *DocumentTree) PackageName() string {
	return d.PackageNameFn()
}

func (d *DocumentTree) ContentSections() ([]string, error) {
	return d.ContentSectionsFn()
}

var _ jdoc2md.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of jdoc2md.Extractor.
type Extractor struct {
	ExtractFn func(page jdoc2md.RawPage) (*jdoc2md.ParsedDoc, error)
}

func (e *Extractor) Extract(page jdoc2md.RawPage) (*jdoc2md.ParsedDoc, error) {
	return e.ExtractFn(page)
}
