package mock

import "github.com/fwojciec/jdoc2md"

var _ jdoc2md.Converter = (*Converter)(nil)

// Converter is a mock implementation of jdoc2md.Converter.
type Converter struct {
	ConvertFn func(html string, opts jdoc2md.ConvertOptions) (string, error)
}

func (c *Converter) Convert(html string, opts jdoc2md.ConvertOptions) (string, error) {
	return c.ConvertFn(html, opts)
}

var _ jdoc2md.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of jdoc2md.Renderer.
type Renderer struct {
	RenderFn func(doc *jdoc2md.ParsedDoc) (string, error)
}

func (r *Renderer) Render(doc *jdoc2md.ParsedDoc) (string, error) {
	return r.RenderFn(doc)
}
