package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/jdoc2md"
)

// endMarker matches the comment the commonmark plugin emits to separate
// adjacent lists, together with its surrounding blank lines.
var endMarker = regexp.MustCompile(`\n*<!--THE END-->\n*`)

// Ensure Converter implements jdoc2md.Converter at compile time.
var _ jdoc2md.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown.
// The fragment is normalized first: headings are shifted, definition lists
// and summary grids are rebuilt as plain markup, links are rewritten and
// elements without a Markdown mapping are reduced to their text.
func (c *Converter) Convert(html string, opts jdoc2md.ConvertOptions) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", jdoc2md.Errorf(jdoc2md.EINVALID, "empty HTML input")
	}

	normalized, err := normalize(html, opts)
	if err != nil {
		return "", jdoc2md.Errorf(jdoc2md.EPARSE, "failed to parse HTML: %v", err)
	}

	result, err := c.conv.ConvertString(normalized)
	if err != nil {
		return "", err
	}

	result = endMarker.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result), nil
}
