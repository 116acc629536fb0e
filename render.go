package jdoc2md

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// LinkFunc rewrites a link target found in a fragment.
// Returning keep=false drops the link and leaves its text in place.
type LinkFunc func(href string) (target string, keep bool)

// ConvertOptions configures a single conversion.
type ConvertOptions struct {
	// HeadingOffset shifts every heading down by the given number of
	// levels. Levels past the deepest Markdown heading collapse to it.
	HeadingOffset int

	// RewriteLink, if set, is applied to every anchor target.
	RewriteLink LinkFunc
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	// The input should be a cleaned fragment (e.g., from an Extractor).
	// Elements without a Markdown mapping degrade to their plain text.
	Convert(html string, opts ConvertOptions) (string, error)
}

// Renderer renders a document as a self-contained Markdown file.
type Renderer interface {
	Render(doc *ParsedDoc) (string, error)
}

// LinkIndex maps bundle pages to the output files that hold their
// documentation, so cross-references survive the restructuring.
// It must not be modified once rendering starts.
type LinkIndex struct {
	targets map[string]string // source page → output path
}

// NewLinkIndex returns an index over the given documents.
// Dropped duplicates should be included: they resolve to the output file
// of the document that was kept under the same name.
func NewLinkIndex(docs ...*ParsedDoc) *LinkIndex {
	idx := &LinkIndex{targets: make(map[string]string, len(docs))}
	for _, doc := range docs {
		idx.targets[doc.SourcePage] = doc.OutputPath()
	}
	return idx
}

// Resolve rewrites href, found on doc's source page, for use in doc's
// output file. Links to indexed pages become relative .md paths; links to
// other bundle pages are dropped; external and fragment-only links pass
// through unchanged.
func (idx *LinkIndex) Resolve(doc *ParsedDoc, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return href, true
	}

	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return href, true
	}

	target := path.Join(path.Dir(doc.SourcePage), u.Path)
	if target == ".." || strings.HasPrefix(target, "../") {
		return href, true
	}

	out, ok := idx.targets[target]
	if !ok {
		if strings.HasSuffix(strings.ToLower(target), ".html") {
			return "", false
		}
		return href, true
	}

	rel, err := filepath.Rel(filepath.FromSlash(path.Dir(doc.OutputPath())), filepath.FromSlash(out))
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if u.Fragment != "" {
		rel += "#" + u.EscapedFragment()
	}
	return rel, true
}

// MarkdownRenderer renders documents by converting their fragment and
// prefixing it with a heading naming the qualified name.
type MarkdownRenderer struct {
	Converter Converter

	// Links, if set, normalizes cross-references between pages.
	Links *LinkIndex
}

// Render converts doc to Markdown.
func (r *MarkdownRenderer) Render(doc *ParsedDoc) (string, error) {
	if strings.TrimSpace(doc.ContentHTML) == "" {
		return FormatMarkdown(doc.QualifiedName, ""), nil
	}

	opts := ConvertOptions{HeadingOffset: 1}
	if r.Links != nil {
		opts.RewriteLink = func(href string) (string, bool) {
			return r.Links.Resolve(doc, href)
		}
	}

	body, err := r.Converter.Convert(doc.ContentHTML, opts)
	if err != nil {
		return "", err
	}
	return FormatMarkdown(doc.QualifiedName, body), nil
}

// FormatMarkdown assembles an output file: a level-one heading with the
// qualified name, a blank line, and the trimmed body.
func FormatMarkdown(qualifiedName, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return "# " + qualifiedName + "\n"
	}
	return "# " + qualifiedName + "\n\n" + body + "\n"
}
