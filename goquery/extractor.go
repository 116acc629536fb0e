package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jdoc2md"
)

// Ensure Extractor implements jdoc2md.Extractor.
var _ jdoc2md.Extractor = (*Extractor)(nil)

// Extractor isolates class documentation from doclet pages using the
// CSS selectors of a SelectorTable.
type Extractor struct {
	table jdoc2md.SelectorTable
	hash  jdoc2md.HashFunc
}

// NewExtractor creates a new Extractor.
// The hash function fingerprints the normalized content of each page.
func NewExtractor(table jdoc2md.SelectorTable, hash jdoc2md.HashFunc) *Extractor {
	return &Extractor{table: table, hash: hash}
}

// Extract parses the page and returns its class documentation.
// Returns ENOTCLASS when the page has no documentation region.
func (e *Extractor) Extract(page jdoc2md.RawPage) (*jdoc2md.ParsedDoc, error) {
	doc, err := Parse(page.HTML, e.table)
	if err != nil {
		return nil, jdoc2md.Errorf(jdoc2md.EPARSE, "%s: %v", page.Path, err)
	}
	return jdoc2md.BuildParsedDoc(page.Path, doc, e.hash)
}

// Ensure Document implements jdoc2md.DocumentTree.
var _ jdoc2md.DocumentTree = (*Document)(nil)

// Document is a parsed page with its documentation region located.
type Document struct {
	doc   *goquery.Document
	table jdoc2md.SelectorTable

	// region is nil when no content locator matched.
	region   *goquery.Selection
	sections bool
}

// Parse parses html and locates the documentation region using the
// table's content locators in order.
func Parse(html string, table jdoc2md.SelectorTable) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	d := &Document{doc: doc, table: table}
	for _, loc := range table.Content {
		sel := doc.Find(loc.Selector).First()
		if sel.Length() > 0 {
			d.region = sel
			d.sections = loc.Sections
			break
		}
	}
	return d, nil
}

// HasClassDescription reports whether a content locator matched.
func (d *Document) HasClassDescription() bool {
	return d.region != nil
}

// Title returns the text of the first title locator with text.
func (d *Document) Title() string {
	return d.firstText(d.table.Title)
}

// PackageName returns the text of the first package locator with text.
func (d *Document) PackageName() string {
	return d.firstText(d.table.Package)
}

// ContentSections returns the outer HTML of each kept section of the
// documentation region with boilerplate stripped. The page itself is left
// untouched.
func (d *Document) ContentSections() ([]string, error) {
	if d.region == nil {
		return nil, nil
	}

	region := d.region.Clone()
	for _, selector := range d.table.Strip {
		region.Find(selector).Remove()
	}

	var kept []*goquery.Selection
	if d.sections {
		region.Children().Each(func(_ int, child *goquery.Selection) {
			if hasAnyClass(child, d.table.SectionClasses) && !hasAnyClass(child, d.table.ExcludeClasses) {
				kept = append(kept, child)
			}
		})
	}
	if len(kept) == 0 {
		kept = []*goquery.Selection{region}
	}

	sections := make([]string, 0, len(kept))
	for _, sel := range kept {
		html, err := goquery.OuterHtml(sel)
		if err != nil {
			return nil, err
		}
		sections = append(sections, html)
	}
	return sections, nil
}

func (d *Document) firstText(selectors []string) string {
	for _, selector := range selectors {
		text := strings.TrimSpace(d.doc.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// hasAnyClass checks if the selection's class attribute contains any of
// the given classes.
func hasAnyClass(sel *goquery.Selection, classes []string) bool {
	attr, ok := sel.Attr("class")
	if !ok {
		return false
	}
	for _, have := range strings.Fields(attr) {
		for _, want := range classes {
			if have == want {
				return true
			}
		}
	}
	return false
}
