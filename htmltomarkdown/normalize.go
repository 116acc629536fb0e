package htmltomarkdown

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jdoc2md"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxHeadingLevel is the deepest heading Markdown supports.
const maxHeadingLevel = 6

// knownElements have a Markdown mapping in the converter plugins.
// Anything else is reduced to its text content.
var knownElements = map[atom.Atom]bool{
	atom.Html: true, atom.Head: true, atom.Body: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.P: true, atom.Br: true, atom.Hr: true, atom.Div: true, atom.Span: true,
	atom.Section: true, atom.Article: true, atom.Main: true, atom.Header: true,
	atom.A: true, atom.Img: true,
	atom.Strong: true, atom.B: true, atom.Em: true, atom.I: true,
	atom.Code: true, atom.Pre: true, atom.Blockquote: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.Table: true, atom.Caption: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true,
	atom.Tr: true, atom.Th: true, atom.Td: true,
	atom.Sup: true, atom.Sub: true, atom.Del: true, atom.S: true,
}

// summaryColumns maps the grid classes of summary tables to their column count.
var summaryColumns = map[string]int{
	"two-column-summary":   2,
	"three-column-summary": 3,
	"four-column-summary":  4,
}

// layoutLists are lists the doclet uses for page layout rather than
// enumeration.
const layoutLists = "ul.blockList, ul.blockListLast, li.blockList, li.blockListLast, " +
	"ul.summary-list > li, ul.details-list > li, ul.member-list > li, " +
	"ul.summary-list, ul.details-list, ul.member-list"

// normalize rewrites a fragment into markup the converter plugins map
// cleanly to Markdown.
func normalize(src string, opts jdoc2md.ConvertOptions) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", err
	}
	body := doc.Find("body")

	rebuildSummaryTables(body)
	unwrapLayoutLists(body)
	shiftHeadings(body, opts.HeadingOffset)
	flattenDefinitionLists(body)
	flattenTables(body)
	dropNamedAnchors(body)
	if opts.RewriteLink != nil {
		rewriteLinks(body, opts.RewriteLink)
	}
	reduceUnknownElements(body)

	return body.Html()
}

// unwrapLayoutLists replaces layout lists with their content so that
// sections do not render as bullet items.
func unwrapLayoutLists(body *goquery.Selection) {
	var nodes []*html.Node
	body.Find(layoutLists).Each(func(_ int, sel *goquery.Selection) {
		nodes = append(nodes, sel.Get(0))
	})
	for _, n := range nodes {
		unwrap(n)
	}
}

// shiftHeadings moves every heading down by offset levels, collapsing
// levels past h6 into h6.
func shiftHeadings(body *goquery.Selection, offset int) {
	if offset == 0 {
		return
	}
	body.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		n := sel.Get(0)
		level := int(n.Data[1]-'0') + offset
		level = max(1, min(level, maxHeadingLevel))
		rename(n, "h"+strconv.Itoa(level))
	})
}

// flattenDefinitionLists turns definition lists into bold term paragraphs
// followed by their descriptions.
func flattenDefinitionLists(body *goquery.Selection) {
	body.Find("dt").Each(func(_ int, sel *goquery.Selection) {
		sel.WrapInnerHtml("<strong></strong>")
		rename(sel.Get(0), "p")
	})
	body.Find("dd").Each(func(_ int, sel *goquery.Selection) {
		rename(sel.Get(0), "div")
	})
	body.Find("dl").Each(func(_ int, sel *goquery.Selection) {
		rename(sel.Get(0), "div")
	})
}

// rebuildSummaryTables replaces CSS grid summaries with real tables.
// Header cells carry the "table-header" class; all other children are
// body cells laid out row by row.
func rebuildSummaryTables(body *goquery.Selection) {
	body.Find("div.summary-table").Each(func(_ int, grid *goquery.Selection) {
		columns := gridColumns(grid)
		if columns == 0 {
			return
		}

		var headers, cells []string
		grid.Children().Each(func(_ int, cell *goquery.Selection) {
			inner, err := cell.Html()
			if err != nil {
				return
			}
			inner = flattenCell(inner)
			if cell.HasClass("table-header") {
				headers = append(headers, inner)
			} else {
				cells = append(cells, inner)
			}
		})

		var b strings.Builder
		b.WriteString("<table>")
		if len(headers) > 0 {
			b.WriteString("<thead><tr>")
			for _, h := range headers {
				b.WriteString("<th>" + h + "</th>")
			}
			b.WriteString("</tr></thead>")
		}
		b.WriteString("<tbody>")
		for i := 0; i < len(cells); i += columns {
			b.WriteString("<tr>")
			for j := i; j < i+columns; j++ {
				b.WriteString("<td>")
				if j < len(cells) {
					b.WriteString(cells[j])
				}
				b.WriteString("</td>")
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")

		grid.ReplaceWithHtml(b.String())
	})
}

// gridColumns returns the column count of a summary grid from its class,
// falling back to the number of header cells.
func gridColumns(grid *goquery.Selection) int {
	for class, n := range summaryColumns {
		if grid.HasClass(class) {
			return n
		}
	}
	return grid.ChildrenFiltered(".table-header").Length()
}

// flattenTables keeps every table cell on one line and moves captions
// into a paragraph before their table.
func flattenTables(body *goquery.Selection) {
	body.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			inner, err := cell.Html()
			if err != nil {
				return
			}
			cell.SetHtml(flattenCell(inner))
		})
		table.ChildrenFiltered("caption").Each(func(_ int, caption *goquery.Selection) {
			text := jdoc2md.NormalizeWhitespace(caption.Text())
			caption.Remove()
			if text != "" {
				table.BeforeHtml("<p>" + html.EscapeString(text) + "</p>")
			}
		})
	})
}

// cellBlocks are reduced to their content inside table cells.
const cellBlocks = "div, p, ul, ol, li, pre, blockquote, h1, h2, h3, h4, h5, h6"

// flattenCell keeps a table cell on one line by reducing block elements
// to their content, separated by spaces.
func flattenCell(inner string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(inner))
	if err != nil {
		return inner
	}
	body := doc.Find("body")
	body.Find(cellBlocks).Each(func(_ int, sel *goquery.Selection) {
		n := sel.Get(0)
		if n.Parent != nil {
			n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: " "}, n)
			n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: " "}, n.NextSibling)
		}
		unwrap(n)
	})
	out, err := body.Html()
	if err != nil {
		return inner
	}
	return jdoc2md.NormalizeWhitespace(out)
}

// dropNamedAnchors unwraps anchors that only mark a position, removing
// those without text.
func dropNamedAnchors(body *goquery.Selection) {
	body.Find("a:not([href])").Each(func(_ int, sel *goquery.Selection) {
		n := sel.Get(0)
		if strings.TrimSpace(sel.Text()) == "" {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
			return
		}
		unwrap(n)
	})
}

// rewriteLinks applies fn to every anchor target. Dropped links leave
// their text in place.
func rewriteLinks(body *goquery.Selection, fn jdoc2md.LinkFunc) {
	body.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		target, keep := fn(href)
		if !keep {
			unwrap(sel.Get(0))
			return
		}
		sel.SetAttr("href", target)
	})
}

// reduceUnknownElements unwraps elements without a Markdown mapping,
// removing those without any text.
func reduceUnknownElements(body *goquery.Selection) {
	var unknown []*html.Node
	body.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if n := sel.Get(0); !knownElements[n.DataAtom] {
			unknown = append(unknown, n)
		}
	})
	// Innermost first, so parents are unwrapped after their children.
	for i := len(unknown) - 1; i >= 0; i-- {
		n := unknown[i]
		if strings.TrimSpace(goquery.NewDocumentFromNode(n).Text()) == "" {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
			continue
		}
		unwrap(n)
	}
}

// unwrap replaces n with its children.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}

func rename(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}
