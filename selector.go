package jdoc2md

// SelectorTableVersion is the selector table format this build understands.
const SelectorTableVersion = 1

// ContentLocator identifies a documentation region on a page.
type ContentLocator struct {
	// Selector is a CSS selector matching the region.
	Selector string

	// Sections selects only the region's direct children whose class is
	// listed in SelectorTable.SectionClasses.
	Sections bool
}

// SelectorTable lists the structural selectors that separate documentation
// from generator boilerplate. Every list is tried or applied in order.
type SelectorTable struct {
	Version int

	// Content locates the documentation region. The first locator that
	// matches wins; a page matching none carries no class documentation.
	Content []ContentLocator

	// SectionClasses are the classes of region children kept in section mode.
	SectionClasses []string

	// ExcludeClasses veto a section child even if it has a section class.
	ExcludeClasses []string

	// Strip removes boilerplate inside the kept region. Order matters for
	// sibling selectors such as "dt + dd", which must run before their
	// anchor is removed.
	Strip []string

	// Package locates the package breadcrumb.
	Package []string

	// Title locates the class title.
	Title []string
}

// Validate returns an error if the table cannot drive extraction.
func (t *SelectorTable) Validate() error {
	if t.Version != SelectorTableVersion {
		return Errorf(EINVALID, "unsupported selector table version %d (want %d)", t.Version, SelectorTableVersion)
	}
	if len(t.Content) == 0 {
		return Errorf(EINVALID, "selector table has no content locators")
	}
	for _, loc := range t.Content {
		if loc.Selector == "" {
			return Errorf(EINVALID, "selector table has an empty content locator")
		}
	}
	return nil
}

// DefaultSelectorTable returns the selectors for pages produced by the
// standard doclet, covering both the JDK 8 and the JDK 11+ page layouts.
func DefaultSelectorTable() SelectorTable {
	return SelectorTable{
		Version: SelectorTableVersion,
		Content: []ContentLocator{
			{Selector: "main:has(.class-description)", Sections: true},
			{Selector: ".contentContainer:has(.description)", Sections: true},
			{Selector: ".class-description"},
			{Selector: ".description"},
		},
		SectionClasses: []string{
			"header",
			"inheritance",
			"class-description",
			"description",
			"summary",
			"details",
			"details-list",
		},
		ExcludeClasses: []string{
			"inherited-list",
		},
		Strip: []string{
			"script",
			"style",
			"noscript",
			"nav",
			"footer",
			".top-nav",
			".sub-nav",
			".subNav",
			".bottom-nav",
			".skip-nav",
			".table-tabs",
			".inherited-list",
			".deprecation-block",
			".deprecationBlock",
			"div.block:has(.deprecatedLabel)",
			".header .sub-title",
			".header .subTitle",
			"dl.notes dt:contains('See Also:') + dd",
			"dl.notes dt:contains('See Also:')",
			"dt:has(.seeLabel) + dd",
			"dt:has(.seeLabel)",
			"h3:contains('inherited from') + code",
			"h3:contains('inherited from')",
		},
		Package: []string{
			".sub-title:has(.package-label-in-type)",
			".subTitle:has(.packageLabelInType)",
			".sub-title a[href$='package-summary.html']",
			".sub-title",
			"div.subTitle",
		},
		Title: []string{
			"h1.title",
			".header h1",
			"h2.title",
			"title",
		},
	}
}
