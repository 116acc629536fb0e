package jdoc2md

import (
	"path"
	"regexp"
	"strings"
)

// ParsedDoc is the extracted documentation of one class page.
type ParsedDoc struct {
	// QualifiedName is the dotted package-plus-class name (e.g. "a.b.C").
	QualifiedName string

	// PackagePath is the package split into segments. Empty for the
	// default package.
	PackagePath []string

	// ContentHTML is the cleaned documentation fragment.
	ContentHTML string

	// ContentHash fingerprints the whitespace-normalized fragment.
	ContentHash string

	// SourcePage is the bundle-relative path of the page.
	SourcePage string
}

// Validate returns an error if the document contains invalid fields.
func (d *ParsedDoc) Validate() error {
	if d.QualifiedName == "" {
		return Errorf(EINVALID, "document qualified name required")
	}
	if d.SourcePage == "" {
		return Errorf(EINVALID, "document source page required")
	}
	return nil
}

// ClassName returns the qualified name without its package prefix.
// Nested classes keep their outer class: "java.util.Map.Entry" has class
// name "Map.Entry".
func (d *ParsedDoc) ClassName() string {
	pkg := strings.Join(d.PackagePath, ".")
	if pkg == "" {
		return d.QualifiedName
	}
	return strings.TrimPrefix(d.QualifiedName, pkg+".")
}

// OutputPath returns the slash-separated path of the document's Markdown
// file relative to the output root: package segments as directories and
// the class name plus ".md" as the file name.
func (d *ParsedDoc) OutputPath() string {
	parts := append(append([]string{}, d.PackagePath...), d.ClassName()+".md")
	return path.Join(parts...)
}

// DocumentTree is the narrow view of a parsed page that extraction needs.
// It keeps name derivation and fingerprinting independent of any concrete
// markup parser.
type DocumentTree interface {
	// HasClassDescription reports whether a class documentation region exists.
	HasClassDescription() bool

	// Title returns the raw class title text (e.g. "Class Foo<T>").
	// Returns "" when the page declares none.
	Title() string

	// PackageName returns the raw package breadcrumb text
	// (e.g. "Package a.b"). Returns "" when the page declares none.
	PackageName() string

	// ContentSections returns the cleaned markup of each kept section of
	// the documentation region, in document order.
	ContentSections() ([]string, error)
}

// Extractor isolates class documentation from a raw page.
type Extractor interface {
	// Extract returns the page's class documentation.
	// Returns ENOTCLASS when the page carries none and EPARSE when the
	// markup cannot be parsed.
	Extract(page RawPage) (*ParsedDoc, error)
}

// HashFunc computes a fingerprint of normalized content.
type HashFunc func(content string) string

// BuildParsedDoc derives a ParsedDoc from a page tree.
// The package comes from the breadcrumb, falling back to the page's
// directory; the class name comes from the title, falling back to the
// page's file name.
func BuildParsedDoc(pagePath string, tree DocumentTree, hash HashFunc) (*ParsedDoc, error) {
	if !tree.HasClassDescription() {
		return nil, Errorf(ENOTCLASS, "no class description in %s", pagePath)
	}

	pkg := CleanPackageName(tree.PackageName())
	if pkg == "" {
		pkg = packageFromPath(pagePath)
	}

	class := CleanClassTitle(tree.Title())
	if class == "" {
		class = classFromPath(pagePath)
	}
	if class == "" {
		return nil, Errorf(ENOTCLASS, "no class name derivable for %s", pagePath)
	}

	sections, err := tree.ContentSections()
	if err != nil {
		return nil, Errorf(EPARSE, "%s: %v", pagePath, err)
	}
	content := strings.TrimSpace(strings.Join(sections, "\n"))

	qualified := class
	var pkgPath []string
	if pkg != "" {
		qualified = pkg + "." + class
		pkgPath = strings.Split(pkg, ".")
	}

	return &ParsedDoc{
		QualifiedName: qualified,
		PackagePath:   pkgPath,
		ContentHTML:   content,
		ContentHash:   hash(NormalizeWhitespace(content)),
		SourcePage:    pagePath,
	}, nil
}

var (
	genericParamsRe = regexp.MustCompile(`<.*>`)
	dottedIdentRe   = regexp.MustCompile(`^[A-Za-z_$][\w$]*(\.[A-Za-z_$][\w$]*)*$`)
)

// NormalizeWhitespace collapses every run of whitespace, including line
// breaks and non-breaking spaces, to a single space and trims the ends, so
// cosmetically different fragments compare equal.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleKinds are the kind prefixes generators put before a class title.
// Longer prefixes come first so "Enum Class" wins over "Enum".
var titleKinds = []string{
	"Annotation Interface",
	"Annotation Type",
	"Record Class",
	"Enum Class",
	"Interface",
	"Class",
	"Enum",
}

// CleanClassTitle reduces a raw title such as "Class Foo<T>" to the class
// name "Foo". Returns "" when the result is not a plausible class name.
func CleanClassTitle(title string) string {
	title = NormalizeWhitespace(title)
	for _, kind := range titleKinds {
		if rest, ok := strings.CutPrefix(title, kind+" "); ok {
			title = rest
			break
		}
	}
	// Page <title> elements look like "Foo (Library 1.0 API)".
	if i := strings.Index(title, " ("); i >= 0 {
		title = title[:i]
	}
	title = genericParamsRe.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	if !dottedIdentRe.MatchString(title) {
		return ""
	}
	return title
}

// CleanPackageName reduces a raw breadcrumb such as "Package a.b" to
// "a.b". Returns "" when the result is not a plausible package name.
func CleanPackageName(crumb string) string {
	crumb = NormalizeWhitespace(crumb)
	crumb = strings.TrimPrefix(crumb, "Package ")
	crumb = strings.TrimSpace(crumb)
	if !dottedIdentRe.MatchString(crumb) {
		return ""
	}
	return crumb
}

// packageFromPath derives a package from the page directory: "a/b/C.html" → "a.b".
func packageFromPath(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	pkg := strings.ReplaceAll(dir, "/", ".")
	if !dottedIdentRe.MatchString(pkg) {
		return ""
	}
	return pkg
}

// classFromPath derives a class name from the page file name: "a/b/C.html" → "C".
func classFromPath(p string) string {
	base := path.Base(p)
	base = strings.TrimSuffix(base, path.Ext(base))
	if !dottedIdentRe.MatchString(base) {
		return ""
	}
	return base
}
