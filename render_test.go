package jdoc2md_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/jdoc2md"
	"github.com/fwojciec/jdoc2md/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkIndex_Resolve(t *testing.T) {
	t.Parallel()

	joiner := &jdoc2md.ParsedDoc{
		QualifiedName: "com.google.common.base.Joiner",
		PackagePath:   []string{"com", "google", "common", "base"},
		SourcePage:    "com/google/common/base/Joiner.html",
	}
	list := &jdoc2md.ParsedDoc{
		QualifiedName: "com.google.common.collect.ImmutableList",
		PackagePath:   []string{"com", "google", "common", "collect"},
		SourcePage:    "com/google/common/collect/ImmutableList.html",
	}
	redirect := &jdoc2md.ParsedDoc{
		QualifiedName: "com.google.common.base.Joiner",
		PackagePath:   []string{"com", "google", "common", "base"},
		SourcePage:    "com/google/common/base/Joiner-redirect.html",
	}
	idx := jdoc2md.NewLinkIndex(joiner, list, redirect)

	tests := []struct {
		name     string
		href     string
		want     string
		wantKeep bool
	}{
		{name: "page in another package", href: "../collect/ImmutableList.html", want: "../collect/ImmutableList.md", wantKeep: true},
		{name: "keeps fragment", href: "../collect/ImmutableList.html#of()", want: "../collect/ImmutableList.md#of()", wantKeep: true},
		{name: "self link", href: "Joiner.html#on(char)", want: "Joiner.md#on(char)", wantKeep: true},
		{name: "dropped duplicate resolves to kept file", href: "Joiner-redirect.html", want: "Joiner.md", wantKeep: true},
		{name: "fragment only", href: "#skip-navbar", want: "#skip-navbar", wantKeep: true},
		{name: "external link", href: "https://docs.oracle.com/javase/8/docs/api/java/lang/Object.html", want: "https://docs.oracle.com/javase/8/docs/api/java/lang/Object.html", wantKeep: true},
		{name: "mailto link", href: "mailto:dev@example.com", want: "mailto:dev@example.com", wantKeep: true},
		{name: "unindexed bundle page", href: "package-summary.html", want: "", wantKeep: false},
		{name: "non-page resource", href: "doc-files/diagram.png", want: "doc-files/diagram.png", wantKeep: true},
		{name: "path escaping the bundle", href: "../../../../../x.html", want: "../../../../../x.html", wantKeep: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, keep := idx.Resolve(joiner, tt.href)

			assert.Equal(t, tt.wantKeep, keep)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkdownRenderer_Render(t *testing.T) {
	t.Parallel()

	doc := &jdoc2md.ParsedDoc{
		QualifiedName: "p.A",
		PackagePath:   []string{"p"},
		ContentHTML:   "<p>Hello</p>",
		SourcePage:    "p/A.html",
	}

	t.Run("prefixes the converted body with the qualified name", func(t *testing.T) {
		t.Parallel()

		r := &jdoc2md.MarkdownRenderer{
			Converter: &mock.Converter{
				ConvertFn: func(html string, opts jdoc2md.ConvertOptions) (string, error) {
					return "\nHello\n\n", nil
				},
			},
		}

		md, err := r.Render(doc)

		require.NoError(t, err)
		assert.Equal(t, "# p.A\n\nHello\n", md)
	})

	t.Run("shifts headings below the document heading", func(t *testing.T) {
		t.Parallel()

		var got jdoc2md.ConvertOptions
		r := &jdoc2md.MarkdownRenderer{
			Converter: &mock.Converter{
				ConvertFn: func(html string, opts jdoc2md.ConvertOptions) (string, error) {
					got = opts
					return "Hello", nil
				},
			},
		}

		_, err := r.Render(doc)

		require.NoError(t, err)
		assert.Equal(t, 1, got.HeadingOffset)
		assert.Nil(t, got.RewriteLink)
	})

	t.Run("resolves links against the document's source page", func(t *testing.T) {
		t.Parallel()

		other := &jdoc2md.ParsedDoc{QualifiedName: "q.B", PackagePath: []string{"q"}, SourcePage: "q/B.html"}
		var rewritten string
		r := &jdoc2md.MarkdownRenderer{
			Links: jdoc2md.NewLinkIndex(doc, other),
			Converter: &mock.Converter{
				ConvertFn: func(html string, opts jdoc2md.ConvertOptions) (string, error) {
					rewritten, _ = opts.RewriteLink("../q/B.html")
					return "Hello", nil
				},
			},
		}

		_, err := r.Render(doc)

		require.NoError(t, err)
		assert.Equal(t, "../q/B.md", rewritten)
	})

	t.Run("renders only the heading for empty content", func(t *testing.T) {
		t.Parallel()

		r := &jdoc2md.MarkdownRenderer{Converter: &mock.Converter{}}

		md, err := r.Render(&jdoc2md.ParsedDoc{QualifiedName: "p.Empty", SourcePage: "p/Empty.html"})

		require.NoError(t, err)
		assert.Equal(t, "# p.Empty\n", md)
	})

	t.Run("returns converter errors", func(t *testing.T) {
		t.Parallel()

		r := &jdoc2md.MarkdownRenderer{
			Converter: &mock.Converter{
				ConvertFn: func(html string, opts jdoc2md.ConvertOptions) (string, error) {
					return "", errors.New("boom")
				},
			},
		}

		_, err := r.Render(doc)

		require.Error(t, err)
	})
}
