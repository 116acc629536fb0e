package convert_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fwojciec/jdoc2md"
	"github.com/fwojciec/jdoc2md/convert"
	jdocfs "github.com/fwojciec/jdoc2md/fs"
	"github.com/fwojciec/jdoc2md/goquery"
	"github.com/fwojciec/jdoc2md/htmltomarkdown"
	"github.com/fwojciec/jdoc2md/xxhash"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classPage returns a minimal doclet page for a class.
func classPage(pkg, title, body string) string {
	return `<html><head><title>` + title + `</title></head><body>
<div class="topNav"><a href="../overview-summary.html">Overview</a></div>
<div class="header"><div class="subTitle">` + pkg + `</div><h2 class="title">Class ` + title + `</h2></div>
<div class="description">` + body + `</div>
</body></html>`
}

// legacyPage is a class page in the layout of the JDK 8 standard doclet.
const legacyPage = `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">
<html lang="en">
<head><title>Foo (Acme API)</title></head>
<body>
<div class="topNav"><a name="navbar.top"><!--   --></a><ul class="navList"><li><a href="../../overview-summary.html">Overview</a></li></ul></div>
<div class="subNav"><ul class="navList"><li>Prev Class</li></ul></div>
<div class="header">
<div class="subTitle">com.acme</div>
<h2 title="Class Foo" class="title">Class Foo</h2>
</div>
<div class="contentContainer">
<div class="description">
<ul class="blockList"><li class="blockList">
<pre>public class <span class="typeNameLabel">Foo</span>
extends java.lang.Object</pre>
<div class="block">Runs things.</div>
<dl>
<dt><span class="simpleTagLabel">Since:</span></dt><dd>1.0</dd>
<dt><span class="seeLabel">See Also:</span></dt><dd><a href="../../com/acme/Bar.html" title="class in com.acme"><code>Bar</code></a></dd>
</dl>
</li></ul>
</div>
<div class="summary">
<ul class="blockList"><li class="blockList">
<ul class="blockList"><li class="blockList"><a name="method.summary"><!--   --></a>
<h3>Method Summary</h3>
<table class="memberSummary" border="0" cellpadding="3" cellspacing="0" summary="Method Summary table">
<caption><span id="t0" class="activeTableTab"><span>All Methods</span><span class="tabEnd">&nbsp;</span></span></caption>
<tr><th class="colFirst" scope="col">Modifier and Type</th><th class="colLast" scope="col">Method and Description</th></tr>
<tr id="i0" class="altColor"><td class="colFirst"><code>void</code></td>
<td class="colLast"><code><span class="memberNameLink"><a href="../../com/acme/Foo.html#run--">run</a></span>()</code>
<div class="block">Runs the task.</div>
</td></tr>
</table>
<ul class="blockList"><li class="blockList"><a name="methods.inherited.from.class.java.lang.Object"><!--   --></a>
<h3>Methods inherited from class&nbsp;java.lang.Object</h3>
<code>clone, equals</code></li></ul>
</li></ul></li></ul>
</div>
<div class="details">
<ul class="blockList"><li class="blockList">
<ul class="blockList"><li class="blockList"><a name="method.detail"><!--   --></a>
<h3>Method Detail</h3>
<a name="run--"><!--   --></a>
<ul class="blockListLast"><li class="blockList">
<h4>run</h4>
<pre>public&nbsp;void&nbsp;run()</pre>
<div class="block">Runs the task.</div>
</li></ul>
</li></ul></li></ul>
</div>
</div>
<div class="bottomNav"><a name="navbar.bottom"><!--   --></a></div>
</body>
</html>`

func newRealPipeline(root string) *convert.Pipeline {
	return &convert.Pipeline{
		Extractor:   goquery.NewExtractor(jdoc2md.DefaultSelectorTable(), xxhash.Sum),
		Converter:   htmltomarkdown.NewConverter(),
		Writer:      jdocfs.NewTreeWriter(afero.NewOsFs(), root),
		Concurrency: 4,
	}
}

// readTree returns every file below root keyed by slash path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	files := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestPipeline_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("writes a single file for a redirected class", func(t *testing.T) {
		t.Parallel()

		page := `<div class="header"><div class="subTitle">p</div><h2 class="title">Class A</h2></div><div class='description'>Hello</div>`
		pages, err := jdoc2md.NewPageSet(
			jdoc2md.RawPage{Path: "A.html", HTML: page},
			jdoc2md.RawPage{Path: "A-redirect.html", HTML: page},
		)
		require.NoError(t, err)
		root := t.TempDir()

		summary, err := newRealPipeline(root).Run(context.Background(), pages, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, summary.DuplicateContent)
		assert.Equal(t, 1, summary.FilesWritten)
		files := readTree(t, root)
		require.Len(t, files, 1)
		assert.Equal(t, "# p.A\n\nHello\n", files["p/A.md"])
	})

	t.Run("produces identical trees on repeated runs", func(t *testing.T) {
		t.Parallel()

		pages, err := jdoc2md.NewPageSet(
			jdoc2md.RawPage{Path: "a/b/C.html", HTML: classPage("a.b", "C", `<p>See <a href="D.html">D</a>.</p>`)},
			jdoc2md.RawPage{Path: "a/b/D.html", HTML: classPage("a.b", "D", `<p>Back to <a href="C.html#m()">C</a>.</p>`)},
			jdoc2md.RawPage{Path: "a/e/F.html", HTML: classPage("a.e", "F", `<pre>int x = 1;</pre>`)},
			jdoc2md.RawPage{Path: "index.html", HTML: `<html><body><main><h1>API</h1></main></body></html>`},
		)
		require.NoError(t, err)
		root := t.TempDir()

		_, err = newRealPipeline(root).Run(context.Background(), pages, nil)
		require.NoError(t, err)
		first := readTree(t, root)

		_, err = newRealPipeline(root).Run(context.Background(), pages, nil)
		require.NoError(t, err)
		second := readTree(t, root)

		assert.Len(t, first, 3)
		assert.Equal(t, first, second)
	})

	t.Run("mirrors the package hierarchy", func(t *testing.T) {
		t.Parallel()

		pages, err := jdoc2md.NewPageSet(
			jdoc2md.RawPage{Path: "a/b/C.html", HTML: classPage("a.b", "C", "<p>Docs.</p>")},
		)
		require.NoError(t, err)
		root := t.TempDir()

		_, err = newRealPipeline(root).Run(context.Background(), pages, nil)

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(root, "a", "b", "C.md"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# a.b.C\n"))
	})

	t.Run("normalizes links to the output layout", func(t *testing.T) {
		t.Parallel()

		pages, err := jdoc2md.NewPageSet(
			jdoc2md.RawPage{Path: "a/b/C.html", HTML: classPage("a.b", "C", `<p>See <a href="../e/F.html">F</a> and <a href="package-summary.html">a.b</a>.</p>`)},
			jdoc2md.RawPage{Path: "a/e/F.html", HTML: classPage("a.e", "F", "<p>F docs.</p>")},
		)
		require.NoError(t, err)
		root := t.TempDir()

		_, err = newRealPipeline(root).Run(context.Background(), pages, nil)

		require.NoError(t, err)
		files := readTree(t, root)
		assert.Contains(t, files["a/b/C.md"], "[F](../e/F.md)")
		assert.NotContains(t, files["a/b/C.md"], "package-summary")
		assert.NotContains(t, files["a/b/C.md"], "Overview")
	})

	t.Run("renders a legacy doclet page", func(t *testing.T) {
		t.Parallel()

		pages, err := jdoc2md.NewPageSet(
			jdoc2md.RawPage{Path: "com/acme/Foo.html", HTML: legacyPage},
		)
		require.NoError(t, err)
		root := t.TempDir()

		_, err = newRealPipeline(root).Run(context.Background(), pages, nil)

		require.NoError(t, err)
		md := readTree(t, root)["com/acme/Foo.md"]
		assert.True(t, strings.HasPrefix(md, "# com.acme.Foo\n"))
		assert.Regexp(t, regexp.MustCompile(`\|\s*Modifier and Type\s*\|\s*Method and Description\s*\|`), md)
		assert.Regexp(t, regexp.MustCompile(`(?m)^\|[^\n]*void[^\n]*\|[^\n]*Runs the task\.[^\n]*\|`), md)
		assert.Contains(t, md, "Runs things.")
		assert.Contains(t, md, "Since:")
		assert.Contains(t, md, "Method Detail")
		assert.NotContains(t, md, "See Also")
		assert.NotContains(t, md, "Bar")
		assert.NotContains(t, md, "[]()")
		assert.NotContains(t, md, "<!--")
		assert.NotContains(t, md, "inherited from")
		assert.NotContains(t, md, "Prev Class")
	})

	t.Run("skips pages without class documentation", func(t *testing.T) {
		t.Parallel()

		pages, err := jdoc2md.NewPageSet(
			jdoc2md.RawPage{Path: "a/b/C.html", HTML: classPage("a.b", "C", "<p>Docs.</p>")},
			jdoc2md.RawPage{Path: "a/b/package-tree.html", HTML: `<html><body><h1>Hierarchy</h1></body></html>`},
		)
		require.NoError(t, err)
		root := t.TempDir()

		summary, err := newRealPipeline(root).Run(context.Background(), pages, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, summary.SkippedNonClass)
		assert.Equal(t, 0, summary.RenderFailures)
		assert.Len(t, readTree(t, root), 1)
	})
}
