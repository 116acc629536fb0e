package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/jdoc2md"
	"github.com/fwojciec/jdoc2md/convert"
	"github.com/fwojciec/jdoc2md/doublestar"
	"github.com/fwojciec/jdoc2md/fs"
	"github.com/fwojciec/jdoc2md/goquery"
	"github.com/fwojciec/jdoc2md/htmltomarkdown"
	jdocslog "github.com/fwojciec/jdoc2md/slog"
	"github.com/fwojciec/jdoc2md/xxhash"
	"github.com/fwojciec/jdoc2md/yaml"
	"github.com/fwojciec/jdoc2md/zip"
	"github.com/spf13/afero"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	table := jdoc2md.DefaultSelectorTable()
	if c.CLI.Selectors != "" {
		var err error
		table, err = yaml.LoadSelectorTableFile(c.CLI.Selectors)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", jdoc2md.ErrorMessage(err))
			return err
		}
	}

	matcher, err := doublestar.NewMatcher(c.CLI.PageFilter())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jdoc2md.ErrorMessage(err))
		return err
	}

	loader, dirName, cleanup, err := c.pageSource(deps, matcher)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jdoc2md.ErrorMessage(err))
		return err
	}
	defer cleanup()

	pages, err := loader.LoadPages(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error loading pages: %s\n", jdoc2md.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Found %d pages\n", pages.Len())

	root := c.CLI.Output
	if !c.CLI.Flat && dirName != "" {
		root = filepath.Join(root, dirName)
	}

	pipeline := &convert.Pipeline{
		Extractor:   jdocslog.NewLoggingExtractor(goquery.NewExtractor(table, xxhash.Sum), deps.Logger),
		Converter:   htmltomarkdown.NewConverter(),
		Writer:      jdocslog.NewLoggingTreeWriter(fs.NewTreeWriter(afero.NewOsFs(), root), deps.Logger),
		Concurrency: c.CLI.Concurrency,
	}

	progress := func(e convert.ProgressEvent) {
		if e.Type == convert.ProgressStarted {
			return
		}
		stage := "extract"
		if e.Stage == convert.StageWrite {
			stage = "write"
		}
		fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", e.Completed, e.Total, stage)
	}

	summary, err := pipeline.Run(deps.Ctx, pages, progress)

	// Clear progress line
	fmt.Fprintln(deps.Stdout)

	if summary != nil {
		fmt.Fprintf(deps.Stdout, "Output: %s\n", root)
		_, _ = summary.WriteTo(deps.Stdout)
		for _, f := range summary.Failures {
			deps.Logger.Warn("page failed", "page", f.Page, "stage", f.Stage, "err", f.Err)
		}
		if !summary.Healthy() {
			fmt.Fprintf(deps.Stderr, "warning: output is incomplete (%d naming collisions, %d render failures)\n",
				summary.DuplicateName, summary.RenderFailures)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", jdoc2md.ErrorMessage(err))
		return err
	}
	return nil
}

// pageSource returns the loader for the selected input, the output
// subdirectory name, and a cleanup function for temporary files.
func (c *ConvertCmd) pageSource(deps *Dependencies, matcher jdoc2md.PageMatcher) (jdoc2md.PageLoader, string, func(), error) {
	noop := func() {}

	switch {
	case c.CLI.InputDir != "":
		return fs.NewDirSource(afero.NewOsFs(), c.CLI.InputDir, matcher), "", noop, nil

	case c.CLI.InputJar != "":
		return zip.NewJarSource(c.CLI.InputJar, matcher), jarDirName(c.CLI.InputJar), noop, nil
	}

	artifacts := jdocslog.NewLoggingArtifactService(deps.Artifacts, deps.Logger)
	coord := jdoc2md.Coordinate{Group: c.CLI.Group, Artifact: c.CLI.Artifact, Version: c.CLI.Version}
	if err := coord.Validate(); err != nil {
		return nil, "", noop, err
	}
	if coord.Version == "" {
		version, err := artifacts.LatestVersion(deps.Ctx, coord.Group, coord.Artifact)
		if err != nil {
			return nil, "", noop, err
		}
		coord.Version = version
	}
	fmt.Fprintf(deps.Stdout, "Downloading %s\n", coord)

	tmp, err := os.CreateTemp("", "jdoc2md-*.jar")
	if err != nil {
		return nil, "", noop, err
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if err := artifacts.DownloadJavadoc(deps.Ctx, coord, tmp); err != nil {
		_ = tmp.Close()
		cleanup()
		return nil, "", noop, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return nil, "", noop, err
	}

	return zip.NewJarSource(tmp.Name(), matcher), coord.DirName(), cleanup, nil
}
