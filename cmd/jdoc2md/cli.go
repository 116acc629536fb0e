package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fwojciec/jdoc2md"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Group       string   `short:"g" help:"Maven group ID (e.g. com.google.guava)"`
	Artifact    string   `short:"a" help:"Maven artifact ID (e.g. guava)"`
	Version     string   `help:"Artifact version (default: latest published)"`
	InputJar    string   `short:"i" name:"input-jar" help:"Read pages from a local javadoc jar"`
	InputDir    string   `name:"input-dir" help:"Read pages from an unpacked javadoc directory"`
	Output      string   `short:"o" required:"" help:"Output root directory"`
	Concurrency int      `short:"c" help:"Parallel workers (default: number of CPUs)"`
	Selectors   string   `help:"YAML selector table overriding the built-in one"`
	Include     []string `help:"Glob of pages to load, replacing the default (repeatable)"`
	Exclude     []string `help:"Glob of pages to skip, in addition to the defaults (repeatable)"`
	Verbose     bool     `short:"v" help:"Log progress details"`
	Flat        bool     `help:"Write into the output root instead of an <artifact>-<version> subdirectory"`
}

// Validate checks that exactly one page source is selected.
func (c *CLI) Validate() error {
	sources := 0
	if c.Group != "" || c.Artifact != "" {
		sources++
		if c.Group == "" || c.Artifact == "" {
			return jdoc2md.Errorf(jdoc2md.EINVALID, "--group and --artifact must be used together")
		}
	}
	if c.InputJar != "" {
		sources++
	}
	if c.InputDir != "" {
		sources++
	}
	switch sources {
	case 0:
		return jdoc2md.Errorf(jdoc2md.EINVALID, "one of --group/--artifact, --input-jar or --input-dir is required")
	case 1:
	default:
		return jdoc2md.Errorf(jdoc2md.EINVALID, "--group/--artifact, --input-jar and --input-dir are mutually exclusive")
	}
	if c.Version != "" && c.Group == "" {
		return jdoc2md.Errorf(jdoc2md.EINVALID, "--version requires --group and --artifact")
	}
	if c.Concurrency < 0 {
		return jdoc2md.Errorf(jdoc2md.EINVALID, "--concurrency must not be negative")
	}
	return nil
}

// PageFilter returns the default filter adjusted by --include and --exclude.
func (c *CLI) PageFilter() jdoc2md.PageFilter {
	filter := jdoc2md.DefaultPageFilter()
	if len(c.Include) > 0 {
		filter.Include = c.Include
	}
	filter.Exclude = append(filter.Exclude, c.Exclude...)
	return filter
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Artifacts jdoc2md.ArtifactService
}

// ConvertCmd handles the main convert operation.
type ConvertCmd struct {
	CLI *CLI
}

// jarDirName derives the output directory name from a javadoc jar file
// name: "guava-33.0.0-jre-javadoc.jar" → "guava-33.0.0-jre".
func jarDirName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.TrimSuffix(name, "-javadoc")
	if name == "" || name == "." {
		return jdoc2md.Coordinate{}.DirName()
	}
	return name
}
