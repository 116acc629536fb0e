// Package yaml loads selector tables from YAML documents.
package yaml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/jdoc2md"
	"gopkg.in/yaml.v3"
)

// selectorFile is the on-disk form of a selector table.
// Lists that are present replace the defaults; ExtraStrip is appended to
// the strip list.
type selectorFile struct {
	Version        int              `yaml:"version"`
	Content        []contentLocator `yaml:"content"`
	SectionClasses []string         `yaml:"section_classes"`
	ExcludeClasses []string         `yaml:"exclude_classes"`
	Strip          []string         `yaml:"strip"`
	ExtraStrip     []string         `yaml:"extra_strip"`
	Package        []string         `yaml:"package"`
	Title          []string         `yaml:"title"`
}

type contentLocator struct {
	Selector string `yaml:"selector"`
	Sections bool   `yaml:"sections"`
}

// LoadSelectorTableFile reads a selector table from a YAML file.
// Returns ENOTFOUND if the file does not exist.
func LoadSelectorTableFile(path string) (jdoc2md.SelectorTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return jdoc2md.SelectorTable{}, jdoc2md.Errorf(jdoc2md.ENOTFOUND, "selector table %s not found", path)
		}
		return jdoc2md.SelectorTable{}, err
	}
	defer f.Close()

	return LoadSelectorTable(f)
}

// LoadSelectorTable decodes a selector table and merges it over
// jdoc2md.DefaultSelectorTable.
// Returns EINVALID for malformed documents, unknown keys and unsupported
// versions.
func LoadSelectorTable(r io.Reader) (jdoc2md.SelectorTable, error) {
	var file selectorFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return jdoc2md.SelectorTable{}, jdoc2md.Errorf(jdoc2md.EINVALID, "decode selector table: %v", err)
	}

	table := jdoc2md.DefaultSelectorTable()
	table.Version = file.Version
	if file.Content != nil {
		table.Content = make([]jdoc2md.ContentLocator, 0, len(file.Content))
		for _, loc := range file.Content {
			table.Content = append(table.Content, jdoc2md.ContentLocator{
				Selector: loc.Selector,
				Sections: loc.Sections,
			})
		}
	}
	override(&table.SectionClasses, file.SectionClasses)
	override(&table.ExcludeClasses, file.ExcludeClasses)
	override(&table.Strip, file.Strip)
	override(&table.Package, file.Package)
	override(&table.Title, file.Title)
	table.Strip = append(table.Strip, file.ExtraStrip...)

	if err := table.Validate(); err != nil {
		return jdoc2md.SelectorTable{}, err
	}
	return table, nil
}

func override(dst *[]string, src []string) {
	if src != nil {
		*dst = src
	}
}
