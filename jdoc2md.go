// Package jdoc2md converts published API documentation bundles (Javadoc
// HTML, one page per class) into a deduplicated Markdown tree that mirrors
// the package hierarchy, for use as retrieval context by LLM tooling.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, htmltomarkdown/, fs/).
package jdoc2md
