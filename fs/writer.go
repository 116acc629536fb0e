// Package fs writes and reads documentation trees on a filesystem.
package fs

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/jdoc2md"
	"github.com/spf13/afero"
)

// Ensure TreeWriter implements jdoc2md.TreeWriter at compile time.
var _ jdoc2md.TreeWriter = (*TreeWriter)(nil)

// TreeWriter writes Markdown files beneath a root directory.
// Each file is written to a temporary sibling and renamed into place, so
// readers never observe a partially written file.
type TreeWriter struct {
	fs   afero.Fs
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTreeWriter creates a new TreeWriter that writes below root.
func NewTreeWriter(fs afero.Fs, root string) *TreeWriter {
	return &TreeWriter{
		fs:    fs,
		root:  root,
		locks: make(map[string]*sync.Mutex),
	}
}

// EnsureRoot creates the root directory if needed and verifies that files
// can be created in it.
func (w *TreeWriter) EnsureRoot() error {
	if err := w.fs.MkdirAll(w.root, 0o755); err != nil {
		return jdoc2md.Errorf(jdoc2md.EINTERNAL, "create output root %s: %v", w.root, err)
	}

	info, err := w.fs.Stat(w.root)
	if err != nil {
		return jdoc2md.Errorf(jdoc2md.EINTERNAL, "stat output root %s: %v", w.root, err)
	}
	if !info.IsDir() {
		return jdoc2md.Errorf(jdoc2md.EINTERNAL, "output root %s is not a directory", w.root)
	}

	probe, err := afero.TempFile(w.fs, w.root, ".jdoc2md-probe-*")
	if err != nil {
		return jdoc2md.Errorf(jdoc2md.EINTERNAL, "output root %s is not writable: %v", w.root, err)
	}
	name := probe.Name()
	_ = probe.Close()
	return w.fs.Remove(name)
}

// Write writes the file below the root, creating missing directories and
// replacing any existing file. Concurrent writes to one path are serialized.
func (w *TreeWriter) Write(ctx context.Context, file *jdoc2md.OutputFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := file.Validate(); err != nil {
		return err
	}

	rel := path.Clean(strings.ReplaceAll(file.Path, "\\", "/"))
	if path.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, "../") {
		return jdoc2md.Errorf(jdoc2md.EINVALID, "output path %q escapes the output root", file.Path)
	}
	target := filepath.Join(w.root, filepath.FromSlash(rel))

	lock := w.lock(target)
	lock.Lock()
	defer lock.Unlock()

	dir := filepath.Dir(target)
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", target, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(file.Content); err != nil {
		_ = tmp.Close()
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", target, err)
	}
	if err := w.fs.Rename(tmpName, target); err != nil {
		_ = w.fs.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", target, err)
	}
	return nil
}

// lock returns the mutex guarding target.
func (w *TreeWriter) lock(target string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()

	l, ok := w.locks[target]
	if !ok {
		l = &sync.Mutex{}
		w.locks[target] = l
	}
	return l
}
