package fs_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/jdoc2md"
	"github.com/fwojciec/jdoc2md/fs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeWriter_EnsureRoot(t *testing.T) {
	t.Parallel()

	t.Run("creates a missing root", func(t *testing.T) {
		t.Parallel()

		root := filepath.Join(t.TempDir(), "out", "guava-33.0.0-jre")
		w := fs.NewTreeWriter(afero.NewOsFs(), root)

		err := w.EnsureRoot()

		require.NoError(t, err)
		info, err := os.Stat(root)
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		assert.Empty(t, entries, "probe file must be removed")
	})

	t.Run("rejects a root that is a file", func(t *testing.T) {
		t.Parallel()

		mem := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(mem, "/out", []byte("x"), 0o644))
		w := fs.NewTreeWriter(mem, "/out")

		err := w.EnsureRoot()

		require.Error(t, err)
		assert.Equal(t, jdoc2md.EINTERNAL, jdoc2md.ErrorCode(err))
	})

	t.Run("rejects a read-only filesystem", func(t *testing.T) {
		t.Parallel()

		w := fs.NewTreeWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/out")

		err := w.EnsureRoot()

		require.Error(t, err)
		assert.Equal(t, jdoc2md.EINTERNAL, jdoc2md.ErrorCode(err))
	})
}

func TestTreeWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes below package directories", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		w := fs.NewTreeWriter(afero.NewOsFs(), root)

		err := w.Write(context.Background(), &jdoc2md.OutputFile{Path: "a/b/C.md", Content: "# a.b.C\n"})

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(root, "a", "b", "C.md"))
		require.NoError(t, err)
		assert.Equal(t, "# a.b.C\n", string(data))
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		t.Parallel()

		mem := afero.NewMemMapFs()
		w := fs.NewTreeWriter(mem, "/out")
		ctx := context.Background()

		require.NoError(t, w.Write(ctx, &jdoc2md.OutputFile{Path: "p/A.md", Content: "old"}))
		require.NoError(t, w.Write(ctx, &jdoc2md.OutputFile{Path: "p/A.md", Content: "new"}))

		data, err := afero.ReadFile(mem, "/out/p/A.md")
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		w := fs.NewTreeWriter(afero.NewOsFs(), root)

		require.NoError(t, w.Write(context.Background(), &jdoc2md.OutputFile{Path: "p/A.md", Content: "x"}))

		entries, err := os.ReadDir(filepath.Join(root, "p"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "A.md", entries[0].Name())
	})

	t.Run("serializes concurrent writes to one path", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		w := fs.NewTreeWriter(afero.NewOsFs(), root)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				content := fmt.Sprintf("content %02d", i)
				assert.NoError(t, w.Write(ctx, &jdoc2md.OutputFile{Path: "p/A.md", Content: content}))
			}()
		}
		wg.Wait()

		data, err := os.ReadFile(filepath.Join(root, "p", "A.md"))
		require.NoError(t, err)
		assert.Regexp(t, `^content \d\d$`, string(data))
	})

	t.Run("rejects paths escaping the root", func(t *testing.T) {
		t.Parallel()

		w := fs.NewTreeWriter(afero.NewMemMapFs(), "/out")

		for _, p := range []string{"../evil.md", "a/../../evil.md", "/etc/evil.md"} {
			err := w.Write(context.Background(), &jdoc2md.OutputFile{Path: p, Content: "x"})
			require.Error(t, err, p)
			assert.Equal(t, jdoc2md.EINVALID, jdoc2md.ErrorCode(err), p)
		}
	})

	t.Run("rejects an empty path", func(t *testing.T) {
		t.Parallel()

		w := fs.NewTreeWriter(afero.NewMemMapFs(), "/out")

		err := w.Write(context.Background(), &jdoc2md.OutputFile{Content: "x"})

		require.Error(t, err)
		assert.Equal(t, jdoc2md.EINVALID, jdoc2md.ErrorCode(err))
	})

	t.Run("reports filesystem failures", func(t *testing.T) {
		t.Parallel()

		w := fs.NewTreeWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/out")

		err := w.Write(context.Background(), &jdoc2md.OutputFile{Path: "p/A.md", Content: "x"})

		assert.Error(t, err)
	})

	t.Run("stops on a canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w := fs.NewTreeWriter(afero.NewMemMapFs(), "/out")

		err := w.Write(ctx, &jdoc2md.OutputFile{Path: "p/A.md", Content: "x"})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
