package mock

import (
	"context"

	"github.com/fwojciec/jdoc2md"
)

var _ jdoc2md.TreeWriter = (*TreeWriter)(nil)

// TreeWriter is a mock implementation of jdoc2md.TreeWriter.
type TreeWriter struct {
	EnsureRootFn func() error
	WriteFn      func(ctx context.Context, file *jdoc2md.OutputFile) error
}

func (w *TreeWriter) EnsureRoot() error {
	return w.EnsureRootFn()
}

func (w *TreeWriter) Write(ctx context.Context, file *jdoc2md.OutputFile) error {
	return w.WriteFn(ctx, file)
}
