package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jdoc2md"
)

// Ensure LoggingTreeWriter implements jdoc2md.TreeWriter.
var _ jdoc2md.TreeWriter = (*LoggingTreeWriter)(nil)

// LoggingTreeWriter wraps a TreeWriter with logging.
type LoggingTreeWriter struct {
	next   jdoc2md.TreeWriter
	logger *slog.Logger
}

// NewLoggingTreeWriter creates a new LoggingTreeWriter.
func NewLoggingTreeWriter(next jdoc2md.TreeWriter, logger *slog.Logger) *LoggingTreeWriter {
	return &LoggingTreeWriter{next: next, logger: logger}
}

// EnsureRoot delegates to the wrapped writer and logs failures.
func (w *LoggingTreeWriter) EnsureRoot() (err error) {
	defer func() {
		if err != nil {
			w.logger.Error("output root", "err", err)
		}
	}()
	return w.next.EnsureRoot()
}

// Write delegates to the wrapped writer and logs the operation.
func (w *LoggingTreeWriter) Write(ctx context.Context, file *jdoc2md.OutputFile) (err error) {
	defer func(begin time.Time) {
		if err != nil {
			w.logger.Warn("write failed",
				"path", file.Path,
				"err", err,
			)
			return
		}
		w.logger.Debug("write",
			"path", file.Path,
			"bytes", len(file.Content),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return w.next.Write(ctx, file)
}
