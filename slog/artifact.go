package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/jdoc2md"
)

// Ensure LoggingArtifactService implements jdoc2md.ArtifactService.
var _ jdoc2md.ArtifactService = (*LoggingArtifactService)(nil)

// LoggingArtifactService wraps an ArtifactService with logging.
type LoggingArtifactService struct {
	next   jdoc2md.ArtifactService
	logger *slog.Logger
}

// NewLoggingArtifactService creates a new LoggingArtifactService.
func NewLoggingArtifactService(next jdoc2md.ArtifactService, logger *slog.Logger) *LoggingArtifactService {
	return &LoggingArtifactService{next: next, logger: logger}
}

// LatestVersion delegates to the wrapped service and logs the operation.
func (s *LoggingArtifactService) LatestVersion(ctx context.Context, group, artifact string) (version string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("resolve version",
			"group", group,
			"artifact", artifact,
			"version", version,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LatestVersion(ctx, group, artifact)
}

// DownloadJavadoc delegates to the wrapped service and logs the operation.
func (s *LoggingArtifactService) DownloadJavadoc(ctx context.Context, coord jdoc2md.Coordinate, dst io.Writer) (err error) {
	cw := &countingWriter{w: dst}
	defer func(begin time.Time) {
		s.logger.Info("download javadoc",
			"coordinate", coord.String(),
			"bytes", cw.n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DownloadJavadoc(ctx, coord, cw)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
