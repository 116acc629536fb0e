// Package slog provides logging decorators for jdoc2md services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/jdoc2md"
)

// Ensure LoggingExtractor implements jdoc2md.Extractor.
var _ jdoc2md.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-page logging.
// Successful and skipped pages are logged at debug level, failures as
// warnings.
type LoggingExtractor struct {
	next   jdoc2md.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next jdoc2md.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(page jdoc2md.RawPage) (doc *jdoc2md.ParsedDoc, err error) {
	defer func(begin time.Time) {
		switch {
		case err == nil:
			e.logger.Debug("extract",
				"page", page.Path,
				"name", doc.QualifiedName,
				"duration", time.Since(begin),
			)
		case jdoc2md.IsNotClass(err):
			e.logger.Debug("skip",
				"page", page.Path,
				"reason", jdoc2md.ErrorMessage(err),
			)
		default:
			e.logger.Warn("extract failed",
				"page", page.Path,
				"duration", time.Since(begin),
				"err", err,
			)
		}
	}(time.Now())
	return e.next.Extract(page)
}
