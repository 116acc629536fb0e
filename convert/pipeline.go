// Package convert orchestrates the conversion of a documentation bundle.
// It sequences extraction, deduplication, rendering and writing of pages
// and aggregates their outcomes into a run summary.
package convert

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/fwojciec/jdoc2md"
	"golang.org/x/sync/errgroup"
)

// Pipeline converts a PageSet into a Markdown tree.
// A Pipeline holds no state between runs.
type Pipeline struct {
	Extractor   jdoc2md.Extractor
	Converter   jdoc2md.Converter
	Writer      jdoc2md.TreeWriter
	Concurrency int
}

// Stage identifies the pipeline stage a progress event belongs to.
type Stage int

const (
	StageExtract Stage = iota
	StageWrite
)

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Stage     Stage
	Type      ProgressType
	Completed int
	Total     int
	Page      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// extractResult holds the outcome of extracting a single page.
type extractResult struct {
	position int
	page     string
	doc      *jdoc2md.ParsedDoc
	err      error
}

// writeResult holds the outcome of rendering and writing a single document.
type writeResult struct {
	position int
	page     string
	stage    string
	err      error
}

// Run converts every page of the set and writes the kept documents.
// Per-page failures are recorded in the summary; the returned error is
// set only for fatal conditions: an unusable output root, no extractable
// class page, or no file written. The summary is returned in all cases
// but the first.
func (p *Pipeline) Run(ctx context.Context, pages *jdoc2md.PageSet, progress ProgressFunc) (*jdoc2md.RunSummary, error) {
	if err := p.Writer.EnsureRoot(); err != nil {
		return nil, fmt.Errorf("output root: %w", err)
	}

	summary := &jdoc2md.RunSummary{TotalPages: pages.Len()}

	extracted, err := p.extract(ctx, pages.Pages(), progress)
	if err != nil {
		return nil, err
	}

	var docs []*jdoc2md.ParsedDoc
	for _, r := range extracted {
		switch {
		case r.err == nil:
			docs = append(docs, r.doc)
		case jdoc2md.IsNotClass(r.err):
			summary.SkippedNonClass++
		default:
			summary.RenderFailures++
			summary.Failures = append(summary.Failures, jdoc2md.PageFailure{Page: r.page, Stage: "extract", Err: r.err})
		}
	}
	summary.Extracted = len(docs)

	// Deduplication is sequential over traversal order.
	dedup := jdoc2md.NewDeduplicator()
	var kept []*jdoc2md.ParsedDoc
	for _, doc := range docs {
		decision := dedup.Decide(doc)
		switch decision.Reason {
		case jdoc2md.DedupFirstSeen:
			kept = append(kept, doc)
		case jdoc2md.DedupDuplicateContent:
			summary.DuplicateContent++
		case jdoc2md.DedupDuplicateName:
			summary.DuplicateName++
			summary.Collisions = append(summary.Collisions, fmt.Sprintf("%s (%s)", doc.QualifiedName, doc.SourcePage))
		}
	}

	renderer := &jdoc2md.MarkdownRenderer{
		Converter: p.Converter,
		Links:     jdoc2md.NewLinkIndex(docs...),
	}

	written, err := p.write(ctx, renderer, kept, progress)
	if err != nil {
		return nil, err
	}
	for _, r := range written {
		switch {
		case r.err == nil:
			summary.FilesWritten++
		case r.stage == "render":
			summary.RenderFailures++
			summary.Failures = append(summary.Failures, jdoc2md.PageFailure{Page: r.page, Stage: r.stage, Err: r.err})
		default:
			summary.WriteFailures++
			summary.Failures = append(summary.Failures, jdoc2md.PageFailure{Page: r.page, Stage: r.stage, Err: r.err})
		}
	}

	return summary, summary.Err()
}

func (p *Pipeline) concurrency() int {
	if p.Concurrency > 0 {
		return p.Concurrency
	}
	return runtime.NumCPU()
}

// extract runs the extractor over all pages in parallel. Results are
// returned in page order.
func (p *Pipeline) extract(ctx context.Context, pages []jdoc2md.RawPage, progress ProgressFunc) ([]extractResult, error) {
	total := len(pages)
	notify(progress, ProgressEvent{Stage: StageExtract, Type: ProgressStarted, Total: total})

	resultCh := make(chan extractResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency())

	go func() {
		for i, page := range pages {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				doc, err := p.Extractor.Extract(page)
				resultCh <- extractResult{position: i, page: page.Path, doc: doc, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]extractResult, total)
	var completed atomic.Int64
	for r := range resultCh {
		results[r.position] = r
		event := ProgressEvent{
			Stage:     StageExtract,
			Type:      ProgressCompleted,
			Completed: int(completed.Add(1)),
			Total:     total,
			Page:      r.page,
			Error:     r.err,
		}
		switch {
		case jdoc2md.IsNotClass(r.err):
			event.Type = ProgressSkipped
		case r.err != nil:
			event.Type = ProgressFailed
		}
		notify(progress, event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// write renders and writes the kept documents in parallel.
func (p *Pipeline) write(ctx context.Context, renderer jdoc2md.Renderer, docs []*jdoc2md.ParsedDoc, progress ProgressFunc) ([]writeResult, error) {
	total := len(docs)
	notify(progress, ProgressEvent{Stage: StageWrite, Type: ProgressStarted, Total: total})

	resultCh := make(chan writeResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency())

	go func() {
		for i, doc := range docs {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				resultCh <- p.writeDoc(gctx, renderer, i, doc)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]writeResult, total)
	var completed atomic.Int64
	for r := range resultCh {
		results[r.position] = r
		event := ProgressEvent{
			Stage:     StageWrite,
			Type:      ProgressCompleted,
			Completed: int(completed.Add(1)),
			Total:     total,
			Page:      r.page,
			Error:     r.err,
		}
		if r.err != nil {
			event.Type = ProgressFailed
		}
		notify(progress, event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeDoc renders a single document and writes it to its output path.
func (p *Pipeline) writeDoc(ctx context.Context, renderer jdoc2md.Renderer, position int, doc *jdoc2md.ParsedDoc) writeResult {
	result := writeResult{position: position, page: doc.SourcePage}

	content, err := renderer.Render(doc)
	if err != nil {
		result.stage = "render"
		result.err = err
		return result
	}

	file := &jdoc2md.OutputFile{Path: doc.OutputPath(), Content: content}
	if err := p.Writer.Write(ctx, file); err != nil {
		result.stage = "write"
		result.err = err
	}
	return result
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
