package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/rolereport/internal/model"
	"github.com/nao1215/rolereport/internal/report"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of rendering for one viewer.
type Result struct {
	// Viewer is the user the document was rendered for.
	Viewer model.User

	// Document is the rendered report. Empty when Err is set.
	Document string

	// Err is the generation error for this viewer, if any.
	Err error
}

// Renderer renders reports for many viewers with bounded concurrency.
type Renderer struct {
	generator   *report.Generator
	concurrency int
	logger      *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConcurrency sets the maximum number of concurrent renders.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets the logger for batch-level messages.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer creates a Renderer that uses generator for every viewer.
func NewRenderer(generator *report.Generator, opts ...Option) *Renderer {
	r := &Renderer{
		generator:   generator,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Render renders items in format for each viewer. Results are returned in
// the order of viewers. A generation error for one viewer is recorded in its
// Result and does not stop the others; only context cancellation aborts the
// batch, in which case the returned error is the context error.
func (r *Renderer) Render(ctx context.Context, format model.Format, viewers []model.User, items []model.LineItem) ([]Result, error) {
	r.logger.Debug("starting batch render",
		"viewers", len(viewers),
		"items", len(items),
		"concurrency", r.concurrency,
	)
	start := time.Now()

	results := make([]Result, len(viewers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, viewer := range viewers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, err := r.generator.GenerateReport(format, viewer, items)
			if err != nil {
				r.logger.Warn("render failed", "viewer", viewer.Name, "error", err)
			}

			// Each goroutine owns exactly one index.
			results[i] = Result{Viewer: viewer, Document: doc, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	r.logger.Debug("batch render complete",
		"viewers", len(viewers),
		"elapsed", time.Since(start),
	)

	return results, nil
}
