package report

import (
	"log/slog"
	"strings"

	"github.com/nao1215/rolereport/internal/model"
)

// Generator produces report documents. It holds only options, so a single
// Generator may be shared across goroutines.
type Generator struct {
	// strict makes unsupported formats an error instead of an empty document.
	strict bool

	// escapeHTML escapes viewer and item text in HTML documents.
	escapeHTML bool

	// logger receives one debug record per generated report.
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithStrictFormat makes GenerateReport reject formats other than CSV and
// HTML with model.ErrUnsupportedFormat. Without it such formats produce "".
func WithStrictFormat(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// WithEscapeHTML escapes the viewer name, item ids and item names in HTML
// documents. Without it they are written verbatim, so text such as
// "Tom & Jerry" appears unchanged. CSV output is never affected.
func WithEscapeHTML(escape bool) Option {
	return func(g *Generator) {
		g.escapeHTML = escape
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GenerateReport renders items for viewer in format.
// The result depends only on the arguments.
func (g *Generator) GenerateReport(format model.Format, viewer model.User, items []model.LineItem) (string, error) {
	if g.strict && !format.Supported() {
		return "", &model.UnsupportedFormatError{Value: string(format)}
	}

	strategy := strategyFor(viewer, format, g.escapeHTML)
	state := render(strategy, items)

	g.logger.Debug("report generated",
		"format", format.String(),
		"role", viewer.Role.String(),
		"items", len(items),
		"total", state.Total,
	)

	return strings.TrimSpace(state.Document), nil
}

// StrategyFor returns AdminStrategy when viewer.Role is exactly
// model.RoleAdmin and UserStrategy for every other role, including the
// zero Role.
// Text is written verbatim.
func StrategyFor(viewer model.User, format model.Format) Strategy {
	return strategyFor(viewer, format, false)
}

func strategyFor(viewer model.User, format model.Format, escapeHTML bool) Strategy {
	if viewer.Role.IsAdmin() {
		s := NewAdminStrategy(viewer, format)
		s.escapeHTML = escapeHTML
		return s
	}
	s := NewUserStrategy(viewer, format)
	s.escapeHTML = escapeHTML
	return s
}

// GenerateReport renders items for viewer in format with a default Generator.
// Unsupported formats produce an empty document.
func GenerateReport(format model.Format, viewer model.User, items []model.LineItem) string {
	doc, _ := NewGenerator().GenerateReport(format, viewer, items) //nolint:errcheck // non-strict generators never fail
	return doc
}
