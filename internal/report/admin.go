package report

import "github.com/nao1215/rolereport/internal/model"

// AdminStrategy renders every item. In HTML, items above PriorityThreshold
// are rendered bold.
type AdminStrategy struct {
	layout
}

// NewAdminStrategy creates an AdminStrategy for viewer in format.
func NewAdminStrategy(viewer model.User, format model.Format) *AdminStrategy {
	return &AdminStrategy{layout: newLayout(viewer, format)}
}

// Body renders all items without filtering.
func (s *AdminStrategy) Body(items []model.LineItem) (string, float64) {
	return s.rows(items, isPriority)
}

// isPriority reports whether item is emphasized in the admin view.
func isPriority(item model.LineItem) bool {
	return item.Value > PriorityThreshold
}
