package report

import "github.com/nao1215/rolereport/internal/model"

// UserStrategy renders only the items at or below ViewLimit. Hidden items
// are omitted without trace and rows are never emphasized.
type UserStrategy struct {
	layout
}

// NewUserStrategy creates a UserStrategy for viewer in format.
func NewUserStrategy(viewer model.User, format model.Format) *UserStrategy {
	return &UserStrategy{layout: newLayout(viewer, format)}
}

// Body renders the visible items in input order.
func (s *UserStrategy) Body(items []model.LineItem) (string, float64) {
	return s.rows(Visible(items), func(model.LineItem) bool { return false })
}

// Visible returns the items a non-admin viewer may see, in input order.
// The input slice is not modified.
func Visible(items []model.LineItem) []model.LineItem {
	visible := make([]model.LineItem, 0, len(items))
	for _, item := range items {
		if item.Value <= ViewLimit {
			visible = append(visible, item)
		}
	}
	return visible
}
