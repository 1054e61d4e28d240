package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/rolereport/internal/model"
)

var (
	// ErrMalformedItem is returned when an item lacks an id or a numeric value.
	ErrMalformedItem = errors.New("malformed item")

	// ErrUnsupportedFile is returned for item files with an unknown extension.
	ErrUnsupportedFile = errors.New("unsupported item file type: use .yaml, .yml, .json or .csv")
)

// Source supplies the items a report is generated from.
type Source interface {
	// Items returns every item, in source order.
	Items(ctx context.Context) ([]model.LineItem, error)
}

// Static is a Source over a fixed slice.
type Static []model.LineItem

// Items returns a copy of the slice.
func (s Static) Items(ctx context.Context) ([]model.LineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]model.LineItem(nil), s...), nil
}

// malformed returns an ErrMalformedItem error for the item at position pos (1-based).
func malformed(pos int, format string, args ...any) error {
	return fmt.Errorf("%w at position %d: %s", ErrMalformedItem, pos, fmt.Sprintf(format, args...))
}
