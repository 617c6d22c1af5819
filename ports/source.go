package ports

import "context"

// GridSource provides the raw cell grid of a converted input sheet. The
// CSV-to-spreadsheet conversion behind it is a collaborator, not part of the
// engine.
type GridSource interface {
	ReadGrid(ctx context.Context) ([][]string, error)
}
