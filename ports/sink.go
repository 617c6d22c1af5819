package ports

import (
	"context"

	"wafersight/domain/fallout"
	"wafersight/domain/wafer"
	"wafersight/domain/wafermap"
)

// ArtifactSink receives the fully computed derived artifacts as bulk writes.
// The engine never performs file I/O or persistence itself; each artifact is
// handed over as one finished structure with its formatting hints attached.
type ArtifactSink interface {
	// WriteFallout writes the ordered fallout table.
	WriteFallout(ctx context.Context, report fallout.Report) error

	// WriteReferenceEcho writes the resolved reference row with its header.
	WriteReferenceEcho(ctx context.Context, row wafer.ReferenceLimit) error

	// WriteWafermap writes the colorized, mirrored wafermap grid.
	WriteWafermap(ctx context.Context, grid *wafermap.Grid) error

	// Flush persists everything written so far.
	Flush(ctx context.Context) error
}
