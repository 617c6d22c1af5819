package app

import (
	"context"

	"wafersight/domain/wafer"
	"wafersight/domain/wafermap"
	"wafersight/internal/errors"
	"wafersight/ports"
)

// WafermapService renders the coordinate-indexed, colorized wafermap grid.
type WafermapService struct {
	Reporter ports.Reporter
	Sink     ports.ArtifactSink
}

// Compute builds the end-test-to-mark index and renders the grid. The grid
// carries any per-cell warnings; they are surfaced on Publish.
func (s *WafermapService) Compute(ds *wafer.Dataset) (*wafermap.Grid, error) {
	index := wafermap.BuildMarkIndex(ds.Records)
	grid, err := wafermap.Render(ds.Records, ds.Slot, index)
	if err != nil {
		return nil, errors.Wrap(err, "wafermap render aborted")
	}
	return grid, nil
}

// Publish forwards accumulated render warnings and hands the finished grid
// to the sink as one bulk write.
func (s *WafermapService) Publish(ctx context.Context, grid *wafermap.Grid) error {
	for _, w := range grid.Warnings {
		ports.Warnf(s.Reporter, "%s", w)
	}
	if err := s.Sink.WriteWafermap(ctx, grid); err != nil {
		return errors.Wrap(err, "failed to write wafermap")
	}
	ports.Infof(s.Reporter, "wafermap created on sheet %s", grid.SheetName)
	return nil
}
