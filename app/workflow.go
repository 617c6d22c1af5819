package app

import (
	"context"

	"wafersight/domain/fallout"
	"wafersight/domain/wafer"
	"wafersight/domain/wafermap"
	"wafersight/internal/errors"
	"wafersight/ports"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Workflow runs the full analysis over one dataset: fallout aggregation,
// reference check of the top fallout code, and wafermap rendering.
type Workflow struct {
	Source   ports.GridSource
	Sink     ports.ArtifactSink
	Reporter ports.Reporter
}

// Run executes the workflow. The fallout and wafermap derivations are
// independent and run concurrently over the same immutable record slice;
// each derivation itself is synchronous. All sink writes happen sequentially
// afterwards. A failed wafermap render does not block the fallout table or
// the reference echo; it is reported and the run continues without a map.
func (w *Workflow) Run(ctx context.Context, mark string) error {
	runID := uuid.New().String()[:8]
	ports.Infof(w.Reporter, "run %s: reading input", runID)

	grid, err := w.Source.ReadGrid(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read input grid")
	}
	ds, err := wafer.ParseDataset(grid)
	if err != nil {
		return err
	}
	for _, warn := range ds.Warnings {
		ports.Warnf(w.Reporter, "%s", warn)
	}

	falloutSvc := &FalloutService{Reporter: w.Reporter, Sink: w.Sink}
	wafermapSvc := &WafermapService{Reporter: w.Reporter, Sink: w.Sink}
	referenceSvc := &ReferenceService{Reporter: w.Reporter, Sink: w.Sink}

	var (
		report      fallout.Report
		summary     fallout.Summary
		wgrid       *wafermap.Grid
		wafermapErr error
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report, summary, err = falloutSvc.Compute(ds, mark)
		return err
	})
	g.Go(func() error {
		wgrid, wafermapErr = wafermapSvc.Compute(ds)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := falloutSvc.Publish(ctx, report, summary); err != nil {
		return err
	}
	if top, ok := report.Top(); ok {
		if _, _, err := referenceSvc.Check(ctx, ds, top); err != nil {
			return err
		}
	} else {
		ports.Infof(w.Reporter, "fallout report is empty, skipping reference check")
	}
	if wafermapErr != nil {
		ports.Errorf(w.Reporter, "wafermap skipped: %v", wafermapErr)
	} else if err := wafermapSvc.Publish(ctx, wgrid); err != nil {
		return err
	}

	if err := w.Sink.Flush(ctx); err != nil {
		return errors.Wrap(err, "failed to persist artifacts")
	}
	ports.Infof(w.Reporter, "run %s: complete", runID)
	return nil
}
