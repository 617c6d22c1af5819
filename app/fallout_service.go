// Package app wires the analysis engine's domain logic to its collaborator
// ports: grid sources, artifact sinks and the status reporter.
package app

import (
	"context"
	"fmt"
	"strings"

	"wafersight/domain/fallout"
	"wafersight/domain/wafer"
	"wafersight/internal/errors"
	"wafersight/internal/preview"
	"wafersight/ports"
)

// FalloutService produces the fallout report for one dataset.
type FalloutService struct {
	Reporter ports.Reporter
	Sink     ports.ArtifactSink
}

// Compute aggregates the fallout report and its summary. A non-empty mark
// must be one of the dataset's classification marks. An unresolved
// theoretical total is reported and aggregation proceeds in degraded mode.
func (s *FalloutService) Compute(ds *wafer.Dataset, mark string) (fallout.Report, fallout.Summary, error) {
	mark = wafer.NormalizeCell(mark)
	if mark != "" && !containsMark(ds.Marks, mark) {
		return fallout.Report{}, fallout.Summary{}, errors.InvalidInput(
			fmt.Sprintf("selected '%s' not found in C1_MARK values [%s]", mark, strings.Join(ds.Marks, " ")))
	}

	if !ds.HasTheoretical {
		degraded := errors.TheoreticalTotalUnresolved()
		ports.Warnf(s.Reporter, "[%s] %s", degraded.Code, degraded.Message)
	}

	report := fallout.Aggregate(ds.Records, ds.Theoretical, ds.HasTheoretical, fallout.Options{Mark: mark})
	summary := fallout.Summarize(report, ds.Theoretical, ds.HasTheoretical)
	return report, summary, nil
}

// Publish previews the report through the reporter and hands the finished
// table to the sink as one bulk write.
func (s *FalloutService) Publish(ctx context.Context, report fallout.Report, summary fallout.Summary) error {
	ports.Infof(s.Reporter, "%s", preview.FalloutTable(report))
	ports.Infof(s.Reporter, "%s", preview.Summary(summary))
	if err := s.Sink.WriteFallout(ctx, report); err != nil {
		return errors.Wrap(err, "failed to write fallout table")
	}
	return nil
}

func containsMark(marks []string, mark string) bool {
	for _, m := range marks {
		if m == mark {
			return true
		}
	}
	return false
}
