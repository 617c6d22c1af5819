package fallout

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Summary carries descriptive statistics over the aggregated fallout counts,
// reported alongside the fallout table as informational context.
type Summary struct {
	Groups       int     // distinct end-test codes
	TotalFails   int     // sum of all group counts
	MeanCount    float64
	MedianCount  float64
	MaxCount     float64
	TopShare     float64 // top offender's share of all fails, percent
	YieldPercent float64 // (theoretical - fails) / theoretical, percent
	HasYield     bool    // false in degraded mode
}

// Summarize computes the fallout summary for a report. In degraded mode the
// yield figure is omitted rather than guessed.
func Summarize(r Report, theoretical float64, hasTheoretical bool) Summary {
	s := Summary{Groups: len(r.Rows)}
	if len(r.Rows) == 0 {
		return s
	}

	counts := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		counts[i] = float64(row.Count)
	}

	total := floats.Sum(counts)
	s.TotalFails = int(total)
	s.MeanCount, _ = stats.Mean(counts)
	s.MedianCount, _ = stats.Median(counts)
	s.MaxCount, _ = stats.Max(counts)
	if total > 0 {
		s.TopShare = float64(r.Rows[0].Count) / total * 100
	}
	if hasTheoretical && theoretical > 0 {
		s.YieldPercent = (theoretical - total) / theoretical * 100
		s.HasYield = true
	}
	return s
}
