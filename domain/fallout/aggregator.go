// Package fallout aggregates per-die test records into the fallout report:
// counts and percentages of dies failing at each end-test code, relative to
// the theoretical die total of the wafer.
package fallout

import (
	"fmt"
	"sort"
	"strings"

	"wafersight/domain/wafer"
)

// Report column headers and footer label.
var (
	Header          = [3]string{"End Test No.", "Count", "Fallout%"}
	grandTotalLabel = "Grand Total"
)

// Formatting hints for the spreadsheet sink, taken from the shipped layout.
var (
	HeaderFill   = wafer.RGB{R: 192, G: 230, B: 245} // header and grand-total rows
	EmphasisFill = wafer.RGB{R: 255, G: 159, B: 159} // first data row, the top offender
)

// Row is one aggregated fallout entry.
type Row struct {
	EndTest string
	Count   int
	Percent string // formatted "%.2f%%"; "0.00%" in degraded mode
}

// Report is the ordered fallout artifact: a synthetic header row, data rows
// sorted by count descending, and a synthetic grand-total row carrying the
// theoretical die total.
type Report struct {
	Rows       []Row
	GrandTotal string // normalized theoretical total, "" when unresolved
	Degraded   bool   // true when the theoretical total was unavailable
}

// Options tunes one aggregation run.
type Options struct {
	// Mark restricts the aggregation to records carrying this classification
	// mark. Normalized before matching, so "2.0" selects mark "2". Empty
	// means all records.
	Mark string
}

// Aggregate groups records by normalized end-test code and computes per-code
// counts and fallout percentages. A zero or unresolved theoretical total is
// an explicit degraded mode: every percentage reports as zero, never a
// division error. Ties in count preserve input encounter order.
func Aggregate(records []wafer.TestRecord, theoretical float64, hasTheoretical bool, opts Options) Report {
	counts := map[string]int{}
	var order []string

	opts.Mark = wafer.NormalizeCell(opts.Mark)

	for _, rec := range records {
		if rec.EndTest == "" {
			continue
		}
		// Guard against synthetic total rows leaking in from upstream
		// aggregated input.
		if strings.EqualFold(rec.EndTest, grandTotalLabel) {
			continue
		}
		if opts.Mark != "" && rec.Mark != opts.Mark {
			continue
		}
		if _, seen := counts[rec.EndTest]; !seen {
			order = append(order, rec.EndTest)
		}
		counts[rec.EndTest]++
	}

	degraded := !hasTheoretical || theoretical == 0

	rows := make([]Row, 0, len(order))
	for _, et := range order {
		count := counts[et]
		fallout := 0.0
		if !degraded {
			fallout = float64(count) / theoretical * 100
		}
		rows = append(rows, Row{
			EndTest: et,
			Count:   count,
			Percent: fmt.Sprintf("%.2f%%", fallout),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	grandTotal := ""
	if hasTheoretical {
		grandTotal, _ = wafer.Normalize(theoretical)
	}

	return Report{Rows: rows, GrandTotal: grandTotal, Degraded: degraded}
}

// Top returns the end-test code with the highest count, the input to the
// reference resolver. The second return is false for an empty report.
func (r Report) Top() (string, bool) {
	if len(r.Rows) == 0 {
		return "", false
	}
	return r.Rows[0].EndTest, true
}

// Table renders the report in its ordered output shape:
// [header, ...sorted rows, grand total].
func (r Report) Table() [][]string {
	out := make([][]string, 0, len(r.Rows)+2)
	out = append(out, []string{Header[0], Header[1], Header[2]})
	for _, row := range r.Rows {
		out = append(out, []string{row.EndTest, fmt.Sprintf("%d", row.Count), row.Percent})
	}
	out = append(out, []string{grandTotalLabel, r.GrandTotal, ""})
	return out
}
