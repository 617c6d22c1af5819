// Package preview renders fixed-width text previews of derived tables for
// the status sink.
package preview

import (
	"fmt"
	"strings"

	"wafersight/domain/fallout"
	"wafersight/domain/wafer"
)

// FalloutTable renders the ordered fallout table as fixed-width text.
func FalloutTable(report fallout.Report) string {
	var b strings.Builder
	b.WriteString("Preview Table:\n")
	for _, row := range report.Table() {
		fmt.Fprintf(&b, "%-15s%-10s%s\n", row[0], row[1], row[2])
	}
	return b.String()
}

// ReferenceRow renders the resolved reference row below its header.
func ReferenceRow(row wafer.ReferenceLimit) string {
	var b strings.Builder
	b.WriteString("End Test No. Reference:\n")
	fmt.Fprintf(&b, "%-10s%-10s%-15s%-10s%-10s%s\n", "TSNO", "TESTNO", "COMMENT", "MODE", "HILIMIT", "LOLIMIT")
	b.WriteString(strings.Repeat("-", 70) + "\n")
	fmt.Fprintf(&b, "%-10s%-10s%-15s%-10s%-10s%s\n", row.TSNo, row.TestNo, row.Comment, row.Mode, row.HiLimit, row.LoLimit)
	return b.String()
}

// Summary renders the fallout summary as status lines.
func Summary(s fallout.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "End test codes: %d, total fails: %d\n", s.Groups, s.TotalFails)
	fmt.Fprintf(&b, "Counts mean %.1f, median %.1f, max %.0f; top offender share %.1f%%\n",
		s.MeanCount, s.MedianCount, s.MaxCount, s.TopShare)
	if s.HasYield {
		fmt.Fprintf(&b, "Yield vs theoretical total: %.2f%%\n", s.YieldPercent)
	}
	return b.String()
}
