package fallout

import (
	"testing"

	"wafersight/domain/wafer"
)

func recordsWithCounts(counts map[string]int) []wafer.TestRecord {
	// Interleave deterministically: A first, then B, then C, by input order
	// of the map keys given below.
	var recs []wafer.TestRecord
	for _, et := range []string{"A", "B", "C"} {
		for i := 0; i < counts[et]; i++ {
			recs = append(recs, wafer.TestRecord{X: i, Y: 0, EndTest: et, Mark: "x", FailCount: 1})
		}
	}
	return recs
}

func TestAggregate_Ordering(t *testing.T) {
	recs := recordsWithCounts(map[string]int{"A": 5, "B": 9, "C": 2})
	report := Aggregate(recs, 1000, true, Options{})

	got := []string{}
	for _, row := range report.Rows {
		got = append(got, row.EndTest)
	}
	want := []string{"B", "A", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order = %v, want %v", got, want)
		}
	}
}

func TestAggregate_TiesPreserveInputOrder(t *testing.T) {
	recs := recordsWithCounts(map[string]int{"A": 3, "B": 3, "C": 3})
	report := Aggregate(recs, 1000, true, Options{})
	if report.Rows[0].EndTest != "A" || report.Rows[1].EndTest != "B" || report.Rows[2].EndTest != "C" {
		t.Errorf("tie order = %v, want encounter order A, B, C", report.Rows)
	}
}

func TestAggregate_FalloutArithmetic(t *testing.T) {
	recs := recordsWithCounts(map[string]int{"A": 37})
	report := Aggregate(recs, 1000, true, Options{})
	if report.Rows[0].Percent != "3.70%" {
		t.Errorf("percent = %q, want \"3.70%%\"", report.Rows[0].Percent)
	}
	if report.GrandTotal != "1000" {
		t.Errorf("grand total = %q, want \"1000\"", report.GrandTotal)
	}
}

func TestAggregate_DegradedMode(t *testing.T) {
	recs := recordsWithCounts(map[string]int{"A": 5, "B": 9})

	for _, tc := range []struct {
		name        string
		theoretical float64
		has         bool
	}{
		{"absent total", 0, false},
		{"zero total", 0, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			report := Aggregate(recs, tc.theoretical, tc.has, Options{})
			if !report.Degraded {
				t.Fatal("expected degraded mode")
			}
			for _, row := range report.Rows {
				if row.Percent != "0.00%" {
					t.Errorf("row %s percent = %q, want explicit zero", row.EndTest, row.Percent)
				}
			}
		})
	}
}

func TestAggregate_MarkFilter(t *testing.T) {
	recs := []wafer.TestRecord{
		{EndTest: "1", Mark: "A"},
		{EndTest: "1", Mark: "B"},
		{EndTest: "2", Mark: "A"},
	}
	report := Aggregate(recs, 100, true, Options{Mark: "A"})
	if len(report.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(report.Rows))
	}
	for _, row := range report.Rows {
		if row.Count != 1 {
			t.Errorf("row %s count = %d, want 1", row.EndTest, row.Count)
		}
	}
}

func TestAggregate_MarkFilterNormalized(t *testing.T) {
	recs := []wafer.TestRecord{
		{EndTest: "1", Mark: "2"},
		{EndTest: "2", Mark: "A"},
	}
	report := Aggregate(recs, 100, true, Options{Mark: "2.0"})
	if len(report.Rows) != 1 || report.Rows[0].EndTest != "1" {
		t.Fatalf("rows = %+v, want only end test 1 for mark 2", report.Rows)
	}
}

func TestAggregate_ExcludesGrandTotalRows(t *testing.T) {
	recs := []wafer.TestRecord{
		{EndTest: "1", Mark: "A"},
		{EndTest: "Grand Total", Mark: "A"},
		{EndTest: "", Mark: "A"},
	}
	report := Aggregate(recs, 100, true, Options{})
	if len(report.Rows) != 1 || report.Rows[0].EndTest != "1" {
		t.Errorf("rows = %+v, want single row for end test 1", report.Rows)
	}
}

func TestReport_Shape(t *testing.T) {
	recs := recordsWithCounts(map[string]int{"A": 2})
	report := Aggregate(recs, 50, true, Options{})
	table := report.Table()

	if len(table) != 3 {
		t.Fatalf("table rows = %d, want header + data + grand total", len(table))
	}
	header := table[0]
	if header[0] != "End Test No." || header[1] != "Count" || header[2] != "Fallout%" {
		t.Errorf("header = %v", header)
	}
	last := table[len(table)-1]
	if last[0] != "Grand Total" || last[1] != "50" || last[2] != "" {
		t.Errorf("grand total row = %v", last)
	}
}

func TestReport_Top(t *testing.T) {
	recs := recordsWithCounts(map[string]int{"A": 1, "B": 4})
	report := Aggregate(recs, 100, true, Options{})
	top, ok := report.Top()
	if !ok || top != "B" {
		t.Errorf("Top() = (%q, %v), want (B, true)", top, ok)
	}

	empty := Aggregate(nil, 100, true, Options{})
	if _, ok := empty.Top(); ok {
		t.Error("Top() on empty report should report absence")
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	recs := recordsWithCounts(map[string]int{"A": 5, "B": 9, "C": 2})
	first := Aggregate(recs, 1000, true, Options{})
	second := Aggregate(recs, 1000, true, Options{})
	if len(first.Rows) != len(second.Rows) {
		t.Fatal("row counts differ across identical runs")
	}
	for i := range first.Rows {
		if first.Rows[i] != second.Rows[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, first.Rows[i], second.Rows[i])
		}
	}
}
