// Package testkit provides fixtures and fake collaborators for engine tests.
package testkit

import (
	"context"
	"fmt"
	"sync"

	"wafersight/domain/fallout"
	"wafersight/domain/wafer"
	"wafersight/domain/wafermap"
	"wafersight/ports"
)

// SampleGrid returns a converted-sheet fixture in the shipped input layout:
// SLOT block in column A, THEORETICAL_NUM label, header row discovered by
// the C1_MARK scan (deliberately not row 1), a record block, and the
// reference table below its LOLIMIT sentinel.
func SampleGrid() [][]string {
	return [][]string{
		{"SLOT"},
		{"7"},
		{"THEORETICAL_NUM", "", "1000"},
		{},
		{"LOT", "DEV", "", "", "", "", "C1_MARK", "X", "Y", "ET", "FT"},
		{"L1", "D1", "", "", "", "", "A", "1", "1", "7", "1"},
		{"L1", "D1", "", "", "", "", "2", "2", "1", "42", "1"},
		{"L1", "D1", "", "", "", "", "A", "1", "2", "7.0", "1"},
		{"L1", "D1", "", "", "", "", "2", "2", "2", "42", "1"},
		{"L1", "D1", "", "", "", "", "A", "3", "1", "7", "1"},
		{},
		{"TSNO", "TESTNO", "COMMENT", "MODE", "HILIMIT", "LOLIMIT"},
		{"1", "42", "CONT", "GROSS", "20", "10"},
		{"2", "7", "IDDQ", "FUNC", "5", ""},
	}
}

// Records returns a small normalized record set for direct domain tests.
func Records() []wafer.TestRecord {
	return []wafer.TestRecord{
		{Slot: 7, X: 1, Y: 1, EndTest: "7", Mark: "A", FailCount: 1},
		{Slot: 7, X: 2, Y: 1, EndTest: "42", Mark: "2", FailCount: 1},
		{Slot: 7, X: 1, Y: 2, EndTest: "7", Mark: "A", FailCount: 1},
		{Slot: 7, X: 2, Y: 2, EndTest: "42", Mark: "2", FailCount: 1},
		{Slot: 7, X: 3, Y: 1, EndTest: "7", Mark: "A", FailCount: 1},
	}
}

// Recorder captures reported messages for assertions.
type Recorder struct {
	mu       sync.Mutex
	Messages []string
}

func (r *Recorder) Report(sev ports.Severity, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, string(sev)+": "+fmt.Sprintf(format, args...))
}

// BySeverity returns the captured messages carrying the given severity tag.
func (r *Recorder) BySeverity(sev ports.Severity) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	prefix := string(sev) + ": "
	for _, m := range r.Messages {
		if len(m) >= len(prefix) && m[:len(prefix)] == prefix {
			out = append(out, m[len(prefix):])
		}
	}
	return out
}

// MemorySink collects written artifacts in memory.
type MemorySink struct {
	Fallout   []fallout.Report
	Reference []wafer.ReferenceLimit
	Grids     []*wafermap.Grid
	Flushes   int
}

func (s *MemorySink) WriteFallout(ctx context.Context, report fallout.Report) error {
	s.Fallout = append(s.Fallout, report)
	return nil
}

func (s *MemorySink) WriteReferenceEcho(ctx context.Context, row wafer.ReferenceLimit) error {
	s.Reference = append(s.Reference, row)
	return nil
}

func (s *MemorySink) WriteWafermap(ctx context.Context, grid *wafermap.Grid) error {
	s.Grids = append(s.Grids, grid)
	return nil
}

func (s *MemorySink) Flush(ctx context.Context) error {
	s.Flushes++
	return nil
}

// StaticSource serves a fixed grid.
type StaticSource struct {
	Grid [][]string
}

func (s *StaticSource) ReadGrid(ctx context.Context) ([][]string, error) {
	return s.Grid, nil
}
