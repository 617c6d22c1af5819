package wafermap

import (
	"testing"

	"wafersight/domain/wafer"
)

func TestBuildMarkIndex_LastWriteWins(t *testing.T) {
	records := []wafer.TestRecord{
		{EndTest: "7", Mark: "A"},
		{EndTest: "42", Mark: "2"},
		{EndTest: "7", Mark: "B"},
	}
	index := BuildMarkIndex(records)
	if len(index) != 2 {
		t.Fatalf("index size = %d, want 2", len(index))
	}
	if index["7"] != "B" {
		t.Errorf("index[7] = %q, want last occurrence B", index["7"])
	}
	if index["42"] != "2" {
		t.Errorf("index[42] = %q, want 2", index["42"])
	}
}

func TestBuildMarkIndex_SkipsMissingValues(t *testing.T) {
	records := []wafer.TestRecord{
		{EndTest: "", Mark: "A"},
		{EndTest: "9", Mark: ""},
		{EndTest: "10", Mark: "C"},
	}
	index := BuildMarkIndex(records)
	if len(index) != 1 {
		t.Fatalf("index = %v, want only the complete record", index)
	}
	if index["10"] != "C" {
		t.Errorf("index[10] = %q, want C", index["10"])
	}
}

func TestBuildMarkIndex_TotalOverObservedSet(t *testing.T) {
	records := []wafer.TestRecord{
		{EndTest: "1", Mark: "A"},
		{EndTest: "2", Mark: "B"},
		{EndTest: "3", Mark: "C"},
	}
	index := BuildMarkIndex(records)
	for _, rec := range records {
		if _, ok := index[rec.EndTest]; !ok {
			t.Errorf("end test %s missing from index", rec.EndTest)
		}
	}
}
