package excel

import (
	"context"
	"strings"
	"testing"

	"wafersight/domain/fallout"
	"wafersight/domain/wafer"
	"wafersight/domain/wafermap"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testWorkbook(t *testing.T) string {
	t.Helper()
	csvPath := writeCSV(t, "input.csv", "SLOT\n7\n")
	outPath, err := ConvertCSV(csvPath)
	require.NoError(t, err)
	return outPath
}

func testReport() fallout.Report {
	recs := []wafer.TestRecord{
		{EndTest: "7", Mark: "A"},
		{EndTest: "7", Mark: "A"},
		{EndTest: "42", Mark: "2"},
	}
	return fallout.Aggregate(recs, 1000, true, fallout.Options{})
}

func TestWriter_WriteFallout(t *testing.T) {
	path := testWorkbook(t)
	ctx := context.Background()

	w, err := OpenWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteFallout(ctx, testReport()))
	require.NoError(t, w.Flush(ctx))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Pivot", "D3")
	require.NoError(t, err)
	require.Equal(t, "End Test No.", header)

	top, err := f.GetCellValue("Pivot", "D4")
	require.NoError(t, err)
	require.Equal(t, "7", top)

	count, err := f.GetCellValue("Pivot", "E4")
	require.NoError(t, err)
	require.Equal(t, "2", count)

	percent, err := f.GetCellValue("Pivot", "F4")
	require.NoError(t, err)
	require.Equal(t, "0.20%", percent)

	grandTotal, err := f.GetCellValue("Pivot", "D6")
	require.NoError(t, err)
	require.Equal(t, "Grand Total", grandTotal)
}

func TestWriter_RewriteClearsStaleFalloutRows(t *testing.T) {
	path := testWorkbook(t)
	ctx := context.Background()

	w, err := OpenWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteFallout(ctx, testReport()))
	require.NoError(t, w.Flush(ctx))
	require.NoError(t, w.Close())

	// A filtered rerun produces a shorter table over the same sheet.
	recs := []wafer.TestRecord{{EndTest: "42", Mark: "2"}}
	short := fallout.Aggregate(recs, 1000, true, fallout.Options{Mark: "2"})
	w, err = OpenWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteFallout(ctx, short))
	require.NoError(t, w.Flush(ctx))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	grandTotal, err := f.GetCellValue("Pivot", "D5")
	require.NoError(t, err)
	require.Equal(t, "Grand Total", grandTotal)

	// Rows 6 onward held the longer table; they must be blank now.
	for _, cell := range []string{"D6", "E6", "F6"} {
		v, err := f.GetCellValue("Pivot", cell)
		require.NoError(t, err)
		require.Empty(t, v, "stale value left at %s", cell)
	}
}

func TestWriter_WriteReferenceEcho(t *testing.T) {
	path := testWorkbook(t)
	ctx := context.Background()

	w, err := OpenWriter(path)
	require.NoError(t, err)
	row := wafer.ReferenceLimit{TSNo: "1", TestNo: "42", Comment: "CONT", Mode: "GROSS", HiLimit: "20", LoLimit: "10"}
	require.NoError(t, w.WriteReferenceEcho(ctx, row))
	require.NoError(t, w.Flush(ctx))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue("Pivot", "H3")
	require.NoError(t, err)
	require.Equal(t, "TSNO", label)

	testNo, err := f.GetCellValue("Pivot", "I4")
	require.NoError(t, err)
	require.Equal(t, "42", testNo)

	loLimit, err := f.GetCellValue("Pivot", "M4")
	require.NoError(t, err)
	require.Equal(t, "10", loLimit)
}

func TestWriter_WriteWafermap(t *testing.T) {
	path := testWorkbook(t)
	ctx := context.Background()

	records := []wafer.TestRecord{
		{X: 1, Y: 1, EndTest: "7", Mark: "A"},
		{X: 2, Y: 1, EndTest: "42", Mark: "2"},
		{X: 1, Y: 2, EndTest: "7", Mark: "A"},
	}
	grid, err := wafermap.Render(records, 7, wafermap.BuildMarkIndex(records))
	require.NoError(t, err)

	w, err := OpenWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteWafermap(ctx, grid))
	require.NoError(t, w.Flush(ctx))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := "W#07_Wafermap_by_End_Test_No"
	idx, err := f.GetSheetIndex(sheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, idx, 0, "wafermap sheet missing")

	corner, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	require.Equal(t, "No.", corner)

	cell, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	require.Equal(t, "7", cell)

	// Mirrored header row: data grid is 3x3, so row 4 repeats row 1.
	mirrored, err := f.GetCellValue(sheet, "B4")
	require.NoError(t, err)
	require.Equal(t, "1", mirrored)
	farCorner, err := f.GetCellValue(sheet, "D4")
	require.NoError(t, err)
	require.Equal(t, "No.", farCorner)

	// The colored cell carries the palette fill for mark A.
	styleID, err := f.GetCellStyle(sheet, "B2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style)
	require.NotEmpty(t, style.Fill.Color)
	require.True(t, strings.EqualFold(strings.TrimPrefix(style.Fill.Color[0], "FF"), "2E8B57") ||
		strings.EqualFold(style.Fill.Color[0], "2E8B57"),
		"fill color = %v", style.Fill.Color)
}

func TestWriter_RerunReplacesWafermapSheet(t *testing.T) {
	path := testWorkbook(t)
	ctx := context.Background()

	records := []wafer.TestRecord{{X: 1, Y: 1, EndTest: "7", Mark: "A"}}
	grid, err := wafermap.Render(records, 7, wafermap.BuildMarkIndex(records))
	require.NoError(t, err)

	w, err := OpenWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteWafermap(ctx, grid))
	require.NoError(t, w.WriteWafermap(ctx, grid))
	require.NoError(t, w.Flush(ctx))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	count := 0
	for _, name := range f.GetSheetList() {
		if name == grid.SheetName {
			count++
		}
	}
	require.Equal(t, 1, count)
}
