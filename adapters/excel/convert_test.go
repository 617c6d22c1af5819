package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"wafersight/internal/errors"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertCSV_PadsRaggedRows(t *testing.T) {
	csvPath := writeCSV(t, "lot42.csv", "a,b,c\n1,2\nx\n")

	outPath, err := ConvertCSV(csvPath)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(filepath.Dir(csvPath), "lot42.xlsx"), outPath)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, "lot42", f.GetSheetName(0))
	rows, err := f.GetRows("lot42")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"a", "b", "c"}, rows[0])
	// Short rows are padded to the widest row; trailing empties may be
	// trimmed on read but values must align by column.
	require.Equal(t, "1", rows[1][0])
	require.Equal(t, "2", rows[1][1])
	require.Equal(t, "x", rows[2][0])
}

func TestConvertCSV_TruncatesLongSheetName(t *testing.T) {
	long := "a_very_long_lot_identifier_beyond_the_limit"
	csvPath := writeCSV(t, long+".csv", "h\nv\n")

	outPath, err := ConvertCSV(csvPath)
	require.NoError(t, err)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, long[:31], f.GetSheetName(0))
}

func TestConvertCSV_EmptyFile(t *testing.T) {
	csvPath := writeCSV(t, "empty.csv", "")
	_, err := ConvertCSV(csvPath)
	require.Error(t, err)
}

func TestGridReader_RoundTrip(t *testing.T) {
	csvPath := writeCSV(t, "wafer.csv", "SLOT\n7\n")
	outPath, err := ConvertCSV(csvPath)
	require.NoError(t, err)

	grid, err := NewGridReader(outPath).ReadGrid(context.Background())
	require.NoError(t, err)
	require.Equal(t, "SLOT", grid[0][0])
	require.Equal(t, "7", grid[1][0])
}

func TestGridReader_CSVDirect(t *testing.T) {
	csvPath := writeCSV(t, "direct.csv", "a,b\n1,2,3\n")
	grid, err := NewGridReader(csvPath).ReadGrid(context.Background())
	require.NoError(t, err)
	require.Len(t, grid, 2)
	require.Len(t, grid[1], 3) // ragged rows pass through unchanged
}

func TestGridReader_MissingFile(t *testing.T) {
	_, err := NewGridReader(filepath.Join(t.TempDir(), "nope.xlsx")).ReadGrid(context.Background())
	require.Error(t, err)
	require.Equal(t, errors.CodeIOError, errors.GetCode(err))
}
