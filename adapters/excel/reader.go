// Package excel adapts the engine's grid source and artifact sink contracts
// onto xlsx workbooks and CSV files.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"wafersight/internal/errors"

	"github.com/xuri/excelize/v2"
)

// GridReader reads a converted input sheet into a raw cell grid. Both xlsx
// workbooks and plain CSV files are handled; CSV input skips the conversion
// step entirely.
type GridReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewGridReader creates a reader for an xlsx or CSV input file.
func NewGridReader(filePath string) *GridReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &GridReader{filePath: filePath, fileType: fileType}
}

// ReadGrid returns the full cell grid of the first sheet (or the CSV body).
func (r *GridReader) ReadGrid(ctx context.Context) ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.IOError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath), err)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVGrid()
	case "xlsx":
		return r.readExcelGrid()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *GridReader) readExcelGrid() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open Excel file", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	log.Printf("[GridReader] sheet %s read (%d rows)", sheet, len(rows))
	return rows, nil
}

func (r *GridReader) readCSVGrid() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // input rows may be ragged
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[GridReader] CSV file read (%d rows)", len(rows))
	return rows, nil
}
