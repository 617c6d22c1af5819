package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxSheetNameLen is the workbook format's sheet name limit.
const maxSheetNameLen = 31

// ConvertCSV converts a CSV file into an xlsx workbook next to it. Ragged
// rows are padded to the longest row so the sheet stays rectangular; the
// single sheet is named after the file base name. Returns the output path.
func ConvertCSV(csvPath string) (string, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return "", fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("CSV file %s is empty", csvPath)
	}

	maxLen := 0
	for _, row := range rows {
		if len(row) > maxLen {
			maxLen = len(row)
		}
	}

	base := strings.TrimSuffix(filepath.Base(csvPath), filepath.Ext(csvPath))
	sheetName := base
	if len(sheetName) > maxSheetNameLen {
		sheetName = sheetName[:maxSheetNameLen]
	}
	outPath := strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".xlsx"

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet %q: %w", sheetName, err)
	}

	for i, row := range rows {
		padded := make([]interface{}, maxLen)
		for j := 0; j < maxLen; j++ {
			if j < len(row) {
				padded[j] = row[j]
			} else {
				padded[j] = ""
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheetName, cell, &padded); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return "", fmt.Errorf("failed to save workbook %s: %w", outPath, err)
	}
	log.Printf("[ConvertCSV] %s converted (%d rows, %d columns)", filepath.Base(csvPath), len(rows), maxLen)
	return outPath, nil
}
