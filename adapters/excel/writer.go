package excel

import (
	"context"
	"fmt"
	"log"

	"wafersight/domain/fallout"
	"wafersight/domain/wafer"
	"wafersight/domain/wafermap"
	"wafersight/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Layout anchors of the report sheet, matching the shipped workbook layout.
const (
	reportSheet = "Pivot"

	falloutAnchorCol = 4 // column D
	falloutAnchorRow = 3

	referenceAnchorCol = 8 // column H
	referenceAnchorRow = 3
)

var referenceHeader = []string{"TSNO", "TESTNO", "COMMENT", "MODE", "HILIMIT", "LOLIMIT"}

// Writer writes finished derived artifacts into an existing workbook as bulk
// writes. It implements ports.ArtifactSink.
type Writer struct {
	f      *excelize.File
	path   string
	styles map[string]int // style cache keyed by fill/font/bold signature
}

// OpenWriter opens an existing workbook for artifact writes.
func OpenWriter(path string) (*Writer, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open workbook %s", path)
	}
	return &Writer{f: f, path: path, styles: map[string]int{}}, nil
}

// Close releases the underlying workbook without saving.
func (w *Writer) Close() error {
	return w.f.Close()
}

// Flush persists all writes back to the workbook file.
func (w *Writer) Flush(ctx context.Context) error {
	if err := w.f.Save(); err != nil {
		return errors.Wrapf(err, "failed to save workbook %s", w.path)
	}
	return nil
}

// WriteFallout writes the ordered fallout table at its report anchor with
// header, top-offender and grand-total emphasis plus uniform borders.
func (w *Writer) WriteFallout(ctx context.Context, report fallout.Report) error {
	if err := w.ensureSheet(reportSheet, false); err != nil {
		return err
	}
	if err := w.clearFalloutRegion(); err != nil {
		return err
	}

	table := report.Table()
	for i, row := range table {
		if err := w.setRow(reportSheet, falloutAnchorCol, falloutAnchorRow+i, row); err != nil {
			return err
		}
	}

	lastRow := falloutAnchorRow + len(table) - 1
	lastCol := falloutAnchorCol + 2

	plain, err := w.style("", "", false)
	if err != nil {
		return err
	}
	if err := w.setRange(reportSheet, falloutAnchorCol, falloutAnchorRow, lastCol, lastRow, plain); err != nil {
		return err
	}

	header, err := w.style(fallout.HeaderFill.Hex(), "", true)
	if err != nil {
		return err
	}
	if err := w.setRange(reportSheet, falloutAnchorCol, falloutAnchorRow, lastCol, falloutAnchorRow, header); err != nil {
		return err
	}
	if len(report.Rows) > 0 {
		emphasis, err := w.style(fallout.EmphasisFill.Hex(), "", true)
		if err != nil {
			return err
		}
		if err := w.setRange(reportSheet, falloutAnchorCol, falloutAnchorRow+1, lastCol, falloutAnchorRow+1, emphasis); err != nil {
			return err
		}
	}
	if err := w.setRange(reportSheet, falloutAnchorCol, lastRow, lastCol, lastRow, header); err != nil {
		return err
	}

	log.Printf("[Writer] fallout table written (%d rows)", len(table))
	return nil
}

// WriteReferenceEcho writes the resolved reference row below its header.
func (w *Writer) WriteReferenceEcho(ctx context.Context, row wafer.ReferenceLimit) error {
	if err := w.ensureSheet(reportSheet, false); err != nil {
		return err
	}

	data := []string{row.TSNo, row.TestNo, row.Comment, row.Mode, row.HiLimit, row.LoLimit}
	if err := w.setRow(reportSheet, referenceAnchorCol, referenceAnchorRow, referenceHeader); err != nil {
		return err
	}
	if err := w.setRow(reportSheet, referenceAnchorCol, referenceAnchorRow+1, data); err != nil {
		return err
	}

	lastCol := referenceAnchorCol + len(referenceHeader) - 1
	header, err := w.style(fallout.HeaderFill.Hex(), "", true)
	if err != nil {
		return err
	}
	body, err := w.style("FFFFFF", "", true)
	if err != nil {
		return err
	}
	if err := w.setRange(reportSheet, referenceAnchorCol, referenceAnchorRow, lastCol, referenceAnchorRow, header); err != nil {
		return err
	}
	return w.setRange(reportSheet, referenceAnchorCol, referenceAnchorRow+1, lastCol, referenceAnchorRow+1, body)
}

// WriteWafermap writes the colorized, mirrored grid onto its slot-named
// sheet: per-cell fills, bold header styling, suppressed gridlines, centered
// alignment and a uniform border weight over the full extended grid.
func (w *Writer) WriteWafermap(ctx context.Context, grid *wafermap.Grid) error {
	if err := w.ensureSheet(grid.SheetName, true); err != nil {
		return err
	}

	for r, row := range grid.Cells {
		values := make([]string, len(row))
		for c, cell := range row {
			values[c] = cell.Value
		}
		if err := w.setRow(grid.SheetName, 1, r+1, values); err != nil {
			return err
		}
	}

	headerStyle, err := w.style(wafermap.HeaderFill.Hex(), wafermap.HeaderFont.Hex(), true)
	if err != nil {
		return err
	}
	plain, err := w.style("", "", false)
	if err != nil {
		return err
	}

	for r, row := range grid.Cells {
		for c, cell := range row {
			styleID := plain
			switch {
			case cell.Header:
				styleID = headerStyle
			case cell.HasFill:
				styleID, err = w.style(cell.Fill.Hex(), "", cell.Bold)
				if err != nil {
					return err
				}
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := w.f.SetCellStyle(grid.SheetName, name, name, styleID); err != nil {
				return err
			}
		}
	}

	showGridLines := false
	if err := w.f.SetSheetView(grid.SheetName, 0, &excelize.ViewOptions{ShowGridLines: &showGridLines}); err != nil {
		return fmt.Errorf("failed to suppress gridlines on %s: %w", grid.SheetName, err)
	}

	log.Printf("[Writer] wafermap written to sheet %s (%d x %d)", grid.SheetName, len(grid.Cells), len(grid.Cells[0]))
	return nil
}

// clearFalloutRegion blanks the fallout columns down to the sheet's last
// used row, so a rerun with a shorter report leaves no stale rows below the
// new grand total.
func (w *Writer) clearFalloutRegion() error {
	rows, err := w.f.GetRows(reportSheet)
	if err != nil {
		return err
	}
	if len(rows) < falloutAnchorRow {
		return nil
	}
	for r := falloutAnchorRow; r <= len(rows); r++ {
		for c := falloutAnchorCol; c <= falloutAnchorCol+2; c++ {
			name, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return err
			}
			if err := w.f.SetCellValue(reportSheet, name, nil); err != nil {
				return err
			}
		}
	}
	return w.setRange(reportSheet, falloutAnchorCol, falloutAnchorRow, falloutAnchorCol+2, len(rows), 0)
}

// ensureSheet creates the sheet if missing; replace drops any previous
// content first so reruns stay idempotent.
func (w *Writer) ensureSheet(name string, replace bool) error {
	idx, err := w.f.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx >= 0 && replace {
		if err := w.f.DeleteSheet(name); err != nil {
			return err
		}
		idx = -1
	}
	if idx < 0 {
		if _, err := w.f.NewSheet(name); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) setRow(sheet string, col, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(sheet, name, &cells)
}

func (w *Writer) setRange(sheet string, col1, row1, col2, row2, styleID int) error {
	topLeft, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return err
	}
	bottomRight, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, topLeft, bottomRight, styleID)
}

// style returns a cached style ID for a fill/font/bold combination. Every
// style centers its content and carries the uniform thin border.
func (w *Writer) style(fillHex, fontHex string, bold bool) (int, error) {
	key := fillHex + "/" + fontHex + "/" + fmt.Sprint(bold)
	if id, ok := w.styles[key]; ok {
		return id, nil
	}

	s := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
	}
	if fillHex != "" {
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillHex}}
	}
	if bold || fontHex != "" {
		font := &excelize.Font{Bold: bold}
		if fontHex != "" {
			font.Color = fontHex
		}
		s.Font = font
	}

	id, err := w.f.NewStyle(s)
	if err != nil {
		return 0, fmt.Errorf("failed to build cell style: %w", err)
	}
	w.styles[key] = id
	return id, nil
}
