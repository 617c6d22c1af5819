package wafer

import (
	"fmt"
	"strconv"
	"strings"

	"wafersight/internal/errors"
)

// Well-known labels and fixed column positions of the input layout. The
// header row itself is discovered by scanning, never assumed to be row 1.
const (
	labelMark        = "C1_MARK"
	labelSlot        = "SLOT"
	labelTheoretical = "THEORETICAL_NUM"
	labelLoLimit     = "LOLIMIT"

	colSlot     = 0 // column A
	colTestNo   = 1 // column B, TESTNO inside the reference block
	colSentinel = 5 // column F, LOLIMIT sentinel
	colMark     = 6 // column G, C1_MARK
)

// theoreticalOffset is how many columns right of the THEORETICAL_NUM label
// the value cell sits.
const theoreticalOffset = 2

// end-test header spellings accepted on the header row.
var endTestLabels = []string{"ET", "END TEST NO."}

// cellAt reads a cell from a possibly ragged grid, returning "" past the edge.
func cellAt(grid [][]string, row, col int) string {
	if row < 0 || row >= len(grid) {
		return ""
	}
	r := grid[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

func labelEqual(cell, label string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), label)
}

// FindHeaderRow scans a single column for a header label and returns its
// zero-based row index.
func FindHeaderRow(grid [][]string, col int, label string) (int, bool) {
	for i := range grid {
		if labelEqual(cellAt(grid, i, col), label) {
			return i, true
		}
	}
	return 0, false
}

// ParseDataset discovers the layout of a converted input grid and extracts
// the record block, the reference table, and the labeled scalars. A missing
// required column aborts with RequiredColumnMissing; the reference table and
// the theoretical total are optional here and surface as absent fields.
func ParseDataset(grid [][]string) (*Dataset, error) {
	headerRow, ok := FindHeaderRow(grid, colMark, labelMark)
	if !ok {
		return nil, errors.RequiredColumnMissing(labelMark)
	}

	xCol, yCol, etCol, ftCol := -1, -1, -1, -1
	for col := range grid[headerRow] {
		label := strings.ToUpper(strings.TrimSpace(cellAt(grid, headerRow, col)))
		switch {
		case label == "X":
			xCol = col
		case label == "Y":
			yCol = col
		case label == "FT":
			ftCol = col
		default:
			for _, et := range endTestLabels {
				if label == et {
					etCol = col
				}
			}
		}
	}
	if xCol < 0 || yCol < 0 || etCol < 0 {
		missing := []string{}
		if xCol < 0 {
			missing = append(missing, "X")
		}
		if yCol < 0 {
			missing = append(missing, "Y")
		}
		if etCol < 0 {
			missing = append(missing, "ET")
		}
		return nil, errors.RequiredColumnMissing(strings.Join(missing, ", "))
	}

	ds := &Dataset{}

	if slotRow, ok := FindHeaderRow(grid, colSlot, labelSlot); ok {
		raw := NormalizeCell(cellAt(grid, slotRow+1, colSlot))
		if slot, err := strconv.Atoi(raw); err == nil {
			ds.Slot = slot
		} else {
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("SLOT value %q below header is not numeric", raw))
			ds.Slot = -1
		}
	} else {
		ds.Slot = -1
	}

	seenMarks := map[string]bool{}
	for row := headerRow + 1; row < len(grid); row++ {
		et := NormalizeCell(cellAt(grid, row, etCol))
		if et == "" {
			break // end of the contiguous record block
		}
		rec := TestRecord{
			Slot:    ds.Slot,
			EndTest: et,
			Mark:    NormalizeCell(cellAt(grid, row, colMark)),
		}
		var err error
		if rec.X, err = strconv.Atoi(NormalizeCell(cellAt(grid, row, xCol))); err != nil {
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("row %d: X value %q is not numeric, row skipped", row+1, cellAt(grid, row, xCol)))
			continue
		}
		if rec.Y, err = strconv.Atoi(NormalizeCell(cellAt(grid, row, yCol))); err != nil {
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("row %d: Y value %q is not numeric, row skipped", row+1, cellAt(grid, row, yCol)))
			continue
		}
		if ftCol >= 0 {
			if ft, err := strconv.ParseFloat(NormalizeCell(cellAt(grid, row, ftCol)), 64); err == nil {
				rec.FailCount = ft
			}
		}
		ds.Records = append(ds.Records, rec)
		if rec.Mark != "" && !seenMarks[rec.Mark] {
			seenMarks[rec.Mark] = true
			ds.Marks = append(ds.Marks, rec.Mark)
		}
	}

	if row, ok := FindHeaderRow(grid, colSlot, labelTheoretical); ok {
		raw := NormalizeCell(cellAt(grid, row, colSlot+theoreticalOffset))
		if total, err := strconv.ParseFloat(raw, 64); err == nil {
			ds.Theoretical = total
			ds.HasTheoretical = true
		} else {
			ds.Warnings = append(ds.Warnings, fmt.Sprintf("THEORETICAL_NUM value %q is not numeric", raw))
		}
	}

	for row := headerRow + 1; row < len(grid); row++ {
		if !labelEqual(cellAt(grid, row, colSentinel), labelLoLimit) {
			continue
		}
		ds.HasReference = true
		for r := row + 1; r < len(grid); r++ {
			if NormalizeCell(cellAt(grid, r, colTestNo)) == "" {
				break
			}
			ds.Reference = append(ds.Reference, ReferenceLimit{
				TSNo:    NormalizeCell(cellAt(grid, r, 0)),
				TestNo:  NormalizeCell(cellAt(grid, r, 1)),
				Comment: NormalizeCell(cellAt(grid, r, 2)),
				Mode:    NormalizeCell(cellAt(grid, r, 3)),
				HiLimit: NormalizeCell(cellAt(grid, r, 4)),
				LoLimit: NormalizeCell(cellAt(grid, r, 5)),
			})
		}
		break
	}

	return ds, nil
}
