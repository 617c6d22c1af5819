package wafermap

import (
	"fmt"
	"sort"
	"strconv"

	"wafersight/domain/wafer"
	"wafersight/internal/errors"
)

// CornerLabel sits at the top-left of the grid and at the intersection of the
// mirrored header row and column.
const CornerLabel = "No."

// Cell is one rendered grid cell with its formatting hints.
type Cell struct {
	Value   string
	Fill    wafer.RGB
	HasFill bool
	Bold    bool
	Header  bool // coordinate header or mirrored copy of one
}

// Grid is the fully rendered wafermap: a data grid with coordinate headers in
// row 0 and column 0, extended by a mirrored header row and column at the far
// edges. The whole extended grid is rendered borderless-gridline, centered,
// with a uniform border weight by the sink.
type Grid struct {
	SheetName string
	Cells     [][]Cell
	DataRows  int // rows before the mirrored row, header included
	DataCols  int // columns before the mirrored column, header included
	Warnings  []string
}

// Render runs the wafermap pipeline over one wafer's record set:
// validate, project onto the coordinate grid, colorize through the mark
// index and palette, mirror the header row and column, finalize styling.
// Validation failures abort before any grid is allocated; later anomalies
// are per-cell, accumulated as warnings, and leave a sentinel-colored cell.
func Render(records []wafer.TestRecord, slot int, index map[string]string) (*Grid, error) {
	if slot < 0 {
		return nil, errors.InvalidInput("wafermap requires a resolvable SLOT identifier")
	}
	if len(records) == 0 {
		return nil, errors.InvalidInput("wafermap requires at least one record with X, Y and end-test values")
	}

	g := project(records, slot)
	colorize(g, index)
	mirror(g)
	return g, nil
}

// project assigns each populated (x, y) coordinate its representative
// end-test code: the minimum observed for that die, numeric codes ordered
// before non-numeric ones. Coordinates with no records stay empty.
func project(records []wafer.TestRecord, slot int) *Grid {
	type coord struct{ x, y int }
	repr := map[coord]string{}
	xsSeen := map[int]bool{}
	ysSeen := map[int]bool{}

	for _, rec := range records {
		if rec.EndTest == "" {
			continue
		}
		xsSeen[rec.X] = true
		ysSeen[rec.Y] = true
		key := coord{rec.X, rec.Y}
		if cur, ok := repr[key]; !ok || lessEndTest(rec.EndTest, cur) {
			repr[key] = rec.EndTest
		}
	}

	xs := sortedKeys(xsSeen)
	ys := sortedKeys(ysSeen)

	rows := len(ys) + 1
	cols := len(xs) + 1
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}

	cells[0][0] = headerCell(CornerLabel)
	for c, x := range xs {
		cells[0][c+1] = headerCell(strconv.Itoa(x))
	}
	for r, y := range ys {
		cells[r+1][0] = headerCell(strconv.Itoa(y))
		for c, x := range xs {
			if et, ok := repr[coord{x, y}]; ok {
				cells[r+1][c+1] = Cell{Value: et}
			}
		}
	}

	return &Grid{
		SheetName: fmt.Sprintf("W#%02d_Wafermap_by_End_Test_No", slot),
		Cells:     cells,
		DataRows:  rows,
		DataCols:  cols,
	}
}

// colorize resolves every non-empty data cell through the mark index and the
// palette. Both unresolved outcomes substitute the sentinel fill and report a
// warning naming the offending value; neither aborts the render.
func colorize(g *Grid, index map[string]string) {
	for r := 1; r < g.DataRows; r++ {
		for c := 1; c < g.DataCols; c++ {
			cell := &g.Cells[r][c]
			if cell.Value == "" {
				continue
			}
			mark, ok := index[cell.Value]
			if !ok {
				g.Warnings = append(g.Warnings, fmt.Sprintf("no classification mark found for end test '%s'", cell.Value))
				cell.Fill = SentinelFill
				cell.HasFill = true
				continue
			}
			fill, ok := Palette[mark]
			if !ok {
				g.Warnings = append(g.Warnings, fmt.Sprintf("no color mapping for classification mark '%s'", mark))
				cell.Fill = SentinelFill
				cell.HasFill = true
				continue
			}
			cell.Fill = fill
			cell.HasFill = true
		}
	}
}

// mirror appends a copy of the coordinate header row after the last data row
// and a copy of the header column after the last data column, with the corner
// label at their intersection. Mirrored cells are cosmetic duplicates; they
// carry header styling and are never re-colorized.
func mirror(g *Grid) {
	mirrored := make([]Cell, g.DataCols)
	for c := 0; c < g.DataCols; c++ {
		mirrored[c] = headerCell(g.Cells[0][c].Value)
	}
	g.Cells = append(g.Cells, mirrored)

	for r := 0; r < g.DataRows; r++ {
		g.Cells[r] = append(g.Cells[r], headerCell(g.Cells[r][0].Value))
	}
	g.Cells[g.DataRows] = append(g.Cells[g.DataRows], headerCell(CornerLabel))
}

func headerCell(value string) Cell {
	return Cell{Value: value, Fill: HeaderFill, HasFill: true, Bold: true, Header: true}
}

func lessEndTest(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		return fa < fb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
