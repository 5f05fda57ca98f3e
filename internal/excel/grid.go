package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Grid is a read-only snapshot of a sheet's raw cell values. Rows and
// columns are addressed 1-based, like the workbook itself.
type Grid [][]string

// MaxRow is the number of the last row holding any value.
func (g Grid) MaxRow() int {
	return len(g)
}

// Value returns the cell at (row, col), or "" outside the populated area.
func (g Grid) Value(row, col int) string {
	if row < 1 || row > len(g) {
		return ""
	}
	cells := g[row-1]
	if col < 1 || col > len(cells) {
		return ""
	}
	return cells[col-1]
}

// Region is a rectangular cell range, inclusive on both ends.
type Region struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// Axes returns the top-left and bottom-right cell names of the region.
func (r Region) Axes() (string, string, error) {
	topLeft, err := excelize.CoordinatesToCellName(r.MinCol, r.MinRow)
	if err != nil {
		return "", "", err
	}
	bottomRight, err := excelize.CoordinatesToCellName(r.MaxCol, r.MaxRow)
	if err != nil {
		return "", "", err
	}
	return topLeft, bottomRight, nil
}

// Within reports whether the region lies entirely inside rows 1..maxRow and
// columns 1..maxCol.
func (r Region) Within(maxRow, maxCol int) bool {
	return r.MaxRow <= maxRow && r.MaxCol <= maxCol
}

func (r Region) String() string {
	topLeft, bottomRight, err := r.Axes()
	if err != nil {
		return fmt.Sprintf("R%dC%d:R%dC%d", r.MinRow, r.MinCol, r.MaxRow, r.MaxCol)
	}
	return topLeft + ":" + bottomRight
}

func parseRegion(start, end string) (Region, error) {
	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return Region{}, err
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return Region{}, err
	}
	return Region{
		MinRow: min(r1, r2),
		MinCol: min(c1, c2),
		MaxRow: max(r1, r2),
		MaxCol: max(c1, c2),
	}, nil
}

// ColumnName converts a 1-based column index to its letter form (1 -> "A").
func ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	return name
}

// ColumnIndex converts a column letter to its 1-based index ("A" -> 1).
func ColumnIndex(name string) int {
	col, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0
	}
	return col
}
