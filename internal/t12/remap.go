package t12

import (
	"slices"
	"sort"
)

// DeletionSet collects source rows to remove. Rows are de-duplicated.
type DeletionSet struct {
	rows map[int]struct{}
}

func NewDeletionSet(rows ...int) *DeletionSet {
	d := &DeletionSet{rows: make(map[int]struct{})}
	d.Add(rows...)
	return d
}

func (d *DeletionSet) Add(rows ...int) {
	if d.rows == nil {
		d.rows = make(map[int]struct{})
	}
	for _, row := range rows {
		if row > 0 {
			d.rows[row] = struct{}{}
		}
	}
}

func (d *DeletionSet) Contains(row int) bool {
	_, ok := d.rows[row]
	return ok
}

func (d *DeletionSet) Len() int {
	return len(d.rows)
}

// Ascending returns the rows in increasing order.
func (d *DeletionSet) Ascending() []int {
	rows := make([]int, 0, len(d.rows))
	for row := range d.rows {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

// Descending returns the rows in the order they must be removed, so that each
// removal leaves the pending indices untouched.
func (d *DeletionSet) Descending() []int {
	rows := d.Ascending()
	slices.Reverse(rows)
	return rows
}

// IndexMap translates source rows to destination rows, the coordinates that
// exist once every deletion of the run has been applied.
type IndexMap struct {
	rows    int
	deleted []int
}

// NewIndexMap builds the map for a sheet of rowCount rows. Deleted rows
// outside 1..rowCount are ignored.
func NewIndexMap(rowCount int, d *DeletionSet) IndexMap {
	m := IndexMap{rows: rowCount}
	for _, row := range d.Ascending() {
		if row <= rowCount {
			m.deleted = append(m.deleted, row)
		}
	}
	return m
}

// Rows is the row count after deletion.
func (m IndexMap) Rows() int {
	return m.rows - len(m.deleted)
}

// Dest returns the destination row of src, false when src is deleted or
// outside the sheet.
func (m IndexMap) Dest(src int) (int, bool) {
	if src < 1 || src > m.rows {
		return 0, false
	}
	i, found := slices.BinarySearch(m.deleted, src)
	if found {
		return 0, false
	}
	return src - i, true
}

// Source returns the source row that lands on dest.
func (m IndexMap) Source(dest int) (int, bool) {
	if dest < 1 || dest > m.Rows() {
		return 0, false
	}
	src := dest
	for _, row := range m.deleted {
		if row > src {
			break
		}
		src++
	}
	return src, true
}

// DestRows maps a list of source rows, dropping deleted or missing ones. The
// result is ascending and free of duplicates.
func (m IndexMap) DestRows(src []int) []int {
	var rows []int
	for _, row := range src {
		if dest, ok := m.Dest(row); ok {
			rows = append(rows, dest)
		}
	}
	slices.Sort(rows)
	return slices.Compact(rows)
}

// Cell is a 1-based sheet coordinate.
type Cell struct {
	Row, Col int
}

// DestCell converts a source-space style target into destination space.
func (m IndexMap) DestCell(c Cell) (Cell, bool) {
	row, ok := m.Dest(c.Row)
	if !ok {
		return Cell{}, false
	}
	return Cell{Row: row, Col: c.Col}, true
}
