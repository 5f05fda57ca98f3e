package t12

import (
	"t12fmt/internal/excel"
	"t12fmt/internal/logger"
)

// Destination-space anchor of the frozen panes: the first body row, column B.
var freezeAnchor = Cell{Row: 6, Col: 2}

var headerRowHeights = []float64{18, 18, 16}

// Plan is the complete, precomputed transformation of one sheet.
type Plan struct {
	Layout    Layout
	Deletions *DeletionSet
	Map       IndexMap
	Bold      []int // destination rows
	Anchor    Cell  // destination cell
}

// NewPlan computes deletions, the index map and every destination-space
// target before the sheet is modified.
func NewPlan(a *Analysis, p Profile, s Settings) *Plan {
	deletions := PlanDeletions(a, p, s)
	m := NewIndexMap(a.Grid.MaxRow(), deletions)

	anchor, ok := m.DestCell(Cell{Row: a.Layout.BodyStart, Col: freezeAnchor.Col})
	if !ok {
		anchor = freezeAnchor
	}

	return &Plan{
		Layout:    a.Layout,
		Deletions: deletions,
		Map:       m,
		Bold:      p.Totals.LocateTotals(a, m),
		Anchor:    anchor,
	}
}

// applyStyles runs the styling steps in order. Width precedes the row
// heights and the freeze waits for the deletions to settle.
func applyStyles(e *excel.Editor, sheet string, plan *Plan, p Profile, s Settings) error {
	if err := unmerge(e, sheet, p.Unmerge); err != nil {
		return err
	}

	for _, row := range plan.Layout.AlignRows {
		if _, ok := plan.Map.Dest(row); !ok {
			logger.Debug("Align target missing, skipping", "row", row)
			continue
		}
		if err := e.SetAlignLeft(sheet, row, labelCol); err != nil {
			return err
		}
	}

	if err := e.SetColumnWidth(sheet, firstDataCol, lastDataCol, s.ColumnWidth); err != nil {
		return err
	}

	for _, row := range plan.Deletions.Descending() {
		if row > plan.Map.rows {
			logger.Debug("Deletion target missing, skipping", "row", row)
			continue
		}
		if err := e.RemoveRow(sheet, row); err != nil {
			return err
		}
	}

	for _, row := range plan.Bold {
		if row > plan.Map.Rows() {
			logger.Debug("Bold target missing, skipping", "row", row)
			continue
		}
		for col := labelCol; col <= lastDataCol; col++ {
			if err := e.SetBold(sheet, row, col); err != nil {
				return err
			}
		}
	}

	if err := e.Freeze(sheet, plan.Anchor.Row, plan.Anchor.Col); err != nil {
		return err
	}

	for i, height := range headerRowHeights {
		if err := e.SetRowHeight(sheet, i+1, height); err != nil {
			return err
		}
	}

	return e.SetGridLines(sheet, false)
}

func unmerge(e *excel.Editor, sheet string, scope UnmergeScope) error {
	regions, err := e.MergedRegions(sheet)
	if err != nil {
		return err
	}

	for _, r := range regions {
		if scope == UnmergeHeaderArea && !r.Within(headerAreaRows, headerAreaCols) {
			continue
		}
		if err := e.Unmerge(sheet, r); err != nil {
			return err
		}
		logger.Debug("Unmerged region", "range", r.String())
	}
	return nil
}
