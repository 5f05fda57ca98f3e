package excel

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

type Editor struct {
	file     *excelize.File
	filepath string

	// derived style IDs keyed by source style and the change applied to it
	derived map[styleKey]int
}

type styleKey struct {
	base   int
	change string
}

func newEditor(file *excelize.File, path string) *Editor {
	return &Editor{
		file:     file,
		filepath: path,
		derived:  make(map[styleKey]int),
	}
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return newEditor(file, filepath), nil
}

// OpenReader reads a workbook from a byte stream
func OpenReader(r io.Reader) (*Editor, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	return newEditor(file, ""), nil
}

// CreateNewFile creates a new Excel file in memory
func CreateNewFile() *Editor {
	return newEditor(excelize.NewFile(), "")
}

// ActiveSheet returns the name of the sheet Excel opens on
func (e *Editor) ActiveSheet() string {
	return e.file.GetSheetName(e.file.GetActiveSheetIndex())
}

// GetSheetNames returns all sheet names in the workbook
func (e *Editor) GetSheetNames() []string {
	return e.file.GetSheetList()
}

// Grid snapshots the raw (unformatted) cell values of a sheet
func (e *Editor) Grid(sheet string) (Grid, error) {
	rows, err := e.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return Grid(rows), nil
}

// SetCellValue sets a value in a specific cell
func (e *Editor) SetCellValue(sheet string, row, col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return e.file.SetCellValue(sheet, cell, value)
}

// CellText returns the displayed (formatted) value of a cell
func (e *Editor) CellText(sheet string, row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return e.file.GetCellValue(sheet, cell)
}

// CellRaw returns the stored value of a cell without number formatting
func (e *Editor) CellRaw(sheet string, row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	return e.file.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
}

// MergeCells merges the rectangle described by r
func (e *Editor) MergeCells(sheet string, r Region) error {
	topLeft, bottomRight, err := r.Axes()
	if err != nil {
		return err
	}
	return e.file.MergeCell(sheet, topLeft, bottomRight)
}

// MergedRegions lists the merged rectangles of a sheet
func (e *Editor) MergedRegions(sheet string) ([]Region, error) {
	merged, err := e.file.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get merged cells: %w", err)
	}

	regions := make([]Region, 0, len(merged))
	for _, mc := range merged {
		r, err := parseRegion(mc.GetStartAxis(), mc.GetEndAxis())
		if err != nil {
			continue
		}
		regions = append(regions, r)
	}
	return regions, nil
}

// Unmerge removes a merged rectangle, keeping the top-left value
func (e *Editor) Unmerge(sheet string, r Region) error {
	topLeft, bottomRight, err := r.Axes()
	if err != nil {
		return err
	}
	return e.file.UnmergeCell(sheet, topLeft, bottomRight)
}

// SetColumnWidth sets the width of columns first..last (1-based, inclusive)
func (e *Editor) SetColumnWidth(sheet string, first, last int, width float64) error {
	start, err := excelize.ColumnNumberToName(first)
	if err != nil {
		return err
	}
	end, err := excelize.ColumnNumberToName(last)
	if err != nil {
		return err
	}
	return e.file.SetColWidth(sheet, start, end, width)
}

// ColumnWidth returns the width of a column
func (e *Editor) ColumnWidth(sheet string, col int) (float64, error) {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return 0, err
	}
	return e.file.GetColWidth(sheet, name)
}

// SetRowHeight sets the height of a row in points
func (e *Editor) SetRowHeight(sheet string, row int, height float64) error {
	return e.file.SetRowHeight(sheet, row, height)
}

// RowHeight returns the height of a row in points
func (e *Editor) RowHeight(sheet string, row int) (float64, error) {
	return e.file.GetRowHeight(sheet, row)
}

// RemoveRow deletes a row and shifts everything below it up by one
func (e *Editor) RemoveRow(sheet string, row int) error {
	if err := e.file.RemoveRow(sheet, row); err != nil {
		return fmt.Errorf("failed to remove row %d: %w", row, err)
	}
	return nil
}

// Freeze freezes the rows above and the columns left of the anchor cell
func (e *Editor) Freeze(sheet string, row, col int) error {
	anchor, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	activePane := "bottomRight"
	switch {
	case col == 1:
		activePane = "bottomLeft"
	case row == 1:
		activePane = "topRight"
	}

	return e.file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      col - 1,
		YSplit:      row - 1,
		TopLeftCell: anchor,
		ActivePane:  activePane,
	})
}

// FreezeAnchor returns the top-left unfrozen cell, or "" when nothing is frozen
func (e *Editor) FreezeAnchor(sheet string) (string, error) {
	panes, err := e.file.GetPanes(sheet)
	if err != nil {
		return "", err
	}
	if !panes.Freeze {
		return "", nil
	}
	return panes.TopLeftCell, nil
}

// SetGridLines toggles gridline display on the sheet's first view
func (e *Editor) SetGridLines(sheet string, visible bool) error {
	return e.file.SetSheetView(sheet, 0, &excelize.ViewOptions{
		ShowGridLines: &visible,
	})
}

// GridLinesVisible reports whether gridlines are shown
func (e *Editor) GridLinesVisible(sheet string) (bool, error) {
	view, err := e.file.GetSheetView(sheet, 0)
	if err != nil {
		return false, err
	}
	if view.ShowGridLines == nil {
		return true, nil
	}
	return *view.ShowGridLines, nil
}

// CellStyle returns the resolved style definition of a cell
func (e *Editor) CellStyle(sheet string, row, col int) (*excelize.Style, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, err
	}
	id, err := e.file.GetCellStyle(sheet, cell)
	if err != nil {
		return nil, err
	}
	return e.file.GetStyle(id)
}

// SetBold makes the font of a cell bold while keeping its other style attributes
func (e *Editor) SetBold(sheet string, row, col int) error {
	return e.restyle(sheet, row, col, "bold", func(style *excelize.Style) {
		if style.Font == nil {
			style.Font = &excelize.Font{}
		}
		style.Font.Bold = true
	})
}

// SetAlignLeft left-aligns a cell while keeping its other style attributes
func (e *Editor) SetAlignLeft(sheet string, row, col int) error {
	return e.restyle(sheet, row, col, "left", func(style *excelize.Style) {
		if style.Alignment == nil {
			style.Alignment = &excelize.Alignment{}
		}
		style.Alignment.Horizontal = "left"
	})
}

// restyle derives a new style from the cell's current one and applies it.
// Derived IDs are cached so cells sharing a style share the result.
func (e *Editor) restyle(sheet string, row, col int, change string, apply func(*excelize.Style)) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	base, err := e.file.GetCellStyle(sheet, cell)
	if err != nil {
		return fmt.Errorf("failed to read style of %s: %w", cell, err)
	}

	key := styleKey{base: base, change: change}
	id, ok := e.derived[key]
	if !ok {
		style, err := e.file.GetStyle(base)
		if err != nil {
			return fmt.Errorf("failed to resolve style %d: %w", base, err)
		}
		apply(style)

		id, err = e.file.NewStyle(style)
		if err != nil {
			return fmt.Errorf("failed to create style for %s: %w", cell, err)
		}
		e.derived[key] = id
	}

	return e.file.SetCellStyle(sheet, cell, cell, id)
}

// Write streams the workbook in xlsx format
func (e *Editor) Write(w io.Writer) error {
	return e.file.Write(w)
}

// Save saves the Excel file to the original filepath
func (e *Editor) Save() error {
	if e.filepath == "" {
		return fmt.Errorf("no filepath specified, use SaveAs instead")
	}
	return e.file.SaveAs(e.filepath)
}

// SaveAs saves the Excel file with a new name
func (e *Editor) SaveAs(filepath string) error {
	e.filepath = filepath
	return e.file.SaveAs(filepath)
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}

// Exists reports whether a regular file is present at path
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
