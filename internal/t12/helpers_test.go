package t12

import (
	"bytes"
	"fmt"
	"testing"

	"t12fmt/internal/excel"

	"github.com/stretchr/testify/require"
)

// Shared fixtures for the t12 package tests.

const sheet = "Sheet1"

// rowSpec is a column-A label plus the values of columns B onward.
type rowSpec struct {
	label  string
	values []any
}

func label(text string) rowSpec {
	return rowSpec{label: text}
}

func amounts(text string, base float64) rowSpec {
	values := make([]any, 0, lastDataCol-firstDataCol+1)
	for i := 0; i <= lastDataCol-firstDataCol; i++ {
		values = append(values, base+float64(i))
	}
	return rowSpec{label: text, values: values}
}

func monthHeader() rowSpec {
	values := make([]any, 0, 13)
	for month := 1; month <= 12; month++ {
		values = append(values, fmt.Sprintf("2024-%02d", month))
	}
	values = append(values, "Total")
	return rowSpec{label: "Account", values: values}
}

// titleBlock returns the rows above the data body. The standard layout has a
// "Location:" line at row 3; the alternate layout does not.
func titleBlock(v Variant, property, date string) []rowSpec {
	rows := []rowSpec{
		label("ACME Property Management"),
		label("Twelve Month Statement"),
	}
	if v == Standard {
		rows = append(rows, label("Location: "+property))
	}
	rows = append(rows,
		label("Book = Accrual"),
		label(""),
		label(property),
		label("Trailing 12 Months"),
		label(date),
		label(""),
		label(""),
		label(""),
		monthHeader(),
		label(""),
	)
	return rows
}

// summaryRows builds a Summary report: a body of 46 rows with totals at the
// layout's literal rows, a blank trailer, a footer and one merged note row.
func summaryRows(v Variant, property, date string) []rowSpec {
	rows := titleBlock(v, property, date)
	l := LayoutFor(v)
	totals := make(map[int]bool)
	for _, row := range l.SummaryTotals {
		totals[row] = true
	}
	for row := l.BodyStart; row < l.SummaryTrailer; row++ {
		if totals[row] {
			rows = append(rows, amounts(fmt.Sprintf("Total %d", row), float64(row)))
			continue
		}
		rows = append(rows, amounts(fmt.Sprintf("Line %d", row), float64(row)))
	}
	rows = append(rows,
		label(""),
		label("Created on 03/16/2024 10:02 AM"),
		label("Notes"),
	)
	return rows
}

// detailRows builds a Detail report in the standard layout.
func detailRows(property, date string) []rowSpec {
	rows := titleBlock(Standard, property, date)
	rentRow := amounts("    Vacancy", 0)
	for i := range rentRow.values {
		rentRow.values[i] = "1,234.50"
	}
	return append(rows,
		label("  Income"),                          // 14 section
		amounts("    Gross Potential Rent", 1000),  // 15
		rentRow,                                    // 16
		amounts("    Net Rental Income", 900),      // 17 total
		label("Other Income Detail"),               // 18 blank label
		amounts("    Laundry", 10),                 // 19
		amounts("    Total Other Income", 10),      // 20 total
		label(""),                                  // 21 separator
		label("  Expenses"),                        // 22 section
		amounts("    Repairs", 50),                 // 23
		label("Memo: see attached"),                // 24 blank label
		amounts("    Total Expenses", 50),          // 25 total
		amounts("Net Operating Income", 850),       // 26 total
		label("Created on 03/16/2024 10:02 AM"),    // 27 footer
	)
}

func newWorkbook(t *testing.T, rows []rowSpec) *excel.Editor {
	t.Helper()
	e := excel.CreateNewFile()
	t.Cleanup(func() { _ = e.Close() })

	for i, spec := range rows {
		row := i + 1
		if spec.label != "" {
			require.NoError(t, e.SetCellValue(sheet, row, labelCol, spec.label))
		}
		for j, value := range spec.values {
			require.NoError(t, e.SetCellValue(sheet, row, firstDataCol+j, value))
		}
	}
	return e
}

func workbookBytes(t *testing.T, rows []rowSpec) *bytes.Buffer {
	t.Helper()
	e := newWorkbook(t, rows)
	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf))
	return &buf
}

func gridOf(rows []rowSpec) excel.Grid {
	g := make(excel.Grid, len(rows))
	for i, spec := range rows {
		cells := []string{spec.label}
		for _, value := range spec.values {
			cells = append(cells, fmt.Sprint(value))
		}
		g[i] = cells
	}
	return g
}

func text(t *testing.T, e *excel.Editor, row, col int) string {
	t.Helper()
	value, err := e.CellText(sheet, row, col)
	require.NoError(t, err)
	return value
}

func isBold(t *testing.T, e *excel.Editor, row, col int) bool {
	t.Helper()
	style, err := e.CellStyle(sheet, row, col)
	require.NoError(t, err)
	return style.Font != nil && style.Font.Bold
}
