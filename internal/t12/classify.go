package t12

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RowTag is the semantic role of a row, derived from its content.
type RowTag int

const (
	Data RowTag = iota
	Header
	Total
	SectionHeader
	BlankToDelete
)

func (t RowTag) String() string {
	switch t {
	case Data:
		return "data"
	case Header:
		return "header"
	case Total:
		return "total"
	case SectionHeader:
		return "section"
	case BlankToDelete:
		return "blank"
	}
	return "unknown"
}

const (
	sectionIndent = "  "
	itemIndent    = "    "

	// Label-only rows at or above this row are never removed.
	blankLabelBoundary = 15
)

// Tags holds one tag per source row; Tags[0] is unused.
type Tags []RowTag

// Tag returns the tag of a row, Data for rows outside the classified range.
func (t Tags) Tag(row int) RowTag {
	if row < 1 || row >= len(t) {
		return Data
	}
	return t[row]
}

// Rows lists, ascending, the rows carrying tag.
func (t Tags) Rows(tag RowTag) []int {
	var rows []int
	for row := 1; row < len(t); row++ {
		if t[row] == tag {
			rows = append(rows, row)
		}
	}
	return rows
}

// Classify tags every row of the grid from its column-A label and whether
// the data band holds numbers.
func Classify(g Grid, l Layout) Tags {
	tags := make(Tags, g.MaxRow()+1)
	for row := 1; row <= g.MaxRow(); row++ {
		tags[row] = classifyRow(row, g.Value(row, labelCol), hasNumericData(g, row), l)
	}
	return tags
}

func classifyRow(row int, label string, numeric bool, l Layout) RowTag {
	// Indentation is significant, so only trailing whitespace is dropped here.
	indented := strings.TrimRight(label, " \t\r\n")
	text := strings.TrimSpace(label)

	switch {
	case row < l.BodyStart:
		return Header
	case strings.HasPrefix(indented, itemIndent+"Total "),
		text == "Net Operating Income",
		indented == itemIndent+"Net Rental Income":
		return Total
	case strings.HasPrefix(indented, sectionIndent) && !strings.HasPrefix(indented, itemIndent) && !numeric:
		return SectionHeader
	case row > blankLabelBoundary && !numeric && !strings.HasPrefix(indented, sectionIndent) && text != "":
		return BlankToDelete
	}
	return Data
}

// hasNumericData reports whether any cell in columns B..N parses as a number.
func hasNumericData(g Grid, row int) bool {
	for col := firstDataCol; col <= lastDataCol; col++ {
		if isNumeric(g.Value(row, col)) {
			return true
		}
	}
	return false
}

// bandBlank reports whether columns B..N of a row are all empty.
func bandBlank(g Grid, row int) bool {
	for col := firstDataCol; col <= lastDataCol; col++ {
		if strings.TrimSpace(g.Value(row, col)) != "" {
			return false
		}
	}
	return true
}

func isNumeric(value string) bool {
	s := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if s == "" {
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}
