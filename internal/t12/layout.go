package t12

import "strings"

// Grid is the read-only cell view the engine classifies. Rows and columns
// are 1-based.
type Grid interface {
	MaxRow() int
	Value(row, col int) string
}

// Variant identifies one of the known physical arrangements of the
// title/metadata block.
type Variant int

const (
	Standard Variant = iota
	Alternate
)

func (v Variant) String() string {
	switch v {
	case Standard:
		return "standard"
	case Alternate:
		return "alternate"
	}
	return "unknown"
}

const (
	probeRow      = 3
	probeCol      = 1
	locationLabel = "Location:"

	labelCol     = 1
	firstDataCol = 2
	lastDataCol  = 14
)

// Layout holds the source-space row tables for one variant.
type Layout struct {
	Variant Variant

	// HeaderBlock lists the title, metadata and spacer rows that are always removed.
	HeaderBlock []int

	// AlignRows are the column-A cells carrying property, report title and date.
	AlignRows []int

	// BodyStart is the first row of the data body.
	BodyStart int

	// SummaryTotals are the fixed total rows of a Summary report.
	SummaryTotals []int

	// SummaryTrailer is the synthetic last row of a Summary report.
	SummaryTrailer int
}

// LayoutFor returns the row tables for a variant.
func LayoutFor(v Variant) Layout {
	switch v {
	case Standard:
		return Layout{
			Variant:        Standard,
			HeaderBlock:    []int{1, 2, 3, 4, 5, 9, 10, 11},
			AlignRows:      []int{6, 7, 8},
			BodyStart:      14,
			SummaryTotals:  []int{21, 25, 43, 45, 55},
			SummaryTrailer: 60,
		}
	case Alternate:
		// No "Location:" line, so everything above the spacer block sits one row higher.
		return Layout{
			Variant:        Alternate,
			HeaderBlock:    []int{1, 2, 3, 4, 8, 9, 10},
			AlignRows:      []int{5, 6, 7},
			BodyStart:      13,
			SummaryTotals:  []int{20, 24, 42, 44, 54},
			SummaryTrailer: 59,
		}
	}
	panic("t12: unknown layout variant " + v.String())
}

// DetectLayout inspects the probe cell (A3). Anything that does not carry the
// standard location label is treated as the alternate layout.
func DetectLayout(g Grid) Layout {
	if strings.Contains(g.Value(probeRow, probeCol), locationLabel) {
		return LayoutFor(Standard)
	}
	return LayoutFor(Alternate)
}
