package t12

import (
	"strings"

	"t12fmt/internal/logger"
)

// Analysis is everything derived from the untouched sheet.
type Analysis struct {
	Grid   Grid
	Layout Layout
	Tags   Tags // nil unless the profile classifies rows
}

// Analyze detects the layout and, when the profile needs it, classifies rows.
func Analyze(g Grid, p Profile) *Analysis {
	a := &Analysis{
		Grid:   g,
		Layout: DetectLayout(g),
	}
	if p.Classify {
		a.Tags = Classify(g, a.Layout)
	}
	return a
}

// PlanDeletions merges every deletion policy that applies to the profile into
// one set of source rows.
func PlanDeletions(a *Analysis, p Profile, s Settings) *DeletionSet {
	rows := a.Grid.MaxRow()
	d := NewDeletionSet()

	for _, row := range a.Layout.HeaderBlock {
		if row > rows {
			logger.Debug("Header row beyond sheet, skipping", "row", row, "rows", rows)
			continue
		}
		d.Add(row)
	}

	if row, ok := findFooter(a.Grid, s.FooterMarker, s.FooterWindow); ok {
		logger.Debug("Found report footer", "row", row)
		d.Add(row)
	}

	if p.DeleteBlankLabels {
		d.Add(a.Tags.Rows(BlankToDelete)...)
	}

	if p.TrimTrailer {
		if row, ok := trailerRow(a, d); ok {
			d.Add(row)
		}
	}

	return d
}

// findFooter scans upward from the last row, at most window rows, for a
// column-A label containing marker.
func findFooter(g Grid, marker string, window int) (int, bool) {
	if marker == "" {
		return 0, false
	}
	last := g.MaxRow()
	for row := last; row > 0 && row > last-window; row-- {
		if strings.Contains(g.Value(row, labelCol), marker) {
			return row, true
		}
	}
	return 0, false
}

// trailerRow locates the Summary trailer. Its expected destination is where
// the header block alone would put it; the row actually sitting there after
// the deletions planned so far is removed only when its data band is blank.
func trailerRow(a *Analysis, planned *DeletionSet) (int, bool) {
	rows := a.Grid.MaxRow()
	trailer := a.Layout.SummaryTrailer

	expected, ok := NewIndexMap(rows, NewDeletionSet(a.Layout.HeaderBlock...)).Dest(trailer)
	if !ok {
		logger.Debug("Summary trailer beyond sheet, skipping", "row", trailer, "rows", rows)
		return 0, false
	}

	src, ok := NewIndexMap(rows, planned).Source(expected)
	if !ok {
		logger.Debug("Nothing at expected trailer position", "dest_row", expected)
		return 0, false
	}
	if !bandBlank(a.Grid, src) {
		logger.Debug("Trailer row holds data, keeping it", "row", src)
		return 0, false
	}
	return src, true
}
