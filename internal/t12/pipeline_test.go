package t12

import (
	"strconv"
	"testing"

	"t12fmt/internal/excel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSummary(t *testing.T) {
	for _, v := range []Variant{Standard, Alternate} {
		t.Run("Should normalize a "+v.String()+" summary", func(t *testing.T) {
			rows := summaryRows(v, "Oak Ridge / Phase 2", "March 15, 2024")
			e := newWorkbook(t, rows)
			require.NoError(t, e.MergeCells(sheet, excel.Region{MinRow: 1, MinCol: 1, MaxRow: 1, MaxCol: 14}))
			notes := len(rows)
			require.NoError(t, e.MergeCells(sheet, excel.Region{MinRow: notes, MinCol: 1, MaxRow: notes, MaxCol: 14}))

			result, err := Format(e, sheet, Summary.Profile(), DefaultSettings())
			require.NoError(t, err)

			assert.Equal(t, v.String(), result.Variant)
			assert.Equal(t, "summary", result.Kind)
			assert.Equal(t, "Oak_Ridge_-_Phase_2_T12 Summary_2024-03.xlsx", result.Name)
			assert.Equal(t, []int{13, 17, 35, 37, 47}, result.Bold)

			assert.Equal(t, "Oak Ridge / Phase 2", text(t, e, 1, 1))
			assert.Equal(t, "Trailing 12 Months", text(t, e, 2, 1))
			assert.Equal(t, "March 15, 2024", text(t, e, 3, 1))
			assert.Equal(t, "Account", text(t, e, 4, 1))

			body := LayoutFor(v).BodyStart
			assert.Equal(t, "Line "+strconv.Itoa(body), text(t, e, 6, 1))

			grid, err := e.Grid(sheet)
			require.NoError(t, err)
			assert.Equal(t, 52, grid.MaxRow())
			assert.Equal(t, "Notes", grid.Value(52, 1))

			for _, row := range result.Bold {
				assert.True(t, isBold(t, e, row, 1), "row %d", row)
				assert.True(t, isBold(t, e, row, 14), "row %d", row)
				assert.Contains(t, text(t, e, row, 1), "Total")
			}
			assert.False(t, isBold(t, e, 6, 1))
			assert.False(t, isBold(t, e, 14, 1))

			style, err := e.CellStyle(sheet, 1, 1)
			require.NoError(t, err)
			require.NotNil(t, style.Alignment)
			assert.Equal(t, "left", style.Alignment.Horizontal)

			regions, err := e.MergedRegions(sheet)
			require.NoError(t, err)
			require.Len(t, regions, 1)
			assert.Equal(t, 1, regions[0].MinCol)
			assert.Equal(t, 14, regions[0].MaxCol)

			assertCanonicalView(t, e)
		})
	}

	t.Run("Should skip literal rows a short sheet does not have", func(t *testing.T) {
		rows := summaryRows(Standard, "Oak Ridge", "March 15, 2024")[:30]
		e := newWorkbook(t, rows)

		result, err := Format(e, sheet, Summary.Profile(), DefaultSettings())
		require.NoError(t, err)

		assert.Equal(t, []int{13, 17}, result.Bold)
		assert.True(t, isBold(t, e, 13, 1))
		assert.True(t, isBold(t, e, 17, 1))

		grid, err := e.Grid(sheet)
		require.NoError(t, err)
		assert.Equal(t, 22, grid.MaxRow())
		assertCanonicalView(t, e)
	})
}

func TestFormatDetail(t *testing.T) {
	rows := detailRows("Oak Ridge / Phase 2", "March 15, 2024")
	e := newWorkbook(t, rows)
	require.NoError(t, e.MergeCells(sheet, excel.Region{MinRow: 1, MinCol: 1, MaxRow: 1, MaxCol: 14}))
	require.NoError(t, e.MergeCells(sheet, excel.Region{MinRow: 21, MinCol: 1, MaxRow: 21, MaxCol: 14}))

	before := Classify(gridOf(rows), LayoutFor(Standard))

	result, err := Format(e, sheet, Detail.Profile(), DefaultSettings())
	require.NoError(t, err)

	t.Run("Should name the output as an income statement", func(t *testing.T) {
		assert.Equal(t, "Oak_Ridge_-_Phase_2_T12 Income Statement_2024-03.xlsx", result.Name)
		assert.Equal(t, "detail", result.Kind)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 9, 10, 11, 18, 24, 27}, result.Deleted)
	})

	t.Run("Should remove label-only rows and keep separators", func(t *testing.T) {
		grid, err := e.Grid(sheet)
		require.NoError(t, err)
		assert.Equal(t, 16, grid.MaxRow())
		assert.Equal(t, "  Income", grid.Value(6, 1))
		assert.Equal(t, "", grid.Value(12, 1))
		assert.Equal(t, "Net Operating Income", grid.Value(16, 1))
	})

	t.Run("Should bold totals and never section headers", func(t *testing.T) {
		m := NewIndexMap(len(rows), NewDeletionSet(result.Deleted...))
		for src := 1; src <= len(rows); src++ {
			dest, ok := m.Dest(src)
			if !ok {
				continue
			}
			switch before.Tag(src) {
			case Total:
				assert.True(t, isBold(t, e, dest, 1), "total row %d", src)
				assert.True(t, isBold(t, e, dest, 14), "total row %d", src)
			case SectionHeader:
				assert.False(t, isBold(t, e, dest, 1), "section row %d", src)
			}
		}
		assert.Equal(t, []int{9, 11, 15, 16}, result.Bold)
	})

	t.Run("Should unmerge every region", func(t *testing.T) {
		regions, err := e.MergedRegions(sheet)
		require.NoError(t, err)
		assert.Empty(t, regions)
	})

	t.Run("Should leave nothing for a second pass to delete", func(t *testing.T) {
		grid, err := e.Grid(sheet)
		require.NoError(t, err)
		tags := Classify(grid, DetectLayout(grid))
		assert.Empty(t, tags.Rows(BlankToDelete))
	})

	t.Run("Should freeze at the first body row", func(t *testing.T) {
		assertCanonicalView(t, e)
	})
}

func TestFormatUnknownDate(t *testing.T) {
	e := newWorkbook(t, summaryRows(Standard, "Oak Ridge", "TBD"))

	result, err := Format(e, sheet, Summary.Profile(), DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, unknownDate, result.Period)
	assert.Equal(t, "Oak_Ridge_T12 Summary_Unknown_Date.xlsx", result.Name)
}

func assertCanonicalView(t *testing.T, e *excel.Editor) {
	t.Helper()

	anchor, err := e.FreezeAnchor(sheet)
	require.NoError(t, err)
	assert.Equal(t, "B6", anchor)

	for i, want := range []float64{18, 18, 16} {
		height, err := e.RowHeight(sheet, i+1)
		require.NoError(t, err)
		assert.Equal(t, want, height)
	}

	for col := firstDataCol; col <= lastDataCol; col++ {
		width, err := e.ColumnWidth(sheet, col)
		require.NoError(t, err)
		assert.Equal(t, 12.0, width)
	}

	visible, err := e.GridLinesVisible(sheet)
	require.NoError(t, err)
	assert.False(t, visible)
}
