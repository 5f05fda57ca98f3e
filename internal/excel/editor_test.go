package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheet = "Sheet1"

func TestEditorGrid(t *testing.T) {
	t.Run("Should snapshot raw values with 1-based addressing", func(t *testing.T) {
		e := CreateNewFile()
		defer e.Close()

		require.NoError(t, e.SetCellValue(sheet, 1, 1, "Oak Ridge"))
		require.NoError(t, e.SetCellValue(sheet, 3, 2, 1234.5))

		g, err := e.Grid(sheet)
		require.NoError(t, err)
		assert.Equal(t, 3, g.MaxRow())
		assert.Equal(t, "Oak Ridge", g.Value(1, 1))
		assert.Equal(t, "1234.5", g.Value(3, 2))
		assert.Equal(t, "", g.Value(2, 1))
		assert.Equal(t, "", g.Value(9, 9))
		assert.Equal(t, "", g.Value(0, 1))
	})
}

func TestColumnConversions(t *testing.T) {
	assert.Equal(t, "A", ColumnName(1))
	assert.Equal(t, "N", ColumnName(14))
	assert.Equal(t, "AA", ColumnName(27))
	assert.Equal(t, "", ColumnName(0))
	assert.Equal(t, 14, ColumnIndex("N"))
	assert.Equal(t, 27, ColumnIndex("AA"))
	assert.Equal(t, 0, ColumnIndex("1"))
}

func TestMergedRegions(t *testing.T) {
	t.Run("Should list and remove merged ranges", func(t *testing.T) {
		e := CreateNewFile()
		defer e.Close()

		require.NoError(t, e.SetCellValue(sheet, 1, 1, "Title"))
		require.NoError(t, e.MergeCells(sheet, Region{MinRow: 1, MinCol: 1, MaxRow: 1, MaxCol: 14}))
		require.NoError(t, e.MergeCells(sheet, Region{MinRow: 70, MinCol: 1, MaxRow: 71, MaxCol: 2}))

		regions, err := e.MergedRegions(sheet)
		require.NoError(t, err)
		require.Len(t, regions, 2)
		assert.Contains(t, regions, Region{MinRow: 1, MinCol: 1, MaxRow: 1, MaxCol: 14})
		assert.Equal(t, "A1:N1", Region{MinRow: 1, MinCol: 1, MaxRow: 1, MaxCol: 14}.String())

		require.NoError(t, e.Unmerge(sheet, Region{MinRow: 1, MinCol: 1, MaxRow: 1, MaxCol: 14}))
		regions, err = e.MergedRegions(sheet)
		require.NoError(t, err)
		assert.Equal(t, []Region{{MinRow: 70, MinCol: 1, MaxRow: 71, MaxCol: 2}}, regions)

		text, err := e.CellText(sheet, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, "Title", text)
	})

	t.Run("Should test containment against a bound", func(t *testing.T) {
		r := Region{MinRow: 2, MinCol: 1, MaxRow: 60, MaxCol: 14}
		assert.True(t, r.Within(60, 14))
		assert.False(t, r.Within(59, 14))
		assert.False(t, r.Within(60, 13))
	})
}

func TestStyling(t *testing.T) {
	t.Run("Should keep existing attributes when bolding", func(t *testing.T) {
		e := CreateNewFile()
		defer e.Close()

		require.NoError(t, e.SetCellValue(sheet, 2, 1, "Total Income"))
		require.NoError(t, e.SetAlignLeft(sheet, 2, 1))
		require.NoError(t, e.SetBold(sheet, 2, 1))
		require.NoError(t, e.SetBold(sheet, 2, 2))

		style, err := e.CellStyle(sheet, 2, 1)
		require.NoError(t, err)
		require.NotNil(t, style.Font)
		require.NotNil(t, style.Alignment)
		assert.True(t, style.Font.Bold)
		assert.Equal(t, "left", style.Alignment.Horizontal)

		style, err = e.CellStyle(sheet, 2, 2)
		require.NoError(t, err)
		require.NotNil(t, style.Font)
		assert.True(t, style.Font.Bold)
	})

	t.Run("Should set widths heights panes and gridlines", func(t *testing.T) {
		e := CreateNewFile()
		defer e.Close()

		require.NoError(t, e.SetColumnWidth(sheet, 2, 14, 12))
		require.NoError(t, e.SetRowHeight(sheet, 1, 18))
		require.NoError(t, e.Freeze(sheet, 6, 2))
		require.NoError(t, e.SetGridLines(sheet, false))

		width, err := e.ColumnWidth(sheet, 14)
		require.NoError(t, err)
		assert.Equal(t, 12.0, width)

		height, err := e.RowHeight(sheet, 1)
		require.NoError(t, err)
		assert.Equal(t, 18.0, height)

		anchor, err := e.FreezeAnchor(sheet)
		require.NoError(t, err)
		assert.Equal(t, "B6", anchor)

		visible, err := e.GridLinesVisible(sheet)
		require.NoError(t, err)
		assert.False(t, visible)
	})
}

func TestRemoveRow(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	for row := 1; row <= 3; row++ {
		require.NoError(t, e.SetCellValue(sheet, row, 1, row))
	}
	require.NoError(t, e.RemoveRow(sheet, 2))

	g, err := e.Grid(sheet)
	require.NoError(t, err)
	assert.Equal(t, 2, g.MaxRow())
	assert.Equal(t, "3", g.Value(2, 1))
}

func TestRoundTrip(t *testing.T) {
	t.Run("Should reopen a written workbook", func(t *testing.T) {
		e := CreateNewFile()
		require.NoError(t, e.SetCellValue(sheet, 1, 1, "Oak Ridge"))

		var buf bytes.Buffer
		require.NoError(t, e.Write(&buf))
		require.NoError(t, e.Close())

		reopened, err := OpenReader(&buf)
		require.NoError(t, err)
		defer reopened.Close()

		assert.Equal(t, sheet, reopened.ActiveSheet())
		text, err := reopened.CellText(sheet, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, "Oak Ridge", text)
	})

	t.Run("Should fail on bytes that are not a workbook", func(t *testing.T) {
		_, err := OpenReader(bytes.NewBufferString("not a zip"))
		assert.Error(t, err)
	})

	t.Run("Should save to disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.xlsx")
		e := CreateNewFile()
		require.NoError(t, e.SaveAs(path))
		require.NoError(t, e.Close())
		assert.True(t, Exists(path))
		assert.False(t, Exists(filepath.Dir(path)))

		opened, err := OpenFile(path)
		require.NoError(t, err)
		require.NoError(t, opened.Save())
		require.NoError(t, opened.Close())
	})
}

func TestFindWorkbooks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.XLSX", "~$a.xlsx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "c.xlsx"), nil, 0o600))

	files, err := FindWorkbooks(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.XLSX"),
		filepath.Join(dir, "b.xlsx"),
		filepath.Join(dir, "nested", "c.xlsx"),
	}, files)
}
