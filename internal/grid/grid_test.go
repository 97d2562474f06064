package grid

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"FACTURA: A-1", "", "x"}))
	_, err := f.NewSheet("Hoja2")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Hoja2", "A1", &[]any{"otro"}))

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)

	sheets, err := ReadWorkbook(&buf)
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, "Sheet1", sheets[0].Name)
	assert.Equal(t, "FACTURA: A-1", sheets[0].Rows[0][0])
	assert.Equal(t, "Hoja2", sheets[1].Name)
}

func TestReadWorkbookRejectsGarbage(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("not a workbook"))
	assert.Error(t, err)
}

func TestCellBoundsGuard(t *testing.T) {
	row := []string{"a", "b"}
	assert.Equal(t, "b", Cell(row, 1))
	assert.Equal(t, "", Cell(row, 5))
	assert.Equal(t, "", Cell(row, -1))
	assert.Equal(t, "", Cell(nil, 0))
}
