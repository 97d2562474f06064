package grid

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet materialized as an untyped cell grid. BPro
// exports carry no header row: column positions are convention and
// section markers live inside cell text, so rows are kept raw.
type Sheet struct {
	Name string
	Rows [][]string
}

// ReadWorkbook loads every sheet of an xlsx/xls workbook into memory.
func ReadWorkbook(reader io.Reader) ([]Sheet, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	names := file.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		rows, err := file.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}

// Cell returns the value at idx, or "" when the row is ragged short.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
