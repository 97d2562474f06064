package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Write bundles the tables into one xlsx workbook, one sheet per
// table. Sheets with warehouse groups get a two-level header: the
// warehouse name merged across its metric columns on top, metrics
// below; base columns span both header rows.
func Write(w io.Writer, tables []Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, t := range tables {
		if err := writeSheet(f, t); err != nil {
			return fmt.Errorf("writing sheet %q: %w", t.Name, err)
		}
	}
	if len(tables) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("dropping default sheet: %w", err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("serializing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, t Table) error {
	if _, err := f.NewSheet(t.Name); err != nil {
		return err
	}

	grouped := false
	for _, c := range t.Columns {
		if c.Group != "" {
			grouped = true
			break
		}
	}
	headerRows := 1
	if grouped {
		headerRows = 2
	}

	if err := writeHeader(f, t, grouped); err != nil {
		return err
	}
	for ri, row := range t.Rows {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, headerRows+ri+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(t.Name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeHeader(f *excelize.File, t Table, grouped bool) error {
	for i, c := range t.Columns {
		top, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if !grouped {
			if err := f.SetCellValue(t.Name, top, c.Name); err != nil {
				return err
			}
			continue
		}
		bottom, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if c.Group == "" {
			if err := f.SetCellValue(t.Name, top, c.Name); err != nil {
				return err
			}
			if err := f.MergeCell(t.Name, top, bottom); err != nil {
				return err
			}
			continue
		}
		if err := f.SetCellValue(t.Name, top, c.Group); err != nil {
			return err
		}
		if err := f.SetCellValue(t.Name, bottom, c.Metric); err != nil {
			return err
		}
	}
	if grouped {
		return mergeGroupCells(f, t)
	}
	return nil
}

// mergeGroupCells merges the top header cell across each contiguous
// run of columns sharing a warehouse group.
func mergeGroupCells(f *excelize.File, t Table) error {
	start := 0
	for i := 1; i <= len(t.Columns); i++ {
		if i < len(t.Columns) && t.Columns[i].Group == t.Columns[start].Group {
			continue
		}
		if t.Columns[start].Group != "" && i-start > 1 {
			from, err := excelize.CoordinatesToCellName(start+1, 1)
			if err != nil {
				return err
			}
			to, err := excelize.CoordinatesToCellName(i, 1)
			if err != nil {
				return err
			}
			if err := f.MergeCell(t.Name, from, to); err != nil {
				return err
			}
		}
		start = i
	}
	return nil
}
