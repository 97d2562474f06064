package report

import (
	"sort"
	"strings"
	"time"
)

// BaseColumns is the fixed leading block every report sheet carries,
// in this order, before any per-warehouse group.
var BaseColumns = []string{
	"ID PART",
	"DESCRIPTION",
	"PRODUCT LINE",
	"TOTAL COMPRADO",
	"CANTIDAD COMPRADA",
	"CANTIDAD VENDIDA",
	"TOTAL TRASPASOS",
	"TOTAL VENDIDO",
	"Fecha Ult. Comp.",
}

// Column is one output column. Compound per-warehouse columns carry
// the warehouse in Group and the metric in Metric; base columns have
// an empty Group.
type Column struct {
	Name   string
	Group  string
	Metric string
}

// Table is one named sheet: a deterministic column layout plus rows of
// cell values ready for the workbook writer.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// Assemble lays report rows out as a wide table: the base block first,
// then every ALMACEN GENERAL column sorted, then the remaining
// warehouse columns sorted. The layout depends only on the set of
// compound cells present, never on input ordering, and cells absent
// from a row are back-filled with zero.
func Assemble(name string, rows []Row) Table {
	seen := make(map[string]bool)
	for _, r := range rows {
		for col := range r.Cells {
			seen[col] = true
		}
	}
	var general, others []string
	for col := range seen {
		if strings.HasPrefix(col, generalWarehouse) {
			general = append(general, col)
		} else {
			others = append(others, col)
		}
	}
	sort.Strings(general)
	sort.Strings(others)

	columns := baseColumnSet()
	for _, col := range append(general, others...) {
		columns = append(columns, splitCompound(col))
	}

	table := Table{Name: name, Columns: columns}
	for _, r := range rows {
		cells := []any{
			r.Part,
			r.Description,
			r.ProductLine,
			r.TotalBought,
			r.QuantityBought,
			r.QuantitySold.Cell(),
			r.TotalTransfers,
			r.TotalSold,
			dateCell(r.LastPurchase),
		}
		for _, col := range columns[len(BaseColumns):] {
			cells = append(cells, r.Cells[col.Name])
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

// AssembleRemainders lays remainder rows out on the base block alone:
// the unconsumed quantity and its rescaled total fill the purchase
// columns and every sold column is back-filled with zero.
func AssembleRemainders(name string, rows []Remainder) Table {
	table := Table{Name: name, Columns: baseColumnSet()}
	for _, r := range rows {
		table.Rows = append(table.Rows, []any{
			r.Part,
			r.Description,
			r.ProductLine,
			r.Total,
			r.Quantity,
			0.0,
			0.0,
			0.0,
			dateCell(r.Month),
		})
	}
	return table
}

func baseColumnSet() []Column {
	columns := make([]Column, 0, len(BaseColumns))
	for _, name := range BaseColumns {
		columns = append(columns, Column{Name: name})
	}
	return columns
}

// splitCompound breaks "{warehouse}_{metric}" at the last underscore;
// warehouse labels may themselves contain underscores, metrics do not.
func splitCompound(name string) Column {
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return Column{Name: name}
	}
	return Column{Name: name, Group: name[:idx], Metric: name[idx+1:]}
}

func dateCell(t time.Time) any {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
