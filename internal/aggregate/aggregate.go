// Package aggregate collapses scanned record lists into one row per
// part (optionally per calendar month). The only reducers are sum for
// quantities and totals, first-seen for descriptive text and max for
// dates, which keeps aggregation order-independent across partitions.
package aggregate

import (
	"sort"
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/scan"
)

type Row struct {
	Part        string
	Quantity    float64
	Total       float64
	Description string
	ProductLine string
	LastDate    time.Time
}

// MonthRow is one purchase cohort: every purchase of a part within one
// calendar month, treated as a single depletable batch.
type MonthRow struct {
	Row
	Month time.Time
}

// PurchasesByPart groups purchases by part id.
func PurchasesByPart(records []scan.Purchase) []Row {
	byPart := make(map[string]*Row)
	for _, r := range records {
		row, ok := byPart[r.Part]
		if !ok {
			row = &Row{Part: r.Part, Description: r.Description, ProductLine: r.ProductLine}
			byPart[r.Part] = row
		}
		row.Quantity += r.Quantity
		row.Total += r.Total
		if r.InvoiceDate.After(row.LastDate) {
			row.LastDate = r.InvoiceDate
		}
	}
	return sortRows(byPart)
}

// PurchasesByPartMonth groups purchases into part × month cohorts,
// ordered oldest month first so the remainder allocator can deplete
// them chronologically.
func PurchasesByPartMonth(records []scan.Purchase) []MonthRow {
	type key struct {
		part  string
		month time.Time
	}
	byCohort := make(map[key]*MonthRow)
	for _, r := range records {
		if r.InvoiceDate.IsZero() {
			continue
		}
		month := time.Date(r.InvoiceDate.Year(), r.InvoiceDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		k := key{r.Part, month}
		row, ok := byCohort[k]
		if !ok {
			row = &MonthRow{Row: Row{Part: r.Part, Description: r.Description, ProductLine: r.ProductLine}, Month: month}
			byCohort[k] = row
		}
		row.Quantity += r.Quantity
		row.Total += r.Total
		if r.InvoiceDate.After(row.LastDate) {
			row.LastDate = r.InvoiceDate
		}
	}

	out := make([]MonthRow, 0, len(byCohort))
	for _, row := range byCohort {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Month.Equal(out[j].Month) {
			return out[i].Month.Before(out[j].Month)
		}
		return out[i].Part < out[j].Part
	})
	return out
}

// TransfersByPart groups transfers by part id, summing the normalized
// (non-negative) quantities and total costs.
func TransfersByPart(records []scan.Transfer) []Row {
	byPart := make(map[string]*Row)
	for _, r := range records {
		row, ok := byPart[r.Part]
		if !ok {
			row = &Row{Part: r.Part, Description: r.Description}
			byPart[r.Part] = row
		}
		row.Quantity += r.Quantity
		row.Total += r.TotalCost
		if r.MovementDate.After(row.LastDate) {
			row.LastDate = r.MovementDate
		}
	}
	return sortRows(byPart)
}

// SalesByPart groups sales by part id.
func SalesByPart(records []scan.Sale) []Row {
	byPart := make(map[string]*Row)
	for _, r := range records {
		row, ok := byPart[r.Part]
		if !ok {
			row = &Row{Part: r.Part}
			byPart[r.Part] = row
		}
		row.Quantity += r.Quantity
		row.Total += r.Total
		if r.Date.After(row.LastDate) {
			row.LastDate = r.Date
		}
	}
	return sortRows(byPart)
}

func sortRows(byPart map[string]*Row) []Row {
	out := make([]Row, 0, len(byPart))
	for _, row := range byPart {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Part < out[j].Part })
	return out
}
