package scan

import (
	"strings"
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/grid"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/normalize"
)

// invoiceMarker anchors the purchase hierarchy: one header row opens an
// invoice whose fields stay in scope for every item row beneath it.
var invoiceMarker = markerRule{
	token: "FACTURA:",
	fields: []fieldRule{
		{name: "invoice", label: "FACTURA:", column: 0},
		{name: "date", label: "FECHA FACT:", column: 2},
		{name: "supplier", label: "PROVEEDOR:", column: 3},
		{name: "buyer", label: "COMPRADOR:", column: 4},
	},
}

// invoiceDateMarker is the multi-sheet variant of the same header; the
// only thing it carries is a dd/mm/yyyy date embedded in column 2.
var invoiceDateMarker = markerRule{
	token:  "FACTURA:",
	fields: []fieldRule{{name: "date", label: "", column: 2}},
}

// Purchases scans the detailed purchase export: FACTURA: header rows
// followed by item rows whose column-0 code starts with "CR". Item rows
// with a blank description (subtotals, spacers) or an unusable part id
// are rejected, and rows seen before any invoice header produce nothing.
func Purchases(sheets []grid.Sheet, agency string) ([]Purchase, []Outcome) {
	var records []Purchase
	var outcomes []Outcome

	for _, sheet := range sheets {
		var invoice, supplier, buyer string
		var invoiceDate time.Time

		for i, row := range sheet.Rows {
			upper := strings.ToUpper(strings.TrimSpace(grid.Cell(row, 0)))

			switch {
			case invoiceMarker.matches(upper):
				got := invoiceMarker.extract(row)
				inv, ok := got["invoice"]
				if !ok || inv == "" {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Skipped, "malformed invoice marker"})
					continue
				}
				invoice = inv
				if v, ok := got["date"]; ok {
					invoiceDate, _ = normalize.ExtractDate(v)
				}
				if v, ok := got["supplier"]; ok {
					supplier = v
				}
				if v, ok := got["buyer"]; ok {
					buyer = v
				}
				outcomes = append(outcomes, Outcome{sheet.Name, i, Marker, "invoice header"})

			case strings.HasPrefix(upper, "CR"):
				if invoice == "" {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "item row before invoice header"})
					continue
				}
				desc := strings.TrimSpace(grid.Cell(row, colDescription))
				if normalize.MissingText(desc) {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "blank description"})
					continue
				}
				part := strings.TrimSpace(grid.Cell(row, colPart))
				if !normalize.ValidPart(part) {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "invalid part id"})
					continue
				}
				qty, _ := normalize.Number(grid.Cell(row, colQuantity))
				cost, _ := normalize.Number(grid.Cell(row, colUnitCost))
				total, _ := normalize.Number(grid.Cell(row, colDetailTotal))

				records = append(records, Purchase{
					Agency:      agency,
					Invoice:     invoice,
					InvoiceDate: invoiceDate,
					Supplier:    supplier,
					Buyer:       buyer,
					Part:        part,
					Description: desc,
					Quantity:    qty,
					UnitCost:    cost,
					Total:       total,
				})
				outcomes = append(outcomes, Outcome{sheet.Name, i, Accepted, ""})
			}
		}
	}
	return records, outcomes
}

// PurchasesByCode scans the multi-sheet purchase export. Item rows are
// recognized by the agency nomenclature (e.g. CRCU, CRTU) appearing in
// column 0, and every record requires the invoice date last seen in a
// FACTURA: header: rows without a date in scope are rejected.
func PurchasesByCode(sheets []grid.Sheet, agency, code string) ([]Purchase, []Outcome) {
	var records []Purchase
	var outcomes []Outcome

	for _, sheet := range sheets {
		var invoiceDate time.Time
		var haveDate bool

		for i, row := range sheet.Rows {
			upper := strings.ToUpper(strings.TrimSpace(grid.Cell(row, 0)))

			switch {
			case invoiceDateMarker.matches(upper):
				got := invoiceDateMarker.extract(row)
				if d, ok := normalize.ExtractDate(got["date"]); ok {
					invoiceDate = d
					haveDate = true
				}
				outcomes = append(outcomes, Outcome{sheet.Name, i, Marker, "invoice header"})

			case code != "" && strings.Contains(upper, code):
				desc := strings.TrimSpace(grid.Cell(row, colDescription))
				if normalize.MissingText(desc) {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "blank description"})
					continue
				}
				part := strings.TrimSpace(grid.Cell(row, colPart))
				if !normalize.ValidPart(part) {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "invalid part id"})
					continue
				}
				qty, ok := normalize.Number(grid.Cell(row, colSummaryQty))
				if !ok {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "non-numeric quantity"})
					continue
				}
				if !haveDate {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "no invoice date in scope"})
					continue
				}
				total, _ := normalize.Number(grid.Cell(row, colSummaryTot))

				records = append(records, Purchase{
					Agency:      agency,
					InvoiceDate: invoiceDate,
					Part:        part,
					Description: desc,
					ProductLine: strings.TrimSpace(grid.Cell(row, colProductLine)),
					Quantity:    qty,
					Total:       total,
				})
				outcomes = append(outcomes, Outcome{sheet.Name, i, Accepted, ""})
			}
		}
	}
	return records, outcomes
}
