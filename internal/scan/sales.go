package scan

import (
	"strings"
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/grid"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/normalize"
)

var saleHeaderMarker = markerRule{
	token:  "FACTURA/REFERENCIA:",
	fields: []fieldRule{{name: "date", label: "", column: 4}},
}

// Sales scans a sales export (the general warehouse file and the
// per-warehouse manual files share this layout). FACTURA/REFERENCIA:
// headers carry the sale date in column 4; item rows match any of the
// sale nomenclatures (e.g. VRCU, VRTU) and require a date in scope.
func Sales(sheets []grid.Sheet, codes []string) ([]Sale, []Outcome) {
	var records []Sale
	var outcomes []Outcome

	for _, sheet := range sheets {
		var saleDate time.Time
		var haveDate bool

		for i, row := range sheet.Rows {
			upper := strings.ToUpper(strings.TrimSpace(grid.Cell(row, 0)))

			switch {
			case saleHeaderMarker.matches(upper):
				got := saleHeaderMarker.extract(row)
				if d, ok := normalize.ExtractDate(got["date"]); ok {
					saleDate = d
					haveDate = true
				}
				outcomes = append(outcomes, Outcome{sheet.Name, i, Marker, "sale header"})

			case containsAny(upper, codes):
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
				qty, ok := normalize.Number(grid.Cell(row, colQuantity))
				if !ok {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "non-numeric quantity"})
					continue
				}
				if !haveDate {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "no sale date in scope"})
					continue
				}
				total, _ := normalize.Number(grid.Cell(row, colSaleTotal))

				records = append(records, Sale{
					Part:     part,
					Quantity: qty,
					Total:    total,
					Date:     saleDate,
				})
				outcomes = append(outcomes, Outcome{sheet.Name, i, Accepted, ""})
			}
		}
	}
	return records, outcomes
}
