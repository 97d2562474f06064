package scan

import (
	"math"
	"strings"
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/grid"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/normalize"
)

// The transfer hierarchy has three levels: a destination row opens a
// warehouse scope, a REFERENCIA: row opens a movement header inside it,
// and TRAS* item rows belong to whichever destination is open. State
// carries forward until overwritten by a new marker, never resets.

const bareTransferMarker = "SALIDA DE ALMACEN POR TRASPASO"

var referenceMarker = markerRule{
	token: "REFERENCIA:",
	fields: []fieldRule{
		{name: "reference", label: "REFERENCIA:", column: 0},
		{name: "date", label: "FECHA MOV:", column: 2},
		{name: "user", label: "USUARIO:", column: 3},
	},
}

// referenceDateMarker is the multi-sheet variant: the header only
// contributes a dd/mm/yyyy date embedded in column 2.
var referenceDateMarker = markerRule{
	token:  "REFERENCIA:",
	fields: []fieldRule{{name: "date", label: "", column: 2}},
}

// Transfers scans the detailed transfer export. Destination rows start
// with SALIDA: a HACIA clause names the receiving warehouse explicitly,
// while the bare "salida por traspaso" variant gets a destination label
// synthesized from the agency. Item rows are only valid while a
// destination is open, and quantity/cost coercion failures drop the row.
func Transfers(sheets []grid.Sheet, agency string) ([]Transfer, []Outcome) {
	var records []Transfer
	var outcomes []Outcome

	for _, sheet := range sheets {
		var destination, reference, user string
		var moveDate time.Time

		for i, row := range sheet.Rows {
			upper := strings.ToUpper(strings.TrimSpace(grid.Cell(row, 0)))

			switch {
			case strings.HasPrefix(upper, "SALIDA"):
				if after, ok := splitAfter(upper, "HACIA"); ok && after != "" {
					destination = after
				} else if strings.Contains(upper, bareTransferMarker) {
					destination = bareTransferMarker + " " + agency
				}
				outcomes = append(outcomes, Outcome{sheet.Name, i, Marker, "destination header"})

			case referenceMarker.matches(upper):
				got := referenceMarker.extract(row)
				ref, ok := got["reference"]
				if !ok || ref == "" {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Skipped, "malformed reference marker"})
					continue
				}
				reference = ref
				if v, ok := got["date"]; ok {
					moveDate, _ = normalize.ExtractDate(v)
				}
				if v, ok := got["user"]; ok {
					user = v
				}
				outcomes = append(outcomes, Outcome{sheet.Name, i, Marker, "reference header"})

			case strings.HasPrefix(upper, "TRAS"):
				if destination == "" {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "item row before destination header"})
					continue
				}
				desc := strings.TrimSpace(grid.Cell(row, colDescription))
				if normalize.MissingText(desc) {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "blank description"})
					continue
				}
				qty, ok := normalize.Number(grid.Cell(row, colQuantity))
				if !ok {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "non-numeric quantity"})
					continue
				}
				cost, ok := normalize.Number(grid.Cell(row, colUnitCost))
				if !ok {
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "non-numeric unit cost"})
					continue
				}

				records = append(records, Transfer{
					Agency:       agency,
					Destination:  destination,
					Reference:    reference,
					MovementDate: moveDate,
					User:         user,
					Part:         strings.TrimSpace(grid.Cell(row, colPart)),
					Description:  desc,
					Quantity:     math.Abs(qty),
					UnitCost:     cost,
					TotalCost:    math.Abs(qty) * cost,
				})
				outcomes = append(outcomes, Outcome{sheet.Name, i, Accepted, ""})
			}
		}
	}
	return records, outcomes
}

// TransfersByDestination scans the multi-sheet transfer export and
// groups records by cleaned destination name. Destinations are not
// recognized by prefix here: each sheet opens with a block listing the
// exact destination labels, so a lookahead over the first 50 rows
// (stopping at the TOTALES sentinel) builds an allow-list first, and
// the main pass matches column 0 against it verbatim.
func TransfersByDestination(sheets []grid.Sheet, agency string, codes []string) (map[string][]Transfer, []Outcome) {
	byDestination := make(map[string][]Transfer)
	var outcomes []Outcome

	for _, sheet := range sheets {
		allowed := destinationAllowList(sheet)
		if len(allowed) == 0 {
			continue
		}

		var destination, cleaned string
		var moveDate time.Time
		var haveDate bool

		for i, row := range sheet.Rows {
			label := strings.TrimSpace(grid.Cell(row, 0))
			if label == "" {
				continue
			}
			upper := strings.ToUpper(label)

			switch {
			case referenceDateMarker.matches(upper):
				got := referenceDateMarker.extract(row)
				if d, ok := normalize.ExtractDate(got["date"]); ok {
					moveDate = d
					haveDate = true
				}
				outcomes = append(outcomes, Outcome{sheet.Name, i, Marker, "reference header"})

			case allowed[label]:
				destination = label
				cleaned = cleanDestination(label)
				outcomes = append(outcomes, Outcome{sheet.Name, i, Marker, "destination header"})

			case destination != "" && containsAny(upper, codes):
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
					outcomes = append(outcomes, Outcome{sheet.Name, i, Rejected, "no movement date in scope"})
					continue
				}

				byDestination[cleaned] = append(byDestination[cleaned], Transfer{
					Agency:       agency,
					Destination:  cleaned,
					MovementDate: moveDate,
					Part:         part,
					Description:  desc,
					Quantity:     math.Abs(qty),
				})
				outcomes = append(outcomes, Outcome{sheet.Name, i, Accepted, ""})
			}
		}
	}
	return byDestination, outcomes
}

// destinationAllowList collects the exact destination labels announced
// at the top of a multi-sheet transfer sheet (rows 5..50), stopping at
// the literal TOTALES row that closes the block.
func destinationAllowList(sheet grid.Sheet) map[string]bool {
	allowed := make(map[string]bool)
	limit := len(sheet.Rows)
	if limit > 50 {
		limit = 50
	}
	for i := 4; i < limit; i++ {
		label := strings.TrimSpace(grid.Cell(sheet.Rows[i], 0))
		if strings.ToUpper(label) == "TOTALES" {
			break
		}
		if label != "" {
			allowed[label] = true
		}
	}
	return allowed
}

// cleanDestination strips the routing prefix from an explicit
// "... hacia <warehouse>" label; bare labels pass through unchanged.
func cleanDestination(label string) string {
	idx := strings.LastIndex(strings.ToLower(label), "hacia")
	if idx < 0 {
		return label
	}
	return strings.TrimSpace(label[idx+len("hacia"):])
}
