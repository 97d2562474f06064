package ledger

import (
	"sort"
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/report"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/scan"
)

// CrossCheckInput bundles the cleaned tables the cross-check joins:
// scanned purchases and transfers, the fetched master ledger, and the
// Drive sales requests.
type CrossCheckInput struct {
	Purchases []scan.Purchase
	Transfers []scan.Transfer
	Sales     []MasterSale
	Requests  []Request
}

type summaryRow struct {
	agency       string
	part         string
	description  string
	bought       float64
	transferred  float64
	sold         float64
	lastPurchase time.Time
	lastSale     time.Time
}

// CrossCheck produces the two ledger sheets: a per-agency-per-part
// summary of purchased versus transferred versus sold stock, and the
// list of sales requests the master ledger cannot account for. The
// unsold sheet carries the placeholder row when every request is
// covered, so the workbook shape is stable.
func CrossCheck(in CrossCheckInput) (summary, unsold report.Table) {
	return summaryTable(in), unsoldTable(in)
}

func summaryTable(in CrossCheckInput) report.Table {
	type key struct{ agency, part string }
	rows := make(map[key]*summaryRow)
	var order []key

	for _, p := range in.Purchases {
		k := key{p.Agency, p.Part}
		row, ok := rows[k]
		if !ok {
			row = &summaryRow{agency: p.Agency, part: p.Part, description: p.Description}
			rows[k] = row
			order = append(order, k)
		}
		row.bought += p.Quantity
		if p.InvoiceDate.After(row.lastPurchase) {
			row.lastPurchase = p.InvoiceDate
		}
	}
	// Transfers and ledger sales only annotate purchased parts.
	for _, t := range in.Transfers {
		if row, ok := rows[key{t.Agency, t.Part}]; ok {
			row.transferred += t.Quantity
		}
	}
	for _, s := range in.Sales {
		row, ok := rows[key{s.Agency, s.Part}]
		if !ok {
			continue
		}
		row.sold += s.Quantity
		if s.Date.After(row.lastSale) {
			row.lastSale = s.Date
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].agency != order[j].agency {
			return order[i].agency < order[j].agency
		}
		return order[i].part < order[j].part
	})

	table := report.Table{
		Name: "General_Compras_Ventas",
		Columns: plainColumns("AGENCIA", "NP", "DESCRIPCION", "COMPRADO",
			"TRASPASADO", "VENDIDO", "ULT_COMPRA", "ULT_VENTA"),
	}
	for _, k := range order {
		row := rows[k]
		table.Rows = append(table.Rows, []any{
			row.agency,
			row.part,
			row.description,
			row.bought,
			row.transferred,
			row.sold,
			dateOr(row.lastPurchase, "Sin Fecha"),
			dateOr(row.lastSale, "Sin Venta"),
		})
	}
	return table
}

func unsoldTable(in CrossCheckInput) report.Table {
	type shortfall struct {
		request Request
		sold    float64
		missing float64
	}
	var shortfalls []shortfall
	for _, r := range in.Requests {
		var sold float64
		for _, s := range in.Sales {
			if s.Agency == r.Agency && s.Part == r.Part && !s.Date.Before(r.Date) {
				sold += s.Quantity
			}
		}
		if missing := r.Quantity - sold; missing > 0 {
			shortfalls = append(shortfalls, shortfall{r, sold, missing})
		}
	}
	sort.SliceStable(shortfalls, func(i, j int) bool {
		return shortfalls[i].missing > shortfalls[j].missing
	})

	table := report.Table{Name: "Drive_No_Vendido"}
	if len(shortfalls) == 0 {
		table.Columns = plainColumns("Msg")
		table.Rows = [][]any{{"Todo vendido"}}
		return table
	}
	table.Columns = plainColumns("AGENCIA", "FECHA_SOLICITUD", "VENDEDOR", "NP",
		"DESCRIPCION", "CANTIDAD", "CANTIDAD_VENDIDA", "SOBRANTE", "ORDEN_COMPRA")
	for _, s := range shortfalls {
		table.Rows = append(table.Rows, []any{
			s.request.Agency,
			s.request.Date.Format("02/01/2006"),
			s.request.Vendor,
			s.request.Part,
			s.request.Description,
			s.request.Quantity,
			s.sold,
			s.missing,
			s.request.PurchaseOrder,
		})
	}
	return table
}

func plainColumns(names ...string) []report.Column {
	cols := make([]report.Column, 0, len(names))
	for _, n := range names {
		cols = append(cols, report.Column{Name: n})
	}
	return cols
}

func dateOr(t time.Time, placeholder string) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format("02/01/2006")
}
