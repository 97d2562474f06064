package main

import (
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/report"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/scan"
)

func purchaseTable(records []scan.Purchase) report.Table {
	table := report.Table{
		Name: "Compras",
		Columns: columns("AGENCIA", "FACTURA", "FECHA", "PROVEEDOR", "COMPRADOR",
			"NP", "DESCRIPCION", "CANTIDAD", "COSTO_UNIT", "TOTAL"),
	}
	for _, r := range records {
		table.Rows = append(table.Rows, []any{
			r.Agency, r.Invoice, dateCell(r.InvoiceDate), r.Supplier, r.Buyer,
			r.Part, r.Description, r.Quantity, r.UnitCost, r.Total,
		})
	}
	return table
}

func transferTable(records []scan.Transfer) report.Table {
	table := report.Table{
		Name: "Traspasos",
		Columns: columns("AGENCIA", "DESTINO", "REFERENCIA", "FECHA_MOV", "USUARIO",
			"NP", "DESCRIPCION", "CANTIDAD", "COSTO_UNIT", "TOTAL_COSTO"),
	}
	for _, r := range records {
		table.Rows = append(table.Rows, []any{
			r.Agency, r.Destination, r.Reference, dateCell(r.MovementDate), r.User,
			r.Part, r.Description, r.Quantity, r.UnitCost, r.TotalCost,
		})
	}
	return table
}

func columns(names ...string) []report.Column {
	cols := make([]report.Column, 0, len(names))
	for _, n := range names {
		cols = append(cols, report.Column{Name: n})
	}
	return cols
}

func dateCell(t time.Time) any {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
