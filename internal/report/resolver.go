package report

import (
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/aggregate"
)

// Metric names for the compound per-warehouse columns.
const (
	generalWarehouse  = "ALMACEN GENERAL"
	metricTransferred = "Traspasada"
	metricSold        = "Vendida"
	metricSoldTotal   = "Total Vendido"
	metricDirectSale  = "Venta Directa"
)

// ResolveInput bundles everything the resolver needs for one agency.
// Every field except Purchases may be empty; missing inputs degrade to
// zero contributions.
type ResolveInput struct {
	Purchases    []aggregate.Row
	Transfers    map[string][]aggregate.Row
	DirectSales  []aggregate.Row
	ManualSales  map[string][]aggregate.Row
	Dispositions Dispositions
}

// Row is one part's reconciled line: the fixed base fields plus the
// compound {warehouse}_{metric} cells the assembler lays out later.
// Cells only holds non-trivial values; absent keys render as zero.
type Row struct {
	Part           string
	Description    string
	ProductLine    string
	TotalBought    float64
	QuantityBought float64
	QuantitySold   SoldQuantity
	TotalTransfers float64
	TotalSold      float64
	LastPurchase   time.Time
	Cells          map[string]float64
}

// Resolve produces one report row per purchased part. Warehouses with
// an Ignore-style disposition are netted out of the purchased quantity
// first (totals rescaled at the pre-adjustment unit cost), then each
// remaining warehouse contributes a sold split according to its action,
// and direct sales enter as their own column block. Parts whose
// adjusted purchased quantity ends at or below zero are dropped.
func Resolve(in ResolveInput) []Row {
	transfersByPart := make(map[string]map[string]aggregate.Row)
	for warehouse, rows := range in.Transfers {
		for _, r := range rows {
			if transfersByPart[r.Part] == nil {
				transfersByPart[r.Part] = make(map[string]aggregate.Row)
			}
			transfersByPart[r.Part][warehouse] = r
		}
	}
	manualByPart := make(map[string]map[string]aggregate.Row)
	for warehouse, rows := range in.ManualSales {
		for _, r := range rows {
			if manualByPart[r.Part] == nil {
				manualByPart[r.Part] = make(map[string]aggregate.Row)
			}
			manualByPart[r.Part][warehouse] = r
		}
	}
	directByPart := make(map[string]aggregate.Row, len(in.DirectSales))
	for _, r := range in.DirectSales {
		directByPart[r.Part] = r
	}

	var out []Row
	for _, p := range in.Purchases {
		perWarehouse := transfersByPart[p.Part]

		var totalTransfers float64
		for _, t := range perWarehouse {
			totalTransfers += t.Quantity
		}

		// Ignored warehouses never added saleable stock: net their
		// units out and rescale the spend at the original unit cost.
		unitCost := 0.0
		if p.Quantity != 0 {
			unitCost = p.Total / p.Quantity
		}
		ignored := 0.0
		for warehouse, t := range perWarehouse {
			if in.Dispositions.For(warehouse) == NoConsiderar {
				ignored += t.Quantity
			}
		}
		qty := p.Quantity - ignored
		if qty <= 0 {
			continue
		}
		total := p.Total
		if ignored > 0 {
			total = qty * unitCost
		}

		row := Row{
			Part:           p.Part,
			Description:    p.Description,
			ProductLine:    p.ProductLine,
			TotalBought:    total,
			QuantityBought: qty,
			TotalTransfers: totalTransfers,
			LastPurchase:   p.LastDate,
			Cells:          make(map[string]float64),
		}

		soldQty := 0.0
		soldTotal := 0.0
		underReview := false

		if d, ok := directByPart[p.Part]; ok {
			row.Cells[compound(generalWarehouse, metricDirectSale)] = d.Quantity
			row.Cells[compound(generalWarehouse, metricSoldTotal)] = d.Total
			soldQty += d.Quantity
			soldTotal += d.Total
		}

		for warehouse, t := range perWarehouse {
			action := in.Dispositions.For(warehouse)
			if action == NoConsiderar {
				continue
			}
			row.Cells[compound(warehouse, metricTransferred)] = t.Quantity

			var sold, soldAt float64
			switch action {
			case VentaExitosa:
				sold = t.Quantity
				soldAt = sold * unitCost
			case PorAnalizar:
				if t.Quantity > 0 {
					underReview = true
				}
			default: // Considerar
				if m, ok := manualByPart[p.Part][warehouse]; ok {
					sold = m.Quantity
					if sold > t.Quantity {
						sold = t.Quantity
					}
					unitPrice := 0.0
					if m.Quantity != 0 {
						unitPrice = m.Total / m.Quantity
					}
					soldAt = sold * unitPrice
				}
			}
			row.Cells[compound(warehouse, metricSold)] = sold
			row.Cells[compound(warehouse, metricSoldTotal)] = soldAt
			soldQty += sold
			soldTotal += soldAt
		}

		if underReview {
			row.QuantitySold = NeedsReview()
		} else {
			row.QuantitySold = Known(soldQty)
		}
		row.TotalSold = soldTotal
		out = append(out, row)
	}
	return out
}

func compound(warehouse, metric string) string {
	return warehouse + "_" + metric
}
