package report

import (
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/aggregate"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/scan"
)

// Remainder is one month cohort's purchased quantity not yet offset by
// any recognized sale, valued at the cohort's own unit cost.
type Remainder struct {
	Part        string
	Description string
	ProductLine string
	Month       time.Time
	Quantity    float64
	Total       float64
}

// RemainderInput carries the raw (unaggregated) records the allocator
// depletes. Dispositions decide which transfers and manual sales count
// as sales-equivalents.
type RemainderInput struct {
	Purchases    []scan.Purchase
	DirectSales  []scan.Sale
	Transfers    map[string][]scan.Transfer
	ManualSales  map[string][]scan.Sale
	Dispositions Dispositions
}

// Remainders deplete each part's monthly purchase cohorts, oldest
// first, against a single lifetime sales-equivalent counter: direct
// sales plus Venta Exitosa transfers plus Considerar manual sales.
// Once a part's counter is exhausted every newer cohort is reported in
// full. Fully covered history yields an empty result.
func Remainders(in RemainderInput) []Remainder {
	counter := make(map[string]float64)
	for _, s := range in.DirectSales {
		counter[s.Part] += s.Quantity
	}
	for warehouse, transfers := range in.Transfers {
		if in.Dispositions.For(warehouse) != VentaExitosa {
			continue
		}
		for _, t := range transfers {
			counter[t.Part] += t.Quantity
		}
	}
	for warehouse, sales := range in.ManualSales {
		if in.Dispositions.For(warehouse) != Considerar {
			continue
		}
		for _, s := range sales {
			counter[s.Part] += s.Quantity
		}
	}

	var out []Remainder
	for _, cohort := range aggregate.PurchasesByPartMonth(in.Purchases) {
		covered := counter[cohort.Part]
		if covered >= cohort.Quantity {
			counter[cohort.Part] = covered - cohort.Quantity
			continue
		}
		counter[cohort.Part] = 0
		residue := cohort.Quantity - covered
		unitCost := 0.0
		if cohort.Quantity != 0 {
			unitCost = cohort.Total / cohort.Quantity
		}
		out = append(out, Remainder{
			Part:        cohort.Part,
			Description: cohort.Description,
			ProductLine: cohort.ProductLine,
			Month:       cohort.Month,
			Quantity:    residue,
			Total:       residue * unitCost,
		})
	}
	return out
}
