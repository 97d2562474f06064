// Package report turns aggregated purchase, transfer and sale tables
// into the reconciliation report: per-warehouse dispositions decide how
// much transferred stock counts as sold, a FIFO allocator surfaces
// purchased units never matched by a sale, and the assembler lays the
// results out as deterministic wide tables written to an xlsx workbook.
package report

// Action is the user-chosen policy for one destination warehouse's
// transferred stock.
type Action string

const (
	// Considerar only counts sales backed by a manual sales file,
	// capped at the transferred quantity. Default for every warehouse
	// discovered during scanning.
	Considerar Action = "Considerar"
	// VentaExitosa treats every transferred unit as sold at the
	// purchase unit cost.
	VentaExitosa Action = "Venta Exitosa"
	// PorAnalizar sells nothing and flags every part the warehouse
	// touched for review.
	PorAnalizar Action = "Por analizar"
	// NoConsiderar removes the warehouse's units from the agency's
	// saleable stock entirely.
	NoConsiderar Action = "No Considerar"
)

// Dispositions maps warehouse name to its action. Lookup of a
// warehouse that was never configured yields the default.
type Dispositions map[string]Action

func (d Dispositions) For(warehouse string) Action {
	if a, ok := d[warehouse]; ok && a != "" {
		return a
	}
	return Considerar
}

// SoldQuantity is the CANTIDAD VENDIDA cell: either a known quantity
// or a review flag. The writer renders the flag as the literal
// "Por analizar" so the column is never silently overloaded in code.
type SoldQuantity struct {
	Quantity    float64
	UnderReview bool
}

func Known(q float64) SoldQuantity { return SoldQuantity{Quantity: q} }

func NeedsReview() SoldQuantity { return SoldQuantity{UnderReview: true} }

// Cell returns the value the writer should place in the workbook.
func (s SoldQuantity) Cell() any {
	if s.UnderReview {
		return string(PorAnalizar)
	}
	return s.Quantity
}
