package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/aggregate"
)

func TestResolveSuccessfulSaleValuesAtPurchaseCost(t *testing.T) {
	rows := Resolve(ResolveInput{
		Purchases: []aggregate.Row{
			{Part: "X", Quantity: 10, Total: 100, Description: "BALATAS"},
		},
		Transfers: map[string][]aggregate.Row{
			"TOLUCA": {{Part: "X", Quantity: 6}},
		},
		Dispositions: Dispositions{"TOLUCA": VentaExitosa},
	})
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 10.0, r.QuantityBought)
	assert.Equal(t, 100.0, r.TotalBought)
	assert.Equal(t, 6.0, r.TotalTransfers)
	assert.Equal(t, Known(6), r.QuantitySold)
	assert.Equal(t, 60.0, r.TotalSold)
	assert.Equal(t, 6.0, r.Cells["TOLUCA_Traspasada"])
	assert.Equal(t, 6.0, r.Cells["TOLUCA_Vendida"])
	assert.Equal(t, 60.0, r.Cells["TOLUCA_Total Vendido"])
}

func TestResolveConsiderCapsAtTransferredQuantity(t *testing.T) {
	rows := Resolve(ResolveInput{
		Purchases: []aggregate.Row{{Part: "X", Quantity: 10, Total: 100}},
		Transfers: map[string][]aggregate.Row{
			"TOLUCA": {{Part: "X", Quantity: 4}},
		},
		ManualSales: map[string][]aggregate.Row{
			"TOLUCA": {{Part: "X", Quantity: 9, Total: 180}},
		},
		Dispositions: Dispositions{"TOLUCA": Considerar},
	})
	require.Len(t, rows, 1)

	// Manual sales cannot exceed the transferred quantity; the sold
	// total is valued at the manual unit price.
	assert.Equal(t, Known(4), rows[0].QuantitySold)
	assert.Equal(t, 80.0, rows[0].TotalSold)
}

func TestResolveConsiderWithoutManualFileSellsNothing(t *testing.T) {
	rows := Resolve(ResolveInput{
		Purchases: []aggregate.Row{{Part: "X", Quantity: 10, Total: 100}},
		Transfers: map[string][]aggregate.Row{
			"TOLUCA": {{Part: "X", Quantity: 4}},
		},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, Known(0), rows[0].QuantitySold)
	assert.Equal(t, 0.0, rows[0].TotalSold)
	assert.Equal(t, 4.0, rows[0].Cells["TOLUCA_Traspasada"])
}

func TestResolveIgnoreExcludesFullyTransferredPart(t *testing.T) {
	rows := Resolve(ResolveInput{
		Purchases: []aggregate.Row{{Part: "X", Quantity: 10, Total: 100}},
		Transfers: map[string][]aggregate.Row{
			"SEMINUEVOS": {{Part: "X", Quantity: 10}},
		},
		Dispositions: Dispositions{"SEMINUEVOS": NoConsiderar},
	})
	assert.Empty(t, rows)
}

func TestResolveIgnoreRescalesAtUnitCost(t *testing.T) {
	rows := Resolve(ResolveInput{
		Purchases: []aggregate.Row{{Part: "X", Quantity: 10, Total: 100}},
		Transfers: map[string][]aggregate.Row{
			"SEMINUEVOS": {{Part: "X", Quantity: 4}},
			"TOLUCA":     {{Part: "X", Quantity: 2}},
		},
		Dispositions: Dispositions{"SEMINUEVOS": NoConsiderar, "TOLUCA": VentaExitosa},
	})
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 6.0, r.QuantityBought)
	assert.Equal(t, 60.0, r.TotalBought)
	// TOTAL TRASPASOS keeps the ignored warehouse's units.
	assert.Equal(t, 6.0, r.TotalTransfers)
	// The ignored warehouse gets no column block.
	assert.NotContains(t, r.Cells, "SEMINUEVOS_Traspasada")
	assert.Contains(t, r.Cells, "TOLUCA_Traspasada")
}

func TestResolveUnderReviewFlagsPartAcrossWarehouses(t *testing.T) {
	rows := Resolve(ResolveInput{
		Purchases: []aggregate.Row{{Part: "X", Quantity: 10, Total: 100}},
		Transfers: map[string][]aggregate.Row{
			"TOLUCA":     {{Part: "X", Quantity: 3}},
			"SEMINUEVOS": {{Part: "X", Quantity: 2}},
		},
		Dispositions: Dispositions{"TOLUCA": VentaExitosa, "SEMINUEVOS": PorAnalizar},
	})
	require.Len(t, rows, 1)

	r := rows[0]
	assert.True(t, r.QuantitySold.UnderReview)
	assert.Equal(t, "Por analizar", r.QuantitySold.Cell())
	// The review warehouse sells nothing but other contributions keep
	// flowing into the totals.
	assert.Equal(t, 0.0, r.Cells["SEMINUEVOS_Vendida"])
	assert.Equal(t, 30.0, r.TotalSold)
}

func TestResolveDirectSalesBlock(t *testing.T) {
	rows := Resolve(ResolveInput{
		Purchases:   []aggregate.Row{{Part: "X", Quantity: 10, Total: 100}},
		DirectSales: []aggregate.Row{{Part: "X", Quantity: 2, Total: 30}},
	})
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 2.0, r.Cells["ALMACEN GENERAL_Venta Directa"])
	assert.Equal(t, 30.0, r.Cells["ALMACEN GENERAL_Total Vendido"])
	assert.Equal(t, Known(2), r.QuantitySold)
	assert.Equal(t, 30.0, r.TotalSold)
}

func TestResolveSoldNeverExceedsTransferred(t *testing.T) {
	in := ResolveInput{
		Purchases: []aggregate.Row{{Part: "X", Quantity: 100, Total: 1000}},
		Transfers: map[string][]aggregate.Row{
			"A": {{Part: "X", Quantity: 5}},
			"B": {{Part: "X", Quantity: 7}},
		},
		ManualSales: map[string][]aggregate.Row{
			"A": {{Part: "X", Quantity: 50, Total: 500}},
			"B": {{Part: "X", Quantity: 50, Total: 500}},
		},
		Dispositions: Dispositions{"A": Considerar, "B": VentaExitosa},
	}
	rows := Resolve(in)
	require.Len(t, rows, 1)

	sold := rows[0].Cells["A_Vendida"] + rows[0].Cells["B_Vendida"]
	assert.LessOrEqual(t, sold, rows[0].TotalTransfers)
}

func TestResolveGracefulOnMissingInputs(t *testing.T) {
	assert.Empty(t, Resolve(ResolveInput{}))

	rows := Resolve(ResolveInput{
		Purchases: []aggregate.Row{{Part: "X", Quantity: 1, Total: 10}},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, Known(0), rows[0].QuantitySold)
}

func TestDispositionsDefault(t *testing.T) {
	var d Dispositions
	assert.Equal(t, Considerar, d.For("CUALQUIERA"))

	d = Dispositions{"TOLUCA": VentaExitosa}
	assert.Equal(t, VentaExitosa, d.For("TOLUCA"))
	assert.Equal(t, Considerar, d.For("OTRO"))
}
