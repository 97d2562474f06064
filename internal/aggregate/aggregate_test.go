package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/scan"
)

func day(d int) time.Time {
	return time.Date(2026, time.February, d, 0, 0, 0, 0, time.UTC)
}

func TestPurchasesByPart(t *testing.T) {
	records := []scan.Purchase{
		{Part: "X", Description: "BALATAS", ProductLine: "ACDELCO", Quantity: 4, Total: 40, InvoiceDate: day(1)},
		{Part: "X", Description: "BALATAS BIS", Quantity: 6, Total: 60, InvoiceDate: day(9)},
		{Part: "A", Description: "FILTRO", Quantity: 1, Total: 5, InvoiceDate: day(3)},
	}
	rows := PurchasesByPart(records)
	require.Len(t, rows, 2)

	// Sorted by part id, description is first-seen, date is max.
	assert.Equal(t, "A", rows[0].Part)
	assert.Equal(t, "X", rows[1].Part)
	assert.Equal(t, 10.0, rows[1].Quantity)
	assert.Equal(t, 100.0, rows[1].Total)
	assert.Equal(t, "BALATAS", rows[1].Description)
	assert.Equal(t, "ACDELCO", rows[1].ProductLine)
	assert.Equal(t, day(9), rows[1].LastDate)
}

func TestAggregationIsOrderIndependent(t *testing.T) {
	part1 := []scan.Purchase{
		{Part: "X", Description: "BALATAS", Quantity: 4, Total: 40, InvoiceDate: day(1)},
		{Part: "A", Description: "FILTRO", Quantity: 1, Total: 5, InvoiceDate: day(3)},
	}
	part2 := []scan.Purchase{
		{Part: "X", Description: "BALATAS", Quantity: 6, Total: 60, InvoiceDate: day(9)},
	}

	whole := PurchasesByPart(append(append([]scan.Purchase{}, part1...), part2...))
	reversed := PurchasesByPart(append(append([]scan.Purchase{}, part2...), part1...))

	require.Equal(t, len(whole), len(reversed))
	for i := range whole {
		assert.Equal(t, whole[i].Part, reversed[i].Part)
		assert.Equal(t, whole[i].Quantity, reversed[i].Quantity)
		assert.Equal(t, whole[i].Total, reversed[i].Total)
		assert.Equal(t, whole[i].LastDate, reversed[i].LastDate)
	}
}

func TestPurchasesByPartMonthOldestFirst(t *testing.T) {
	records := []scan.Purchase{
		{Part: "X", Quantity: 5, Total: 50, InvoiceDate: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{Part: "X", Quantity: 10, Total: 100, InvoiceDate: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)},
		{Part: "X", Quantity: 3, Total: 30, InvoiceDate: time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)},
		{Part: "X", Quantity: 1, Total: 10}, // undated rows join no cohort
	}
	cohorts := PurchasesByPartMonth(records)
	require.Len(t, cohorts, 2)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), cohorts[0].Month)
	assert.Equal(t, 13.0, cohorts[0].Quantity)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), cohorts[1].Month)
	assert.Equal(t, 5.0, cohorts[1].Quantity)
}

func TestTransfersAndSalesByPart(t *testing.T) {
	transfers := TransfersByPart([]scan.Transfer{
		{Part: "X", Quantity: 2, TotalCost: 20, MovementDate: day(2)},
		{Part: "X", Quantity: 3, TotalCost: 30, MovementDate: day(5)},
	})
	require.Len(t, transfers, 1)
	assert.Equal(t, 5.0, transfers[0].Quantity)
	assert.Equal(t, 50.0, transfers[0].Total)
	assert.Equal(t, day(5), transfers[0].LastDate)

	sales := SalesByPart([]scan.Sale{
		{Part: "X", Quantity: 1, Total: 15, Date: day(4)},
		{Part: "Y", Quantity: 2, Total: 8, Date: day(6)},
	})
	require.Len(t, sales, 2)
	assert.Equal(t, "X", sales[0].Part)
	assert.Equal(t, "Y", sales[1].Part)
}

func TestEmptyInputYieldsEmptyOutput(t *testing.T) {
	assert.Empty(t, PurchasesByPart(nil))
	assert.Empty(t, PurchasesByPartMonth(nil))
	assert.Empty(t, TransfersByPart(nil))
	assert.Empty(t, SalesByPart(nil))
}
