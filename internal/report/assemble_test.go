package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func columnNames(table Table) []string {
	names := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		names = append(names, c.Name)
	}
	return names
}

func TestAssembleColumnOrderIsDeterministic(t *testing.T) {
	rows := []Row{
		{Part: "X", QuantitySold: Known(0), Cells: map[string]float64{
			"TOLUCA_Vendida":                1,
			"ALMACEN GENERAL_Venta Directa": 2,
		}},
		{Part: "A", QuantitySold: Known(0), Cells: map[string]float64{
			"SEMINUEVOS_Traspasada":         3,
			"ALMACEN GENERAL_Total Vendido": 4,
		}},
	}
	got := Assemble("Detalle_CUAUTITLAN", rows)
	reversed := Assemble("Detalle_CUAUTITLAN", []Row{rows[1], rows[0]})

	want := append(append([]string{}, BaseColumns...),
		"ALMACEN GENERAL_Total Vendido",
		"ALMACEN GENERAL_Venta Directa",
		"SEMINUEVOS_Traspasada",
		"TOLUCA_Vendida",
	)
	assert.Equal(t, want, columnNames(got))
	assert.Equal(t, want, columnNames(reversed))
}

func TestAssembleBackFillsMissingCells(t *testing.T) {
	rows := []Row{
		{Part: "X", QuantitySold: Known(1), Cells: map[string]float64{"TOLUCA_Vendida": 1}},
		{Part: "Y", QuantitySold: Known(0), Cells: map[string]float64{"SEMINUEVOS_Vendida": 2}},
	}
	table := Assemble("Detalle", rows)
	require.Len(t, table.Rows, 2)

	// Row X has no SEMINUEVOS cell and row Y no TOLUCA cell; both read 0.
	idx := map[string]int{}
	for i, c := range table.Columns {
		idx[c.Name] = i
	}
	assert.Equal(t, 0.0, table.Rows[0][idx["SEMINUEVOS_Vendida"]])
	assert.Equal(t, 1.0, table.Rows[0][idx["TOLUCA_Vendida"]])
	assert.Equal(t, 0.0, table.Rows[1][idx["TOLUCA_Vendida"]])
}

func TestAssembleSplitsCompoundNames(t *testing.T) {
	table := Assemble("Detalle", []Row{
		{Part: "X", QuantitySold: Known(0), Cells: map[string]float64{
			"ALMACEN GENERAL_Venta Directa": 1,
			"REFACCIONES TOLUCA_Vendida":    2,
		}},
	})

	byName := map[string]Column{}
	for _, c := range table.Columns {
		byName[c.Name] = c
	}
	assert.Equal(t, "ALMACEN GENERAL", byName["ALMACEN GENERAL_Venta Directa"].Group)
	assert.Equal(t, "Venta Directa", byName["ALMACEN GENERAL_Venta Directa"].Metric)
	assert.Equal(t, "REFACCIONES TOLUCA", byName["REFACCIONES TOLUCA_Vendida"].Group)
	assert.Equal(t, "", byName["ID PART"].Group)
}

func TestAssembleRendersReviewFlagAndDates(t *testing.T) {
	table := Assemble("Detalle", []Row{
		{
			Part:         "X",
			QuantitySold: NeedsReview(),
			LastPurchase: time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC),
		},
		{Part: "Y", QuantitySold: Known(2)},
	})
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Por analizar", table.Rows[0][5])
	assert.Equal(t, "03/02/2026", table.Rows[0][8])
	assert.Equal(t, 2.0, table.Rows[1][5])
	assert.Equal(t, "", table.Rows[1][8])
}

func TestAssembleRemaindersZeroesSoldColumns(t *testing.T) {
	table := AssembleRemainders("CUAUTITLAN_Febrero_2026", []Remainder{
		{Part: "X", Description: "BALATAS", Month: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), Quantity: 3, Total: 45},
	})
	assert.Equal(t, BaseColumns, columnNames(table))
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, 45.0, row[3])
	assert.Equal(t, 3.0, row[4])
	assert.Equal(t, 0.0, row[5])
	assert.Equal(t, 0.0, row[7])
}

func TestWriteRoundTrip(t *testing.T) {
	table := Assemble("Detalle_CUAUTITLAN", []Row{
		{Part: "X", Description: "BALATAS", QuantitySold: Known(6), TotalSold: 60,
			Cells: map[string]float64{"TOLUCA_Vendida": 6, "TOLUCA_Traspasada": 6}},
	})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Table{table}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Detalle_CUAUTITLAN"}, f.GetSheetList())

	rows, err := f.GetRows("Detalle_CUAUTITLAN")
	require.NoError(t, err)
	// Two header rows (grouped layout) plus one data row.
	require.Len(t, rows, 3)
	assert.Equal(t, "ID PART", rows[0][0])
	assert.Equal(t, "TOLUCA", rows[0][len(BaseColumns)])
	assert.Equal(t, "Traspasada", rows[1][len(BaseColumns)])
	assert.Equal(t, "X", rows[2][0])
}

func TestWritePlainTableHasSingleHeaderRow(t *testing.T) {
	table := Table{
		Name:    "General_Compras_Ventas",
		Columns: []Column{{Name: "AGENCIA"}, {Name: "NP"}},
		Rows:    [][]any{{"CUAUTITLAN", "123456"}},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Table{table}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("General_Compras_Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"AGENCIA", "NP"}, rows[0])
	assert.Equal(t, []string{"CUAUTITLAN", "123456"}, rows[1])
}
