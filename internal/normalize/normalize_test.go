package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" -3.5 ", -3.5, true},
		{"$1,250.75", 1250.75, true},
		{"1,000", 1000, true},
		{"", 0, false},
		{"nan", 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := Number(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestExtractDate(t *testing.T) {
	got, ok := ExtractDate("FECHA FACT: 03/02/2026 HORA: 12:01")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), got)

	_, ok = ExtractDate("sin fecha")
	assert.False(t, ok)

	_, ok = ExtractDate("99/99/2026")
	assert.False(t, ok)
}

func TestMessyDateSpanishLongForm(t *testing.T) {
	got, ok := MessyDate("Lunes 2 de Febrero del 2026", true)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestMessyDateDashesAndShortYear(t *testing.T) {
	got, ok := MessyDate("3-02-26", true)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestMessyDateMonthFirst(t *testing.T) {
	got, ok := MessyDate("02/03/2026", false)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestMessyDateRejects(t *testing.T) {
	for _, in := range []string{"", "nan", "proximamente", "31/02/2026"} {
		_, ok := MessyDate(in, true)
		assert.False(t, ok, "input %q", in)
	}
}

func TestValidPart(t *testing.T) {
	assert.True(t, ValidPart("123456"))
	assert.False(t, ValidPart("0"))
	assert.False(t, ValidPart("nan"))
	assert.False(t, ValidPart(""))
	assert.False(t, ValidPart("N/A"))
}

func TestMissingText(t *testing.T) {
	assert.True(t, MissingText(""))
	assert.True(t, MissingText("  "))
	assert.True(t, MissingText("nan"))
	assert.False(t, MissingText("BALATAS DEL."))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Enero", MonthName(time.January))
	assert.Equal(t, "Diciembre", MonthName(time.December))
}
