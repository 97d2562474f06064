package scan

import (
	"strings"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/grid"
)

// The BPro exports have no schema: section headers are text fragments
// embedded in cell values ("FACTURA: A-1022", "FECHA FACT: 03/02/2026").
// Each marker is declared as a rule mapping labels to column offsets, so
// the grammar is a table instead of splits scattered through the
// scanners.

// fieldRule extracts the text following label from the cell at column.
type fieldRule struct {
	name   string
	label  string
	column int
}

// markerRule recognizes a section-header row by its column-0 token.
type markerRule struct {
	token  string
	prefix bool
	fields []fieldRule
}

func (r markerRule) matches(col0 string) bool {
	if r.prefix {
		return strings.HasPrefix(col0, r.token)
	}
	return strings.Contains(col0, r.token)
}

// extract applies every field rule to the row. Fields whose label is
// absent are simply omitted; callers decide which ones are required.
func (r markerRule) extract(row []string) map[string]string {
	out := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		if v, ok := splitAfter(grid.Cell(row, f.column), f.label); ok {
			out[f.name] = v
		}
	}
	return out
}

// splitAfter returns the trimmed text following label inside cell,
// matching the label case-insensitively against the uppercased cell.
func splitAfter(cell, label string) (string, bool) {
	idx := strings.Index(strings.ToUpper(cell), label)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(cell[idx+len(label):]), true
}

// containsAny reports whether cell contains one of the item codes.
func containsAny(cell string, codes []string) bool {
	for _, c := range codes {
		if c != "" && strings.Contains(cell, c) {
			return true
		}
	}
	return false
}

// Item-row column offsets shared by every BPro layout.
const (
	colPart        = 2
	colDescription = 3
	colQuantity    = 4
	colUnitCost    = 5
	colSaleTotal   = 6
	colSummaryQty  = 4
	colSummaryTot  = 7
	colDetailTotal = 9
	colProductLine = 11
)
