package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding/charmap"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/normalize"
)

// Request is one cleaned sales-request row from a Drive export.
type Request struct {
	Agency        string
	Date          time.Time
	Vendor        string
	Part          string
	Description   string
	Quantity      float64
	PurchaseOrder string
}

// RequestLayout describes how one agency's Drive export is laid out:
// how many banner lines precede the header row, whether dates read
// day-first, and which column carries the purchase order.
type RequestLayout struct {
	Agency      string
	SkipLines   int
	DayFirst    bool
	OrderColumn string
}

// LoadRequests reads a Windows-1252 sales-request CSV. Cancelled rows
// (non-empty CANCELAR (X) cell) are dropped, dates are run through the
// messy Spanish date normalizer, and rows missing a date, vendor or
// part never make it out. Only the reporting year survives.
func LoadRequests(r io.Reader, layout RequestLayout, year int) ([]Request, error) {
	decoded := bufio.NewReader(charmap.Windows1252.NewDecoder().Reader(r))
	for i := 0; i < layout.SkipLines; i++ {
		if _, err := decoded.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("skipping %s banner lines: %w", layout.Agency, err)
		}
	}

	df := dataframe.ReadCSV(decoded, dataframe.WithLazyQuotes(true))
	if df.Error() != nil {
		return nil, fmt.Errorf("reading %s requests: %w", layout.Agency, df.Error())
	}

	cols := make(map[string]int, len(df.Names()))
	for i, n := range df.Names() {
		cols[strings.TrimSpace(n)] = i
	}
	cell := func(row int, name string) string {
		idx, ok := cols[name]
		if !ok {
			return ""
		}
		v := df.Elem(row, idx).String()
		if strings.EqualFold(strings.TrimSpace(v), "nan") {
			return ""
		}
		return strings.TrimSpace(v)
	}

	var requests []Request
	for i := 0; i < df.Nrow(); i++ {
		if cell(i, "CANCELAR (X)") != "" {
			continue
		}
		date, ok := normalize.MessyDate(cell(i, "Fecha"), layout.DayFirst)
		if !ok || date.Year() != year {
			continue
		}
		vendor := cell(i, "Vendedor")
		part := cell(i, "No. De Parte")
		if vendor == "" || part == "" {
			continue
		}
		qty, _ := normalize.Number(cell(i, "Cantidad"))

		requests = append(requests, Request{
			Agency:        layout.Agency,
			Date:          date,
			Vendor:        vendor,
			Part:          part,
			Description:   cell(i, "Descripcion"),
			Quantity:      qty,
			PurchaseOrder: cell(i, layout.OrderColumn),
		})
	}
	return requests, nil
}
