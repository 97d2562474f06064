package ledger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding/charmap"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/grid"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/normalize"
)

// MasterSale is one row of the authoritative sales ledger, classified
// into an agency by its warehouse label.
type MasterSale struct {
	Agency   string
	Part     string
	Quantity float64
	Date     time.Time
}

// FetchMasterSales downloads the master sales ledger and keeps the
// rows of the reporting year. Drive serves the file through redirects
// that drop headers, so the browser User-Agent is re-applied on every
// hop. CSV exports are Windows-1252 encoded; anything else is read as
// a workbook.
func FetchMasterSales(ctx context.Context, url string, year int) ([]MasterSale, error) {
	client := &http.Client{}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		req.Header.Add("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3")
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, DirectDriveURL(url), nil)
	if err != nil {
		return nil, fmt.Errorf("building ledger request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching master ledger: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching master ledger: %s", resp.Status)
	}

	if strings.Contains(strings.ToLower(url), "csv") {
		return parseMasterCSV(resp.Body, year)
	}
	return parseMasterWorkbook(resp.Body, year)
}

func parseMasterCSV(r io.Reader, year int) ([]MasterSale, error) {
	// Windows1252 because that is the encoding of the Drive exports.
	decoded := charmap.Windows1252.NewDecoder().Reader(r)
	df := dataframe.ReadCSV(decoded, dataframe.WithLazyQuotes(true))
	if df.Error() != nil {
		return nil, fmt.Errorf("reading ledger csv: %w", df.Error())
	}

	cols := columnIndex(df.Names())
	warehouse, okW := cols["ALMACEN"]
	part, okP := cols["NP"]
	date, okD := cols["FECHA"]
	qty, okQ := cols["CANTIDAD"]
	if !okW || !okP || !okD || !okQ {
		return nil, fmt.Errorf("ledger csv is missing one of ALMACEN/NP/FECHA/CANTIDAD")
	}

	var sales []MasterSale
	for i := 0; i < df.Nrow(); i++ {
		s, ok := masterRow(
			df.Elem(i, warehouse).String(),
			df.Elem(i, part).String(),
			df.Elem(i, date).String(),
			df.Elem(i, qty).String(),
			year,
		)
		if ok {
			sales = append(sales, s)
		}
	}
	return sales, nil
}

func parseMasterWorkbook(r io.Reader, year int) ([]MasterSale, error) {
	sheets, err := grid.ReadWorkbook(r)
	if err != nil {
		return nil, fmt.Errorf("reading ledger workbook: %w", err)
	}
	rows := sheets[0].Rows
	if len(rows) == 0 {
		return nil, nil
	}

	cols := columnIndex(rows[0])
	warehouse, okW := cols["ALMACEN"]
	part, okP := cols["NP"]
	date, okD := cols["FECHA"]
	qty, okQ := cols["CANTIDAD"]
	if !okW || !okP || !okD || !okQ {
		return nil, fmt.Errorf("ledger workbook is missing one of ALMACEN/NP/FECHA/CANTIDAD")
	}

	var sales []MasterSale
	for _, row := range rows[1:] {
		s, ok := masterRow(
			grid.Cell(row, warehouse),
			grid.Cell(row, part),
			grid.Cell(row, date),
			grid.Cell(row, qty),
			year,
		)
		if ok {
			sales = append(sales, s)
		}
	}
	return sales, nil
}

func masterRow(warehouse, part, date, qty string, year int) (MasterSale, bool) {
	d, ok := normalize.ExtractDate(date)
	if !ok || d.Year() != year {
		return MasterSale{}, false
	}
	q, ok := normalize.Number(qty)
	if !ok {
		return MasterSale{}, false
	}
	return MasterSale{
		Agency:   classifyAgency(warehouse),
		Part:     strings.TrimSpace(part),
		Quantity: q,
		Date:     d,
	}, true
}

// classifyAgency folds the free-text warehouse labels of the ledger
// into the two agency names used everywhere else.
func classifyAgency(warehouse string) string {
	upper := strings.ToUpper(strings.TrimSpace(warehouse))
	switch {
	case strings.Contains(upper, "CUAUTI"):
		return "CUAUTITLAN"
	case strings.Contains(upper, "TULTI"):
		return "TULTITLAN"
	default:
		return upper
	}
}

func columnIndex(names []string) map[string]int {
	cols := make(map[string]int, len(names))
	for i, n := range names {
		cols[strings.ToUpper(strings.TrimSpace(n))] = i
	}
	return cols
}
