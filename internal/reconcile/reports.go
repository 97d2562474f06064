package reconcile

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/aggregate"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/normalize"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/report"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/scan"
)

// GeneralReport resolves the point-in-time report, one sheet per
// loaded agency, and writes the workbook to w.
func (s *Session) GeneralReport(w io.Writer) error {
	var tables []report.Table
	for _, name := range s.order {
		rows := report.Resolve(s.agencies[name].resolveInput())
		s.log.Info(component, "%s general report: %d parts", name, len(rows))
		tables = append(tables, report.Assemble("Detalle_"+name, rows))
	}
	if len(tables) == 0 {
		return fmt.Errorf("no agency data loaded")
	}
	return report.Write(w, tables)
}

// MonthlyReport partitions every loaded table by calendar month and
// resolves one sheet per agency and month, named with the Spanish
// month name.
func (s *Session) MonthlyReport(w io.Writer) error {
	var tables []report.Table
	for _, name := range s.order {
		d := s.agencies[name]
		for _, month := range purchaseMonths(d.purchases) {
			rows := report.Resolve(d.monthSlice(month).resolveInput())
			tables = append(tables, report.Assemble(sheetName(name, month), rows))
		}
	}
	if len(tables) == 0 {
		return fmt.Errorf("no agency data loaded")
	}
	s.log.Info(component, "monthly report: %d sheets", len(tables))
	return report.Write(w, tables)
}

// RemainderReport depletes each agency's purchase cohorts against its
// sales-equivalents and writes one sheet per agency and month that
// still holds unsold stock. A fully sold history produces the
// placeholder sheet instead of an error.
func (s *Session) RemainderReport(w io.Writer) error {
	var tables []report.Table
	for _, name := range s.order {
		d := s.agencies[name]
		remainders := report.Remainders(report.RemainderInput{
			Purchases:    d.purchases,
			DirectSales:  d.directSales,
			Transfers:    d.transfers,
			ManualSales:  d.manualSales,
			Dispositions: d.dispositions,
		})
		s.log.Info(component, "%s remainders: %d cohorts with unsold stock", name, len(remainders))

		// Remainders arrive sorted by month, so contiguous runs map
		// one-to-one onto sheets.
		for start := 0; start < len(remainders); {
			end := start
			for end < len(remainders) && remainders[end].Month.Equal(remainders[start].Month) {
				end++
			}
			month := remainders[start].Month
			tables = append(tables, report.AssembleRemainders(sheetName(name, month), remainders[start:end]))
			start = end
		}
	}
	if len(tables) == 0 {
		tables = append(tables, report.Table{
			Name:    "Remanentes",
			Columns: []report.Column{{Name: "Msg"}},
			Rows:    [][]any{{"Todo vendido"}},
		})
	}
	return report.Write(w, tables)
}

func (d *agencyData) resolveInput() report.ResolveInput {
	transfers := make(map[string][]aggregate.Row, len(d.transfers))
	for warehouse, records := range d.transfers {
		transfers[warehouse] = aggregate.TransfersByPart(records)
	}
	manual := make(map[string][]aggregate.Row, len(d.manualSales))
	for warehouse, records := range d.manualSales {
		manual[warehouse] = aggregate.SalesByPart(records)
	}
	return report.ResolveInput{
		Purchases:    aggregate.PurchasesByPart(d.purchases),
		Transfers:    transfers,
		DirectSales:  aggregate.SalesByPart(d.directSales),
		ManualSales:  manual,
		Dispositions: d.dispositions,
	}
}

// monthSlice filters every table down to records dated in the given
// month. Dispositions are shared, not copied.
func (d *agencyData) monthSlice(month time.Time) *agencyData {
	sliced := &agencyData{
		transfers:    make(map[string][]scan.Transfer),
		manualSales:  make(map[string][]scan.Sale),
		dispositions: d.dispositions,
	}
	for _, p := range d.purchases {
		if monthOf(p.InvoiceDate).Equal(month) {
			sliced.purchases = append(sliced.purchases, p)
		}
	}
	for warehouse, records := range d.transfers {
		for _, t := range records {
			if monthOf(t.MovementDate).Equal(month) {
				sliced.transfers[warehouse] = append(sliced.transfers[warehouse], t)
			}
		}
	}
	for _, sale := range d.directSales {
		if monthOf(sale.Date).Equal(month) {
			sliced.directSales = append(sliced.directSales, sale)
		}
	}
	for warehouse, records := range d.manualSales {
		for _, sale := range records {
			if monthOf(sale.Date).Equal(month) {
				sliced.manualSales[warehouse] = append(sliced.manualSales[warehouse], sale)
			}
		}
	}
	return sliced
}

func purchaseMonths(purchases []scan.Purchase) []time.Time {
	seen := make(map[time.Time]bool)
	var months []time.Time
	for _, p := range purchases {
		if p.InvoiceDate.IsZero() {
			continue
		}
		m := monthOf(p.InvoiceDate)
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func sheetName(agency string, month time.Time) string {
	return fmt.Sprintf("%s_%s_%d", agency, normalize.MonthName(month.Month()), month.Year())
}
