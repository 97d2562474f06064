package reconcile

import (
	"fmt"
	"io"
	"sort"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/grid"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/logger"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/report"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/scan"
)

const component = "Reconciler"

// Session is the explicit pipeline state for one report run. Every
// table it holds is built fresh from the uploaded grids and discarded
// with the session; nothing survives across runs.
type Session struct {
	log      *logger.Logger
	agencies map[string]*agencyData
	order    []string
}

type agencyData struct {
	purchases    []scan.Purchase
	transfers    map[string][]scan.Transfer
	directSales  []scan.Sale
	manualSales  map[string][]scan.Sale
	dispositions report.Dispositions
}

func NewSession(log *logger.Logger) *Session {
	return &Session{log: log, agencies: make(map[string]*agencyData)}
}

func (s *Session) data(agency Agency) *agencyData {
	d, ok := s.agencies[agency.Name]
	if !ok {
		d = &agencyData{
			transfers:    make(map[string][]scan.Transfer),
			manualSales:  make(map[string][]scan.Sale),
			dispositions: make(report.Dispositions),
		}
		s.agencies[agency.Name] = d
		s.order = append(s.order, agency.Name)
	}
	return d
}

// LoadPurchases scans a purchase export for the agency. A grid that
// cannot be opened fails this source only; sibling sources proceed.
func (s *Session) LoadPurchases(agency Agency, r io.Reader) error {
	sheets, err := grid.ReadWorkbook(r)
	if err != nil {
		return fmt.Errorf("%s purchases: %w", agency.Name, err)
	}
	records, outcomes := scan.PurchasesByCode(sheets, agency.Name, agency.PurchaseCode)
	s.logOutcomes(agency, "purchases", len(records), outcomes)
	s.data(agency).purchases = append(s.data(agency).purchases, records...)
	return nil
}

// LoadTransfers scans a transfer export and registers every discovered
// destination warehouse with the default disposition.
func (s *Session) LoadTransfers(agency Agency, r io.Reader) error {
	sheets, err := grid.ReadWorkbook(r)
	if err != nil {
		return fmt.Errorf("%s transfers: %w", agency.Name, err)
	}
	byDestination, outcomes := scan.TransfersByDestination(sheets, agency.Name, agency.TransferCodes)
	total := 0
	d := s.data(agency)
	for warehouse, records := range byDestination {
		d.transfers[warehouse] = append(d.transfers[warehouse], records...)
		if _, ok := d.dispositions[warehouse]; !ok {
			d.dispositions[warehouse] = report.Considerar
		}
		total += len(records)
	}
	s.logOutcomes(agency, "transfers", total, outcomes)
	return nil
}

// LoadDirectSales scans the general warehouse sales export.
func (s *Session) LoadDirectSales(agency Agency, r io.Reader) error {
	sheets, err := grid.ReadWorkbook(r)
	if err != nil {
		return fmt.Errorf("%s direct sales: %w", agency.Name, err)
	}
	records, outcomes := scan.Sales(sheets, agency.SaleCodes)
	s.logOutcomes(agency, "direct sales", len(records), outcomes)
	s.data(agency).directSales = append(s.data(agency).directSales, records...)
	return nil
}

// LoadManualSales scans the manual sales proof supplied for one
// destination warehouse.
func (s *Session) LoadManualSales(agency Agency, warehouse string, r io.Reader) error {
	sheets, err := grid.ReadWorkbook(r)
	if err != nil {
		return fmt.Errorf("%s manual sales for %s: %w", agency.Name, warehouse, err)
	}
	records, outcomes := scan.Sales(sheets, agency.SaleCodes)
	s.logOutcomes(agency, "manual sales", len(records), outcomes)
	d := s.data(agency)
	d.manualSales[warehouse] = append(d.manualSales[warehouse], records...)
	return nil
}

// SetDisposition overrides the action for one warehouse.
func (s *Session) SetDisposition(agency Agency, warehouse string, action report.Action) {
	s.data(agency).dispositions[warehouse] = action
}

// SetDispositions merges a whole disposition table for the agency.
func (s *Session) SetDispositions(agency Agency, table report.Dispositions) {
	d := s.data(agency)
	for warehouse, action := range table {
		d.dispositions[warehouse] = action
	}
}

// Warehouses lists the destination warehouses discovered for the
// agency so far, sorted.
func (s *Session) Warehouses(agency Agency) []string {
	d, ok := s.agencies[agency.Name]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(d.transfers))
	for warehouse := range d.transfers {
		names = append(names, warehouse)
	}
	sort.Strings(names)
	return names
}

// Purchases exposes the raw purchase records loaded for the agency.
func (s *Session) Purchases(agency Agency) []scan.Purchase {
	if d, ok := s.agencies[agency.Name]; ok {
		return d.purchases
	}
	return nil
}

// Transfers exposes the raw transfer records loaded for the agency,
// flattened across warehouses.
func (s *Session) Transfers(agency Agency) []scan.Transfer {
	d, ok := s.agencies[agency.Name]
	if !ok {
		return nil
	}
	var out []scan.Transfer
	for _, warehouse := range s.Warehouses(agency) {
		out = append(out, d.transfers[warehouse]...)
	}
	return out
}

func (s *Session) logOutcomes(agency Agency, source string, accepted int, outcomes []scan.Outcome) {
	rejected := 0
	for _, o := range outcomes {
		if o.Kind == scan.Rejected {
			rejected++
			s.log.Debug(component, "%s %s: sheet %s row %d rejected: %s",
				agency.Name, source, o.Sheet, o.Row, o.Reason)
		}
	}
	s.log.Info(component, "%s %s: %d records accepted, %d rows rejected",
		agency.Name, source, accepted, rejected)
}
