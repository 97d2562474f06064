// Package reconcile holds the pipeline state for one report run: the
// scanned tables per agency, the per-warehouse transfer map, manual
// sales and dispositions, plus the operations that turn them into the
// general, monthly and remainder workbooks.
package reconcile

import "strings"

// Agency binds an agency name to the BPro nomenclatures and Drive
// export quirks that identify its rows.
type Agency struct {
	Name          string
	PurchaseCode  string
	TransferCodes []string
	SaleCodes     []string
	// Drive sales-request export layout.
	DayFirst    bool
	RequestSkip int
	OrderColumn string
}

var (
	Cuautitlan = Agency{
		Name:          "CUAUTITLAN",
		PurchaseCode:  "CRCU",
		TransferCodes: []string{"TRASUCCU", "TRASAPROCU"},
		SaleCodes:     []string{"VRCU"},
		DayFirst:      true,
		RequestSkip:   1,
		OrderColumn:   "Orden de Compra",
	}
	Tultitlan = Agency{
		Name:          "TULTITLAN",
		PurchaseCode:  "CRTU",
		TransferCodes: []string{"TRASUCTU", "TRASAPROTU"},
		SaleCodes:     []string{"VRTU"},
		DayFirst:      false,
		RequestSkip:   6,
		OrderColumn:   "Observaciones",
	}
)

// Agencies lists every known agency in report order.
func Agencies() []Agency {
	return []Agency{Cuautitlan, Tultitlan}
}

// AgencyByName resolves a case-insensitive agency name.
func AgencyByName(name string) (Agency, bool) {
	for _, a := range Agencies() {
		if strings.EqualFold(strings.TrimSpace(name), a.Name) {
			return a, true
		}
	}
	return Agency{}, false
}
