package main

import (
	"io"
	"net/http"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/grid"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/ledger"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/reconcile"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/report"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/scan"
)

// handleLedgerCrossCheck joins the detailed BPro exports and the Drive
// sales-request CSVs (fields purchases_/transfers_/requests_<AGENCIA>)
// against the remotely fetched master sales ledger.
func (app *application) handleLedgerCrossCheck(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(app.config.maxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "parsing upload: "+err.Error())
		return
	}
	url := r.FormValue("ledger_url")
	if url == "" {
		url = app.config.ledger.url
	}
	if url == "" {
		writeJSONError(w, http.StatusBadRequest, "ledger_url is required")
		return
	}

	var in ledger.CrossCheckInput
	for field, headers := range r.MultipartForm.File {
		kind, agency, _, ok := parseFileField(field)
		if !ok {
			app.logger.Warn(apiComponent, "ignoring unrecognized form field %q", field)
			continue
		}
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				app.logger.Warn(apiComponent, "cannot open upload %q: %v", header.Filename, err)
				continue
			}
			app.loadCrossCheckSource(&in, kind, agency, header.Filename, file)
			file.Close()
		}
	}

	sales, err := ledger.FetchMasterSales(r.Context(), url, app.config.ledger.year)
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	in.Sales = sales

	summary, unsold := ledger.CrossCheck(in)
	writeWorkbook(w, "Base_Final_PowerBI.xlsx", func(out io.Writer) error {
		return report.Write(out, []report.Table{summary, unsold})
	})
}

func (app *application) loadCrossCheckSource(in *ledger.CrossCheckInput, kind string, agency reconcile.Agency, filename string, file io.Reader) {
	switch kind {
	case "purchases", "transfers":
		sheets, err := grid.ReadWorkbook(file)
		if err != nil {
			app.logger.Warn(apiComponent, "skipping source %q: %v", filename, err)
			return
		}
		if kind == "purchases" {
			records, _ := scan.Purchases(sheets, agency.Name)
			in.Purchases = append(in.Purchases, records...)
		} else {
			records, _ := scan.Transfers(sheets, agency.Name)
			in.Transfers = append(in.Transfers, records...)
		}
	case "requests":
		layout := ledger.RequestLayout{
			Agency:      agency.Name,
			SkipLines:   agency.RequestSkip,
			DayFirst:    agency.DayFirst,
			OrderColumn: agency.OrderColumn,
		}
		requests, err := ledger.LoadRequests(file, layout, app.config.ledger.year)
		if err != nil {
			app.logger.Warn(apiComponent, "skipping source %q: %v", filename, err)
			return
		}
		in.Requests = append(in.Requests, requests...)
	default:
		app.logger.Warn(apiComponent, "source kind %q not usable for cross-check", kind)
	}
}
