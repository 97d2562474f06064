package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/reconcile"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/report"
)

const apiComponent = "API"

// Upload form contract: file fields are named
// purchases_<AGENCIA>, transfers_<AGENCIA>, sales_<AGENCIA> and
// manual_<AGENCIA>_<almacen>; the optional "dispositions" value is a
// JSON object mapping agency to {warehouse: action}.

func (app *application) handleGeneralReport(w http.ResponseWriter, r *http.Request) {
	session, err := app.buildSession(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeWorkbook(w, "Reporte_General.xlsx", session.GeneralReport)
}

func (app *application) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	session, err := app.buildSession(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeWorkbook(w, "Reporte_Mensual.xlsx", session.MonthlyReport)
}

func (app *application) handleRemainderReport(w http.ResponseWriter, r *http.Request) {
	session, err := app.buildSession(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeWorkbook(w, "Reporte_Remanentes.xlsx", session.RemainderReport)
}

// buildSession loads every readable source file of the upload into a
// fresh session. A source that cannot be opened or scanned is logged
// and skipped; the request only fails when nothing could be loaded.
func (app *application) buildSession(r *http.Request) (*reconcile.Session, error) {
	if err := r.ParseMultipartForm(app.config.maxUploadBytes); err != nil {
		return nil, fmt.Errorf("parsing upload: %w", err)
	}

	session := reconcile.NewSession(app.logger)
	loaded := 0
	for field, headers := range r.MultipartForm.File {
		kind, agency, warehouse, ok := parseFileField(field)
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
			switch kind {
			case "purchases":
				err = session.LoadPurchases(agency, file)
			case "transfers":
				err = session.LoadTransfers(agency, file)
			case "sales":
				err = session.LoadDirectSales(agency, file)
			case "manual":
				err = session.LoadManualSales(agency, warehouse, file)
			default:
				app.logger.Warn(apiComponent, "ignoring unrecognized form field %q", field)
			}
			file.Close()
			if err != nil {
				app.logger.Warn(apiComponent, "skipping source %q: %v", header.Filename, err)
				continue
			}
			loaded++
		}
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no readable source files in upload")
	}

	if raw := r.FormValue("dispositions"); raw != "" {
		var tables map[string]report.Dispositions
		if err := json.Unmarshal([]byte(raw), &tables); err != nil {
			return nil, fmt.Errorf("parsing dispositions: %w", err)
		}
		for name, table := range tables {
			agency, ok := reconcile.AgencyByName(name)
			if !ok {
				app.logger.Warn(apiComponent, "dispositions for unknown agency %q ignored", name)
				continue
			}
			session.SetDispositions(agency, table)
		}
	}
	return session, nil
}

// parseFileField splits a form field name into its source kind, agency
// and, for manual sales, the warehouse the file vouches for.
func parseFileField(field string) (kind string, agency reconcile.Agency, warehouse string, ok bool) {
	parts := strings.SplitN(field, "_", 3)
	if len(parts) < 2 {
		return "", reconcile.Agency{}, "", false
	}
	kind = strings.ToLower(parts[0])
	agency, ok = reconcile.AgencyByName(parts[1])
	if !ok {
		return "", reconcile.Agency{}, "", false
	}
	if kind == "manual" {
		if len(parts) < 3 || parts[2] == "" {
			return "", reconcile.Agency{}, "", false
		}
		warehouse = parts[2]
	}
	return kind, agency, warehouse, true
}
