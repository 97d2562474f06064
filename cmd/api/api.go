package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/logger"
)

type application struct {
	config config
	logger *logger.Logger
}

type config struct {
	addr           string
	ledger         ledgerConfig
	maxUploadBytes int64
}

type ledgerConfig struct {
	url  string
	year int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Report generation walks every uploaded workbook in memory, so the
	// request timeout is generous.
	r.Use(middleware.Timeout(120 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/reports", func(r chi.Router) {
			r.Post("/general", app.handleGeneralReport)
			r.Post("/monthly", app.handleMonthlyReport)
			r.Post("/remainder", app.handleRemainderReport)
		})
		r.Route("/ledger", func(r chi.Router) {
			r.Post("/crosscheck", app.handleLedgerCrossCheck)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	log.Printf("Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
