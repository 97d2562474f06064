package main

import (
	"log"
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/env"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/logger"
)

func main() {
	env.Load()

	cfg := config{
		addr: env.GetString("ADDR", ":8080"),
		ledger: ledgerConfig{
			url:  env.GetString("LEDGER_URL", ""),
			year: env.GetInt("LEDGER_YEAR", time.Now().Year()),
		},
		maxUploadBytes: int64(env.GetInt("MAX_UPLOAD_MB", 64)) << 20,
	}

	app := &application{
		config: cfg,
		logger: logger.New(logger.LogLevel(env.GetInt("LOG_LEVEL", int(logger.LevelInfo)))),
	}

	mux := app.mount()

	log.Fatal(app.run(mux))
}
