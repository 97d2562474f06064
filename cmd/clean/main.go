// Command clean batch-cleans the detailed BPro exports into the two
// unified master workbooks (Master_Compras.xlsx, Master_Traspasos.xlsx)
// used by downstream BI tooling.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/grid"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/logger"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/reconcile"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/report"
	"github.com/CRACUAUTITLAN/Limpiador-COMPRAS-Y-TRASPASOS/internal/scan"
)

const component = "Cleaner"

type source struct {
	agency reconcile.Agency
	path   string
}

func main() {
	appLogger := logger.New(logger.LevelInfo)

	// Remove default timestamp since we add our own
	log.SetFlags(0)
	start := time.Now()

	comprasCU := flag.String("compras-cuautitlan", "", "BPro purchase export for Cuautitlán")
	comprasTU := flag.String("compras-tultitlan", "", "BPro purchase export for Tultitlán")
	traspasosCU := flag.String("traspasos-cuautitlan", "", "BPro transfer export for Cuautitlán")
	traspasosTU := flag.String("traspasos-tultitlan", "", "BPro transfer export for Tultitlán")
	outDir := flag.String("out", ".", "Output directory for the master workbooks")
	logLevel := flag.String("loglevel", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	switch strings.ToLower(*logLevel) {
	case "debug":
		appLogger.SetLogLevel(logger.LevelDebug)
	case "warn":
		appLogger.SetLogLevel(logger.LevelWarn)
	case "error":
		appLogger.SetLogLevel(logger.LevelError)
	default:
		appLogger.SetLogLevel(logger.LevelInfo)
	}

	purchaseSources := []source{
		{reconcile.Cuautitlan, *comprasCU},
		{reconcile.Tultitlan, *comprasTU},
	}
	transferSources := []source{
		{reconcile.Cuautitlan, *traspasosCU},
		{reconcile.Tultitlan, *traspasosTU},
	}

	purchases, readPurchases := cleanPurchases(purchaseSources, appLogger)
	transfers, readTransfers := cleanTransfers(transferSources, appLogger)

	if readPurchases == 0 && readTransfers == 0 {
		appLogger.Fatal(component, "No source file could be read")
		return
	}

	if readPurchases > 0 {
		writeMaster(filepath.Join(*outDir, "Master_Compras.xlsx"), purchaseTable(purchases), appLogger)
	}
	if readTransfers > 0 {
		writeMaster(filepath.Join(*outDir, "Master_Traspasos.xlsx"), transferTable(transfers), appLogger)
	}

	appLogger.Info(component, "Cleaning completed: duration=%.2f seconds", time.Since(start).Seconds())
}

func cleanPurchases(sources []source, appLogger *logger.Logger) ([]scan.Purchase, int) {
	var records []scan.Purchase
	read := 0
	for _, src := range sources {
		sheets, ok := openGrid(src, appLogger)
		if !ok {
			continue
		}
		scanned, outcomes := scan.Purchases(sheets, src.agency.Name)
		appLogger.Info(component, "%s purchases: file=%s records=%d rows=%d",
			src.agency.Name, src.path, len(scanned), len(outcomes))
		records = append(records, scanned...)
		read++
	}
	return records, read
}

func cleanTransfers(sources []source, appLogger *logger.Logger) ([]scan.Transfer, int) {
	var records []scan.Transfer
	read := 0
	for _, src := range sources {
		sheets, ok := openGrid(src, appLogger)
		if !ok {
			continue
		}
		scanned, outcomes := scan.Transfers(sheets, src.agency.Name)
		appLogger.Info(component, "%s transfers: file=%s records=%d rows=%d",
			src.agency.Name, src.path, len(scanned), len(outcomes))
		records = append(records, scanned...)
		read++
	}
	return records, read
}

func openGrid(src source, appLogger *logger.Logger) ([]grid.Sheet, bool) {
	if src.path == "" {
		return nil, false
	}
	f, err := os.Open(src.path)
	if err != nil {
		appLogger.Warn(component, "Skipping source: file=%s error=%v", src.path, err)
		return nil, false
	}
	defer f.Close()

	sheets, err := grid.ReadWorkbook(f)
	if err != nil {
		appLogger.Warn(component, "Skipping source: file=%s error=%v", src.path, err)
		return nil, false
	}
	return sheets, true
}

func writeMaster(path string, table report.Table, appLogger *logger.Logger) {
	out, err := os.Create(path)
	if err != nil {
		appLogger.Error(component, "Failed to create output: file=%s error=%v", path, err)
		return
	}
	defer out.Close()

	if err := report.Write(out, []report.Table{table}); err != nil {
		appLogger.Error(component, "Failed to write output: file=%s error=%v", path, err)
		return
	}
	appLogger.Info(component, "Master table written: file=%s rows=%d", path, len(table.Rows))
}
