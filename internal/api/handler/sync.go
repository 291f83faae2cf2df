package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dazos/cfo-copilot-api/internal/usecases/syncing"
	"github.com/dazos/cfo-copilot-api/pkg/log"
)

// RunSalesforceSync executa uma sincronização completa com o Salesforce e
// responde o relatório estruturado. Falha parcial responde 200 com ok=false;
// o chamador decide o que fazer com os contadores.
func RunSalesforceSync(service syncing.SyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("sync: manual Salesforce sync requested")

		report := service.Sync(r.Context())

		logger.WithFields(log.Fields{
			"ok":            report.OK,
			"accounts":      report.SyncedAccounts,
			"opportunities": report.SyncedOpportunities,
			"line_items":    report.SyncedLineItems,
		}).Info("sync: Salesforce sync finished")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	})
}
