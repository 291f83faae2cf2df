package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dazos/cfo-copilot-api/internal/scheduler"
	"github.com/dazos/cfo-copilot-api/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSync = "sync"
	CronJobTypeEOD  = "eod"
	CronJobTypeAll  = "all"
)

// CronJobServices contém os agendadores acionáveis manualmente
type CronJobServices struct {
	SalesforceSyncService *scheduler.SalesforceSyncService
	EODSnapshotService    *scheduler.EODSnapshotService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSync:
			if services.SalesforceSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrSyncUnavailable, "Serviço de sincronização do Salesforce não disponível", nil)
				return
			}
			services.SalesforceSyncService.TriggerManualSync()

		case CronJobTypeEOD:
			if services.EODSnapshotService == nil {
				apiErrors.WriteError(w, apiErrors.ErrSyncUnavailable, "Serviço de snapshot de fim de dia não disponível", nil)
				return
			}
			services.EODSnapshotService.TriggerManualCapture()

		case CronJobTypeAll:
			if services.SalesforceSyncService != nil {
				services.SalesforceSyncService.TriggerManualSync()
			}
			if services.EODSnapshotService != nil {
				services.EODSnapshotService.TriggerManualCapture()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: sync, eod, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.SalesforceSyncService != nil {
			status["sync"] = services.SalesforceSyncService.GetStatus()
		}
		if services.EODSnapshotService != nil {
			status["eod"] = services.EODSnapshotService.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
