package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dazos/cfo-copilot-api/internal/usecases/reporting"
	"github.com/dazos/cfo-copilot-api/pkg/apiErrors"
	"github.com/dazos/cfo-copilot-api/pkg/log"
	"github.com/dazos/cfo-copilot-api/pkg/utils"
	"github.com/julienschmidt/httprouter"
)

// RunQuickBooksSync captura e armazena os relatórios financeiros atuais
func RunQuickBooksSync(service reporting.ReportingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("quickbooks: manual report sync requested")

		result := service.SyncReports(r.Context())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	})
}

// GetLatestReport responde o snapshot mais recente do tipo pedido.
// ?as_of=YYYY-MM-DD limita a busca a relatórios até aquela data.
func GetLatestReport(service reporting.ReportingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		reportType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if reportType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de relatório não especificado", nil)
			return
		}

		before := time.Now().UTC()
		if rawAsOf := r.URL.Query().Get("as_of"); rawAsOf != "" {
			asOf, err := utils.ParseDate(rawAsOf)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro as_of inválido, use YYYY-MM-DD", nil)
				return
			}
			before = asOf.Add(24*time.Hour - time.Second)
		}

		report, err := service.LatestReport(reportType, before)
		if err != nil {
			logger.WithError(err).Error("quickbooks: failed to load latest report")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao buscar relatório", nil)
			return
		}

		if report == nil {
			apiErrors.WriteError(w, apiErrors.ErrSnapshotNotFound, "Nenhum relatório armazenado para o tipo pedido", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	})
}
