package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dazos/cfo-copilot-api/internal/usecases/aggregating"
	"github.com/dazos/cfo-copilot-api/pkg/apiErrors"
	"github.com/dazos/cfo-copilot-api/pkg/log"
)

// GetDashboardKPI responde o resumo do dashboard: ARR contratado e pipeline
func GetDashboardKPI(service aggregating.AggregatingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		kpi, err := service.DashboardKPI()
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to compute KPI summary")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao calcular o resumo do dashboard", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(kpi)
	})
}

// GetARRTable responde a tabela de ARR conta x produto
func GetARRTable(service aggregating.AggregatingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		table, err := service.LiveARRTable()
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to build ARR table")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao montar a tabela de ARR", nil)
			return
		}

		logger.WithFields(log.Fields{
			"rows":        len(table.Rows),
			"grand_total": table.GrandTotal,
		}).Debug("dashboard: ARR table built")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(table)
	})
}

// GetARRByAccount responde o rollup de ARR por conta
func GetARRByAccount(service aggregating.AggregatingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		response, err := service.ARRByAccount()
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to build ARR by account")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao montar o ARR por conta", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

// GetARRExamples responde a separação de ARR aberto x fechado-ganho
func GetARRExamples(service aggregating.AggregatingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		response, err := service.ARRExamples()
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to build ARR examples")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao montar os exemplos de ARR", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

// GetBookings responde a lista plana de bookings, com filtro opcional
// ?category=pipeline|bookings_closed_won|bookings_closed_lost|arr_eligible_closed_won
func GetBookings(service aggregating.AggregatingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		category := r.URL.Query().Get("category")

		rows, err := service.Bookings(category)
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to build bookings rows")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao montar as linhas de bookings", nil)
			return
		}

		logger.WithFields(log.Fields{
			"category": category,
			"rows":     len(rows),
		}).Debug("dashboard: bookings rows built")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	})
}
