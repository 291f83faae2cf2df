package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dazos/cfo-copilot-api/infrastructure/repository"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/pkg/apiErrors"
	"github.com/dazos/cfo-copilot-api/pkg/log"
)

// ListAccounts responde as contas sincronizadas do Salesforce
func ListAccounts(accountRepo repository.AccountRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		accounts, err := accountRepo.List()
		if err != nil {
			logger.WithError(err).Error("listing: failed to list accounts")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao listar contas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	})
}

// ListOpportunities responde as oportunidades sincronizadas, com filtro
// opcional ?stage= (valor bruto do CRM, case-insensitive via variante) e
// ?limit= para paginação simples.
func ListOpportunities(opportunityRepo repository.OpportunityRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		stageFilter := r.URL.Query().Get("stage")

		limit := 0
		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			parsed, err := strconv.Atoi(rawLimit)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		opportunities, err := opportunityRepo.List()
		if err != nil {
			logger.WithError(err).Error("listing: failed to list opportunities")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao listar oportunidades", nil)
			return
		}

		if stageFilter != "" {
			wanted := domain.ParseStage(stageFilter)
			filtered := make([]*domain.Opportunity, 0, len(opportunities))
			for _, opp := range opportunities {
				if opp.Stage() == wanted {
					filtered = append(filtered, opp)
				}
			}
			opportunities = filtered
		}

		if limit > 0 && len(opportunities) > limit {
			opportunities = opportunities[:limit]
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(opportunities)
	})
}
