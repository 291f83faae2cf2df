package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dazos/cfo-copilot-api/internal/usecases/answering"
	"github.com/dazos/cfo-copilot-api/pkg/apiErrors"
	"github.com/dazos/cfo-copilot-api/pkg/log"
)

type copilotRequest struct {
	Question string `json:"question"`
}

// AskCopilot responde perguntas de ARR em linguagem natural
func AskCopilot(service answering.AnsweringService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request copilotRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.WithError(err).Warn("copilot: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		request.Question = strings.TrimSpace(request.Question)
		if request.Question == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Pergunta não informada", nil)
			return
		}

		logger.WithField("question", request.Question).Info("copilot: question received")

		response, err := service.Answer(r.Context(), request.Question)
		if err != nil {
			logger.WithError(err).Error("copilot: failed to answer question")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Falha ao responder a pergunta", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}
