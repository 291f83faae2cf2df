package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dazos/cfo-copilot-api/internal/usecases/snapshotting"
	"github.com/dazos/cfo-copilot-api/pkg/apiErrors"
	"github.com/dazos/cfo-copilot-api/pkg/log"
)

const defaultSnapshotListLimit = 50

// ListSnapshots responde os metadados dos snapshots, com filtros opcionais
// ?tag=sync|eod e ?limit=
func ListSnapshots(service snapshotting.SnapshotService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		tag := r.URL.Query().Get("tag")

		limit := uint64(defaultSnapshotListLimit)
		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			parsed, err := strconv.ParseUint(rawLimit, 10, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		infos, err := service.List(tag, limit)
		if err != nil {
			logger.WithError(err).Error("snapshots: failed to list snapshots")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao listar snapshots", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(infos)
	})
}
