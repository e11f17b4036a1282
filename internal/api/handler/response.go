package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/budget-guard-api/internal/usecases/auditing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/pacing"
	"github.com/vfg2006/budget-guard-api/pkg/apiErrors"
	"github.com/vfg2006/budget-guard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeDomainError traduz os erros dos casos de uso para os códigos da API
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, pacing.ErrInvalidDate):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDate, err.Error(), nil)
	case errors.Is(err, pacing.ErrInvalidCampaign):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCampaign, err.Error(), nil)
	case errors.Is(err, auditing.ErrSnapshotNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSnapshotNotFound, "Snapshot não encontrado", nil)
	case errors.Is(err, auditing.ErrStorageDisabled):
		apiErrors.WriteError(w, apiErrors.ErrStorageDisabled, "Banco de dados desabilitado", nil)
	case errors.Is(err, auditing.ErrMalformedAudit):
		log.ForContext(r.Context()).WithError(err).Error("Snapshot armazenado corrompido")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Snapshot armazenado inválido", nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
