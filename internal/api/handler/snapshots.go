package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/internal/usecases/auditing"
	"github.com/vfg2006/budget-guard-api/pkg/apiErrors"
	"github.com/vfg2006/budget-guard-api/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SnapshotFinder consulta os snapshots persistidos
type SnapshotFinder interface {
	Find(ctx context.Context, id string) (*domain.AnalysisSnapshot, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.AnalysisSnapshotSummary, error)
}

// ReportRenderer gera a planilha de um snapshot
type ReportRenderer interface {
	Write(snapshot *domain.AnalysisSnapshot, w io.Writer) error
	GenerateFilename(prefix string, snapshot *domain.AnalysisSnapshot) string
}

func ListSnapshots(finder SnapshotFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		summaries, err := finder.ListRecent(r.Context(), limit)
		if err != nil {
			writeDomainError(w, r, err, "Erro ao listar snapshots")
			return
		}

		writeJSON(w, r, http.StatusOK, summaries)
	}
}

func GetSnapshot(finder SnapshotFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, ok := findSnapshot(w, r, finder)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, auditing.NewDocument(snapshot))
	}
}

// DownloadSnapshotReport devolve a planilha do snapshot
func DownloadSnapshotReport(finder SnapshotFinder, reports ReportRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, ok := findSnapshot(w, r, finder)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reports.GenerateFilename("", snapshot)))

		if err := reports.Write(snapshot, w); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar planilha do snapshot")
		}
	}
}

func findSnapshot(w http.ResponseWriter, r *http.Request, finder SnapshotFinder) (*domain.AnalysisSnapshot, bool) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if id == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do snapshot não informado", nil)
		return nil, false
	}

	snapshot, err := finder.Find(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "Erro ao buscar snapshot")
		return nil, false
	}

	return snapshot, true
}
