package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/internal/usecases/analysing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/auditing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/validating"
	"github.com/vfg2006/budget-guard-api/pkg/apiErrors"
	"github.com/vfg2006/budget-guard-api/pkg/log"
)

const maxUploadSize = 10 << 20

// SnapshotRecorder grava os artefatos da análise
type SnapshotRecorder interface {
	Record(ctx context.Context, snapshot *domain.AnalysisSnapshot) (*auditing.Record, error)
}

type PacingServices struct {
	Validator validating.Validator
	Analyser  analysing.BatchAnalyser
	Recorder  SnapshotRecorder
	Now       func() time.Time
}

type campaignRequest struct {
	Name          string `json:"name"`
	MonthlyBudget string `json:"monthly_budget"`
	CurrentSpend  string `json:"current_spend"`
	GrossBudget   string `json:"gross_budget,omitempty"`
}

type analyseRequest struct {
	EvaluationDate string            `json:"evaluation_date"`
	Campaigns      []campaignRequest `json:"campaigns"`
}

type analyseResponse struct {
	Record   *auditing.Record   `json:"record"`
	Snapshot *auditing.Document `json:"snapshot"`
}

// AnalysePortfolio analisa as campanhas enviadas em JSON
func AnalysePortfolio(services PacingServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyseRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize)).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if len(req.Campaigns) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhuma campanha informada", nil)
			return
		}

		date, ok := evaluationDate(w, req.EvaluationDate, services.now())
		if !ok {
			return
		}

		rows := make([]map[string]string, 0, len(req.Campaigns))
		for _, c := range req.Campaigns {
			rows = append(rows, map[string]string{
				validating.ColumnCampaign:      c.Name,
				validating.ColumnMonthlyBudget: c.MonthlyBudget,
				validating.ColumnCurrentSpend:  c.CurrentSpend,
				validating.ColumnGrossBudget:   c.GrossBudget,
			})
		}

		result := services.Validator.ValidateRows(rows, 1)
		analyseValidated(w, r, services, result, date)
	}
}

// UploadPortfolio analisa um CSV enviado no corpo da requisição
func UploadPortfolio(services PacingServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		date, ok := evaluationDate(w, query.Get("date"), services.now())
		if !ok {
			return
		}

		hasHeader := !strings.EqualFold(query.Get("header"), "false")

		result, err := services.Validator.ValidateCSV(http.MaxBytesReader(w, r.Body, maxUploadSize), hasHeader)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		analyseValidated(w, r, services, result, date)
	}
}

func analyseValidated(w http.ResponseWriter, r *http.Request, services PacingServices, result *validating.ValidationResult, date domain.Date) {
	logger := log.ForContext(r.Context())

	if !result.IsValid() {
		logger.WithField("campaigns", result.TotalRows).Warnf("Lote rejeitado com %d erros de validação", result.ErrorCount())
		apiErrors.WriteError(w, apiErrors.ErrInvalidCSV, "Campanhas com dados inválidos", result.Errors)
		return
	}

	snapshot, err := services.Analyser.AnalyseBatch(r.Context(), result.Campaigns, date)
	if err != nil {
		writeDomainError(w, r, err, "Erro ao analisar campanhas")
		return
	}

	record, err := services.Recorder.Record(r.Context(), snapshot)
	if err != nil {
		writeDomainError(w, r, err, "Erro ao gravar auditoria")
		return
	}

	writeJSON(w, r, http.StatusOK, analyseResponse{
		Record:   record,
		Snapshot: auditing.NewDocument(snapshot),
	})
}

// evaluationDate usa hoje quando vazio. Datas inexistentes seguem para o motor, que as rejeita.
func evaluationDate(w http.ResponseWriter, raw string, now time.Time) (domain.Date, bool) {
	if raw == "" {
		return domain.DateOf(now), true
	}

	date, err := domain.ParseDateUnchecked(raw)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return domain.Date{}, false
	}

	return date, true
}

func (s PacingServices) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
