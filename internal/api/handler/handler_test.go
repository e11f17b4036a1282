package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-guard-api/internal/api/handler/router"
	"github.com/vfg2006/budget-guard-api/internal/config"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/internal/scheduler"
	"github.com/vfg2006/budget-guard-api/internal/usecases/analysing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/auditing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/pacing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/validating"
	"github.com/vfg2006/budget-guard-api/pkg/apiErrors"
	"github.com/vfg2006/budget-guard-api/pkg/middleware"
)

type stubAuthenticator struct {
	claims *domain.Claims
}

func (s stubAuthenticator) GenerateToken(string, string) (string, error) { return "token", nil }

func (s stubAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, nil
}

type memoryStore struct {
	snapshots map[string]*domain.AnalysisSnapshot
	err       error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snapshots: make(map[string]*domain.AnalysisSnapshot)}
}

func (m *memoryStore) Record(_ context.Context, snapshot *domain.AnalysisSnapshot) (*auditing.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.snapshots[snapshot.ID] = snapshot
	return &auditing.Record{SnapshotID: snapshot.ID, AuditPath: "output/audit.json", Persisted: true}, nil
}

func (m *memoryStore) Find(_ context.Context, id string) (*domain.AnalysisSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	snapshot, ok := m.snapshots[id]
	if !ok {
		return nil, auditing.ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (m *memoryStore) ListRecent(_ context.Context, limit int) ([]*domain.AnalysisSnapshotSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	summaries := make([]*domain.AnalysisSnapshotSummary, 0, len(m.snapshots))
	for _, s := range m.snapshots {
		summaries = append(summaries, &domain.AnalysisSnapshotSummary{ID: s.ID, EvaluationDate: s.EvaluationDate})
	}
	return summaries, nil
}

type fakeReports struct{}

func (fakeReports) Write(snapshot *domain.AnalysisSnapshot, w io.Writer) error {
	_, err := io.WriteString(w, "xlsx:"+snapshot.ID)
	return err
}

func (fakeReports) GenerateFilename(_ string, snapshot *domain.AnalysisSnapshot) string {
	return "budget_report_" + snapshot.ID + ".xlsx"
}

type fakeJob struct {
	running   bool
	triggered int
}

func (f *fakeJob) TriggerManualSync() bool {
	if f.running {
		return false
	}
	f.triggered++
	return true
}

func (f *fakeJob) GetStatus() scheduler.JobStatus {
	return scheduler.JobStatus{Enabled: true, CronSchedule: "0 6 * * *", Running: f.running}
}

func pacingServices(store *memoryStore) PacingServices {
	cfg := &config.Config{App: config.App{Version: "test"}}
	return PacingServices{
		Validator: validating.NewService(decimal.RequireFromString("0.15")),
		Analyser:  analysing.NewService(cfg, pacing.NewEngine(pacing.NewDateManager())),
		Recorder:  store,
		Now:       func() time.Time { return time.Date(2024, 12, 18, 10, 0, 0, 0, time.UTC) },
	}
}

func newTestRouter(role string, routes ...[]router.Route) http.Handler {
	configs := make([]router.ConfigRouter, 0, len(routes))
	for _, r := range routes {
		configs = append(configs, router.WithRoutes(r...))
	}

	claims := &domain.Claims{SubjectName: "tester", Role: role}
	return middleware.AuthMiddleware(stubAuthenticator{claims: claims})(router.New(configs...))
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthcheck(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthcheckHandler("1.2.3").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body healthcheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "1.2.3", body.Version)
}

func TestAnalysePortfolio(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		status     int
		code       string
		validateOK func(t *testing.T, resp analyseResponse)
	}{
		{
			name: "Portfólio válido",
			body: `{"evaluation_date":"2024-12-18","campaigns":[
				{"name":"Summer Sale","monthly_budget":"25000.00","current_spend":"20000.00"},
				{"name":"Steady","monthly_budget":"31000.00","current_spend":"10000.00"}]}`,
			status: http.StatusOK,
			validateOK: func(t *testing.T, resp analyseResponse) {
				assert.Equal(t, "2024-12-18", resp.Snapshot.Metadata.EvaluationDate)
				assert.Equal(t, 2, resp.Snapshot.Summary.CampaignCount)
				assert.Equal(t, 1, resp.Snapshot.Summary.CriticalCount)
				assert.Equal(t, "56000.00", resp.Snapshot.Summary.TotalBudget)
				assert.Equal(t, resp.Snapshot.Metadata.ID, resp.Record.SnapshotID)
				require.Len(t, resp.Snapshot.Campaigns, 2)
				assert.Equal(t, domain.RiskCritical, resp.Snapshot.Campaigns[0].Analysis.RiskLevel)
			},
		},
		{
			name:   "Sem data usa hoje",
			body:   `{"campaigns":[{"name":"Steady","monthly_budget":"31000.00","current_spend":"10000.00"}]}`,
			status: http.StatusOK,
			validateOK: func(t *testing.T, resp analyseResponse) {
				assert.Equal(t, "2024-12-18", resp.Snapshot.Metadata.EvaluationDate)
			},
		},
		{
			name:   "JSON inválido",
			body:   `{"campaigns":`,
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidRequest,
		},
		{
			name:   "Sem campanhas",
			body:   `{"campaigns":[]}`,
			status: http.StatusBadRequest,
			code:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "Data mal formatada",
			body:   `{"evaluation_date":"18/12/2024","campaigns":[{"name":"A","monthly_budget":"100","current_spend":"1"}]}`,
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidFormat,
		},
		{
			name:   "Data inexistente",
			body:   `{"evaluation_date":"2025-02-30","campaigns":[{"name":"A","monthly_budget":"100","current_spend":"1"}]}`,
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidDate,
		},
		{
			name:   "Campanha com valores inválidos",
			body:   `{"campaigns":[{"name":"A","monthly_budget":"100,00","current_spend":"1"}]}`,
			status: http.StatusUnprocessableEntity,
			code:   apiErrors.ErrInvalidCSV,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			h := newTestRouter(domain.RoleAnalyst, Pacing(pacingServices(store)))

			rec := do(h, http.MethodPost, "/v1/pacing/analyse", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.code != "" {
				assert.Equal(t, tt.code, decodeError(t, rec).Code)
				assert.Empty(t, store.snapshots)
				return
			}

			var resp analyseResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			tt.validateOK(t, resp)
			assert.Len(t, store.snapshots, 1)
		})
	}
}

func TestAnalysePortfolio_RecorderError(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("disco cheio")
	h := newTestRouter(domain.RoleAdmin, Pacing(pacingServices(store)))

	rec := do(h, http.MethodPost, "/v1/pacing/analyse", `{"campaigns":[{"name":"A","monthly_budget":"100","current_spend":"1"}]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrInternalServer, decodeError(t, rec).Code)
}

func TestUploadPortfolio(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   string
	}{
		{
			name:   "CSV válido",
			query:  "?date=2024-12-18",
			body:   "Campaign,Monthly_Budget,Current_Spend\nSummer Sale,\"R 25,000.00\",20000\n",
			status: http.StatusOK,
		},
		{
			name:   "CSV sem cabeçalho",
			query:  "?date=2024-12-18&header=false",
			body:   "Summer Sale,25000.00,20000.00\n",
			status: http.StatusOK,
		},
		{
			name:   "Linhas inválidas",
			body:   "Campaign,Monthly_Budget,Current_Spend\nSummer Sale,abc,20000\n",
			status: http.StatusUnprocessableEntity,
			code:   apiErrors.ErrInvalidCSV,
		},
		{
			name:   "Colunas obrigatórias ausentes",
			body:   "Campaign,Spend\nSummer Sale,20000\n",
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			h := newTestRouter(domain.RoleAnalyst, Pacing(pacingServices(store)))

			rec := do(h, http.MethodPost, "/v1/pacing/upload"+tt.query, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.code != "" {
				apiErr := decodeError(t, rec)
				assert.Equal(t, tt.code, apiErr.Code)
				return
			}

			var resp analyseResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "25000.00", resp.Snapshot.Summary.TotalBudget)
		})
	}
}

func TestUploadPortfolio_ValidationDetails(t *testing.T) {
	h := newTestRouter(domain.RoleAnalyst, Pacing(pacingServices(newMemoryStore())))

	body := "Campaign,Monthly_Budget,Current_Spend\nA,100,1\nB,abc,1\n"
	rec := do(h, http.MethodPost, "/v1/pacing/upload", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var payload struct {
		Details []validating.ValidationError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Details, 1)
	assert.Equal(t, 3, payload.Details[0].RowNumber)
	assert.Equal(t, validating.ColumnMonthlyBudget, payload.Details[0].FieldName)
}

func seededStore(t *testing.T) (*memoryStore, string) {
	t.Helper()

	store := newMemoryStore()
	h := newTestRouter(domain.RoleAnalyst, Pacing(pacingServices(store)))
	rec := do(h, http.MethodPost, "/v1/pacing/analyse", `{"evaluation_date":"2024-12-18","campaigns":[{"name":"Steady","monthly_budget":"31000.00","current_spend":"10000.00"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return store, resp.Record.SnapshotID
}

func TestSnapshots(t *testing.T) {
	store, id := seededStore(t)
	h := newTestRouter(domain.RoleAnalyst, Snapshots(store, fakeReports{}))

	t.Run("Lista snapshots", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/v1/snapshots?limit=5", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var summaries []domain.AnalysisSnapshotSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
		require.Len(t, summaries, 1)
		assert.Equal(t, id, summaries[0].ID)
	})

	t.Run("Limite inválido", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/v1/snapshots?limit=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Busca por id", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/v1/snapshots/"+id, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var doc auditing.Document
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, id, doc.Metadata.ID)
		assert.Equal(t, "31000.00", doc.Summary.TotalBudget)
	})

	t.Run("Snapshot inexistente", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/v1/snapshots/nao-existe", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrSnapshotNotFound, decodeError(t, rec).Code)
	})

	t.Run("Download da planilha", func(t *testing.T) {
		rec := do(h, http.MethodGet, "/v1/snapshots/"+id+"/report", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "budget_report_"+id+".xlsx")
		assert.True(t, bytes.Equal([]byte("xlsx:"+id), rec.Body.Bytes()))
	})
}

func TestSnapshots_StorageDisabled(t *testing.T) {
	store := newMemoryStore()
	store.err = auditing.ErrStorageDisabled
	h := newTestRouter(domain.RoleAnalyst, Snapshots(store, fakeReports{}))

	rec := do(h, http.MethodGet, "/v1/snapshots", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, apiErrors.ErrStorageDisabled, decodeError(t, rec).Code)
}

func TestCronJobs(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		path      string
		running   bool
		status    int
		triggered int
	}{
		{name: "Admin dispara análise diária", role: domain.RoleAdmin, path: "/v1/cron/run/daily-pacing", status: http.StatusAccepted, triggered: 1},
		{name: "Admin dispara todas", role: domain.RoleAdmin, path: "/v1/cron/run/all", status: http.StatusAccepted, triggered: 1},
		{name: "Tarefa em execução", role: domain.RoleAdmin, path: "/v1/cron/run/daily-pacing", running: true, status: http.StatusConflict},
		{name: "Tipo desconhecido", role: domain.RoleAdmin, path: "/v1/cron/run/meta", status: http.StatusNotFound},
		{name: "Analista não pode disparar", role: domain.RoleAnalyst, path: "/v1/cron/run/daily-pacing", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			daily := &fakeJob{running: tt.running}
			retention := &fakeJob{running: tt.running}
			h := newTestRouter(tt.role, CronJobs(CronJobServices{DailyPacingRun: daily, SnapshotRetention: retention}))

			rec := do(h, http.MethodPost, tt.path, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.triggered, daily.triggered)
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	h := newTestRouter(domain.RoleAdmin, CronJobs(CronJobServices{DailyPacingRun: &fakeJob{running: true}}))

	rec := do(h, http.MethodGet, "/v1/cron/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]scheduler.JobStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Contains(t, status, CronJobTypeDailyPacing)
	assert.True(t, status[CronJobTypeDailyPacing].Running)
	assert.NotContains(t, status, CronJobTypeSnapshotRetention)
}
