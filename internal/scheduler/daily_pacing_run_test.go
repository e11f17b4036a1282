package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-guard-api/internal/config"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/internal/usecases/analysing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/auditing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/pacing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/validating"
)

type fakeRecorder struct {
	snapshots []*domain.AnalysisSnapshot
	err       error
}

func (f *fakeRecorder) Record(_ context.Context, snapshot *domain.AnalysisSnapshot) (*auditing.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.snapshots = append(f.snapshots, snapshot)
	return &auditing.Record{SnapshotID: snapshot.ID, AuditPath: "output/audit.json"}, nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campaigns.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newDailyRun(t *testing.T, inputPath string, recorder SnapshotRecorder) *DailyPacingRunService {
	t.Helper()

	cfg := &config.Config{
		App: config.App{Version: "test"},
		DailyPacingRun: config.DailyPacingRun{
			CronSchedule: "0 6 * * *",
			InputPath:    inputPath,
			Enabled:      true,
		},
	}

	service := NewDailyPacingRunService(
		validating.NewService(decimal.RequireFromString("0.15")),
		analysing.NewService(cfg, pacing.NewEngine(pacing.NewDateManager())),
		recorder,
		cfg,
	)
	service.now = func() time.Time { return time.Date(2024, 12, 18, 6, 0, 0, 0, time.UTC) }
	return service
}

func TestDailyPacingRunService_Run(t *testing.T) {
	tests := []struct {
		name          string
		csv           string
		recorderErr   error
		wantErr       bool
		wantCampaigns int
	}{
		{
			name:          "Analisa todas as campanhas válidas",
			csv:           "Campaign,Monthly_Budget,Current_Spend\nSummer Sale,25000.00,20000.00\nSteady,31000.00,10000.00\n",
			wantCampaigns: 2,
		},
		{
			name:          "Linhas inválidas são ignoradas e as válidas analisadas",
			csv:           "Campaign,Monthly_Budget,Current_Spend\nSummer Sale,25000.00,20000.00\nBroken,abc,10\n",
			wantCampaigns: 1,
		},
		{
			name:    "Nenhuma campanha válida",
			csv:     "Campaign,Monthly_Budget,Current_Spend\nBroken,abc,10\n",
			wantErr: true,
		},
		{
			name:        "Erro ao gravar auditoria",
			csv:         "Campaign,Monthly_Budget,Current_Spend\nSummer Sale,25000.00,20000.00\n",
			recorderErr: errors.New("disco cheio"),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeRecorder{err: tt.recorderErr}
			service := newDailyRun(t, writeCSV(t, tt.csv), recorder)

			record, err := service.Run(context.Background())

			status := service.GetStatus()
			assert.False(t, status.Running)
			require.NotNil(t, status.LastStartedAt)
			require.NotNil(t, status.LastCompletedAt)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, record)
				assert.NotEmpty(t, status.LastError)
				return
			}

			require.NoError(t, err)
			require.Len(t, recorder.snapshots, 1)

			snapshot := recorder.snapshots[0]
			assert.Len(t, snapshot.Campaigns, tt.wantCampaigns)
			assert.Equal(t, domain.NewDate(2024, time.December, 18), snapshot.EvaluationDate)
			assert.Equal(t, snapshot.ID, record.SnapshotID)
			assert.Equal(t, snapshot.ID, status.LastResult)
			assert.Empty(t, status.LastError)
		})
	}
}

func TestDailyPacingRunService_Run_MissingFile(t *testing.T) {
	service := newDailyRun(t, filepath.Join(t.TempDir(), "nao-existe.csv"), &fakeRecorder{})

	_, err := service.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv file not found")
}

func TestDailyPacingRunService_Run_AlreadyRunning(t *testing.T) {
	service := newDailyRun(t, "campaigns.csv", &fakeRecorder{})
	require.True(t, service.state.tryStart(time.Now()))

	_, err := service.Run(context.Background())
	assert.ErrorIs(t, err, ErrJobRunning)
	assert.False(t, service.TriggerManualSync())
}

func TestDailyPacingRunService_Start_Disabled(t *testing.T) {
	service := newDailyRun(t, "campaigns.csv", &fakeRecorder{})
	service.config.Enabled = false

	assert.NoError(t, service.Start(context.Background()))
	assert.Empty(t, service.scheduler.Jobs())
}

func TestDailyPacingRunService_Start_InvalidCron(t *testing.T) {
	service := newDailyRun(t, "campaigns.csv", &fakeRecorder{})
	service.config.CronSchedule = "todo dia"

	assert.Error(t, service.Start(context.Background()))
}
