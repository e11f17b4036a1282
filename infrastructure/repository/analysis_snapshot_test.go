package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/vfg2006/budget-guard-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-guard-api/internal/domain"
)

// setupTestRepository sobe um Postgres descartável. Requer Docker e RUN_INTEGRATION_TESTS=1.
func setupTestRepository(t *testing.T) AnalysisSnapshotRepository {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("defina RUN_INTEGRATION_TESTS=1 para executar os testes com Postgres")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("budgetguard_test"),
		tcpostgres.WithUsername("test_user"),
		tcpostgres.WithPassword("test_password"),
		tcpostgres.BasicWaitStrategies(),
		testcontainers.CustomizeRequest(testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{Labels: map[string]string{"test": "budget-guard-repository"}},
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("falha ao encerrar container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := postgres.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repo := NewAnalysisSnapshotRepository(conn)
	require.NoError(t, repo.EnsureSchema(ctx))

	return repo
}

func testSnapshot(id string, createdAt time.Time) *domain.AnalysisSnapshot {
	return &domain.AnalysisSnapshot{
		ID:             id,
		Timestamp:      createdAt,
		Version:        "0.1.0",
		EvaluationDate: domain.NewDate(2024, time.December, 18),
		Campaigns: []domain.CampaignAnalysis{
			{RiskLevel: domain.RiskCritical},
			{RiskLevel: domain.RiskWarning},
			{RiskLevel: domain.RiskHealthy},
		},
		TotalBudget: decimal.RequireFromString("60000.00"),
		TotalSpend:  decimal.RequireFromString("41000.50"),
		RiskCounts: map[domain.RiskLevel]int{
			domain.RiskCritical: 1,
			domain.RiskWarning:  1,
			domain.RiskHealthy:  1,
		},
	}
}

func TestAnalysisSnapshotRepository(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	t.Run("schema is idempotent", func(t *testing.T) {
		require.NoError(t, repo.EnsureSchema(ctx))
	})

	t.Run("snapshot not found", func(t *testing.T) {
		record, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("save and get", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		payload := []byte(`{"metadata":{"id":"snap-1"}}`)

		require.NoError(t, repo.Save(ctx, testSnapshot("snap-1", now), payload))

		record, err := repo.GetByID(ctx, "snap-1")
		require.NoError(t, err)
		require.NotNil(t, record)

		assert.Equal(t, "snap-1", record.Summary.ID)
		assert.Equal(t, domain.NewDate(2024, time.December, 18), record.Summary.EvaluationDate)
		assert.Equal(t, "60000.00", record.Summary.TotalBudget.StringFixed(2))
		assert.Equal(t, "41000.50", record.Summary.TotalSpend.StringFixed(2))
		assert.Equal(t, 3, record.Summary.CampaignCount)
		assert.Equal(t, 1, record.Summary.CriticalCount)
		assert.Equal(t, 1, record.Summary.WarningCount)
		assert.JSONEq(t, string(payload), string(record.Payload))
	})

	t.Run("list recent first and delete old", func(t *testing.T) {
		old := time.Now().UTC().AddDate(0, 0, -40)
		require.NoError(t, repo.Save(ctx, testSnapshot("snap-old", old), []byte(`{}`)))

		summaries, err := repo.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, "snap-1", summaries[0].ID)
		assert.Equal(t, "snap-old", summaries[1].ID)

		deleted, err := repo.DeleteOlderThan(ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		summaries, err = repo.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
	})

	t.Run("invalid retention", func(t *testing.T) {
		_, err := repo.DeleteOlderThan(ctx, 0)
		assert.Error(t, err)
	})
}
