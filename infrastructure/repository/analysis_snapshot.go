package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-guard-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-guard-api/infrastructure/migration"
	"github.com/vfg2006/budget-guard-api/internal/domain"
)

const (
	analysisSnapshotsTable = "analysis_snapshots s"
	snapshotSummaryColumns = "s.id, s.evaluation_date, s.version, s.total_budget, s.total_spend, s.campaign_count, s.critical_count, s.warning_count, s.created_at"
)

//go:generate mockgen -source=analysis_snapshot.go -destination=mocks/mock_analysis_snapshot.go -package=mocks

type AnalysisSnapshotRepository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, snapshot *domain.AnalysisSnapshot, payload []byte) error
	GetByID(ctx context.Context, id string) (*domain.AnalysisSnapshotRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.AnalysisSnapshotSummary, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type analysisSnapshotRepository struct {
	conn *postgres.Connection
}

func NewAnalysisSnapshotRepository(conn *postgres.Connection) AnalysisSnapshotRepository {
	return &analysisSnapshotRepository{
		conn: conn,
	}
}

func (r *analysisSnapshotRepository) EnsureSchema(ctx context.Context) error {
	if err := r.conn.Ping(ctx); err != nil {
		return fmt.Errorf("erro ao conectar no banco: %w", err)
	}
	return migration.Up(r.conn.DB())
}

// Save insere o snapshot; um id repetido sobrescreve o registro anterior
func (r *analysisSnapshotRepository) Save(ctx context.Context, snapshot *domain.AnalysisSnapshot, payload []byte) error {
	query, args, err := squirrel.
		Insert("analysis_snapshots").
		Columns("id", "evaluation_date", "version", "total_budget", "total_spend",
			"campaign_count", "critical_count", "warning_count", "payload", "created_at").
		Values(
			snapshot.ID,
			snapshot.EvaluationDate.Time(),
			snapshot.Version,
			snapshot.TotalBudget.StringFixed(2),
			snapshot.TotalSpend.StringFixed(2),
			len(snapshot.Campaigns),
			snapshot.Count(domain.RiskCritical),
			snapshot.Count(domain.RiskWarning),
			string(payload),
			snapshot.Timestamp,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			evaluation_date = EXCLUDED.evaluation_date,
			version = EXCLUDED.version,
			total_budget = EXCLUDED.total_budget,
			total_spend = EXCLUDED.total_spend,
			campaign_count = EXCLUDED.campaign_count,
			critical_count = EXCLUDED.critical_count,
			warning_count = EXCLUDED.warning_count,
			payload = EXCLUDED.payload`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("erro no banco de dados ao salvar snapshot %s: %w (código: %s)", snapshot.ID, pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao salvar snapshot %s: %w", snapshot.ID, err)
	}

	return nil
}

// GetByID retorna nil quando o snapshot não existe
func (r *analysisSnapshotRepository) GetByID(ctx context.Context, id string) (*domain.AnalysisSnapshotRecord, error) {
	query, args, err := squirrel.
		Select(snapshotSummaryColumns + ", s.payload").
		From(analysisSnapshotsTable).
		Where(squirrel.Eq{"s.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	record := &domain.AnalysisSnapshotRecord{}
	summary, dest := summaryScanner()
	dest = append(dest, &record.Payload)

	if err := r.conn.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	record.Summary, err = summary()
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListRecent lista os snapshots mais recentes primeiro
func (r *analysisSnapshotRepository) ListRecent(ctx context.Context, limit int) ([]*domain.AnalysisSnapshotSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := squirrel.
		Select(snapshotSummaryColumns).
		From(analysisSnapshotsTable).
		OrderBy("s.created_at DESC", "s.id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	summaries := make([]*domain.AnalysisSnapshotSummary, 0)
	for rows.Next() {
		summary, dest := summaryScanner()
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshots: %w", err)
		}

		s, err := summary()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return summaries, nil
}

// DeleteOlderThan remove snapshots criados há mais de `days` dias
func (r *analysisSnapshotRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("quantidade de dias inválida: %d", days)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete("analysis_snapshots").
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return 0, fmt.Errorf("erro ao excluir snapshots antigos: %w", err)
	}

	return result.RowsAffected()
}

// summaryScanner devolve os destinos do Scan e a função que monta o resumo depois da leitura
func summaryScanner() (func() (domain.AnalysisSnapshotSummary, error), []interface{}) {
	var (
		s          domain.AnalysisSnapshotSummary
		evaluation time.Time
		budget     string
		spend      string
	)

	dest := []interface{}{
		&s.ID,
		&evaluation,
		&s.Version,
		&budget,
		&spend,
		&s.CampaignCount,
		&s.CriticalCount,
		&s.WarningCount,
		&s.CreatedAt,
	}

	build := func() (domain.AnalysisSnapshotSummary, error) {
		var err error
		s.EvaluationDate = domain.DateOf(evaluation)
		if s.TotalBudget, err = decimal.NewFromString(budget); err != nil {
			return s, fmt.Errorf("total_budget inválido: %w", err)
		}
		if s.TotalSpend, err = decimal.NewFromString(spend); err != nil {
			return s, fmt.Errorf("total_spend inválido: %w", err)
		}
		return s, nil
	}

	return build, dest
}
