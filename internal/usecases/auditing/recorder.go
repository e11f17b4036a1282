package auditing

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vfg2006/budget-guard-api/infrastructure/repository"
	"github.com/vfg2006/budget-guard-api/internal/config"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/pkg/log"
)

const defaultListLimit = 20

// ReportWriter gera a planilha de um snapshot no caminho informado
type ReportWriter interface {
	SaveToFile(snapshot *domain.AnalysisSnapshot, path string) error
	GenerateFilename(prefix string, snapshot *domain.AnalysisSnapshot) string
}

// Record indica onde cada artefato do snapshot foi gravado
type Record struct {
	SnapshotID string `json:"snapshot_id"`
	AuditPath  string `json:"audit_path"`
	ReportPath string `json:"report_path,omitempty"`
	Persisted  bool   `json:"persisted"`
}

type Recorder struct {
	outputDir     string
	reportEnabled bool
	retentionDays int
	repository    repository.AnalysisSnapshotRepository
	reports       ReportWriter
}

// NewRecorder aceita repository e reports nulos: sem banco o snapshot fica só em arquivo
func NewRecorder(cfg *config.Config, repo repository.AnalysisSnapshotRepository, reports ReportWriter) *Recorder {
	return &Recorder{
		outputDir:     cfg.Audit.OutputDir,
		reportEnabled: cfg.Audit.ReportEnabled && reports != nil,
		retentionDays: cfg.Audit.RetentionDays,
		repository:    repo,
		reports:       reports,
	}
}

// WithoutReport devolve uma cópia que não gera planilha
func (r *Recorder) WithoutReport() *Recorder {
	cp := *r
	cp.reportEnabled = false
	return &cp
}

// WithOutputDir devolve uma cópia gravando em outro diretório
func (r *Recorder) WithOutputDir(dir string) *Recorder {
	cp := *r
	cp.outputDir = dir
	return &cp
}

// Record grava o JSON de auditoria, a planilha opcional e o registro no banco
func (r *Recorder) Record(ctx context.Context, snapshot *domain.AnalysisSnapshot) (*Record, error) {
	logger := log.ForContext(ctx).WithField("snapshot_id", snapshot.ID)

	payload, err := Serialise(snapshot)
	if err != nil {
		return nil, err
	}

	record := &Record{
		SnapshotID: snapshot.ID,
		AuditPath:  filepath.Join(r.outputDir, SnapshotFilename(defaultPrefix, snapshot)),
	}

	if err := SaveToFile(snapshot, record.AuditPath); err != nil {
		return nil, err
	}
	logger.WithField("snapshot_path", record.AuditPath).Info("audit: snapshot gravado")

	if r.reportEnabled {
		record.ReportPath = filepath.Join(r.outputDir, r.reports.GenerateFilename("", snapshot))
		if err := r.reports.SaveToFile(snapshot, record.ReportPath); err != nil {
			return nil, fmt.Errorf("erro ao gerar relatório: %w", err)
		}
		logger.WithField("snapshot_report", record.ReportPath).Info("audit: relatório gerado")
	}

	if r.repository != nil {
		if err := r.repository.Save(ctx, snapshot, payload); err != nil {
			return nil, err
		}
		record.Persisted = true
	}

	return record, nil
}

// Find carrega um snapshot persistido pelo id
func (r *Recorder) Find(ctx context.Context, id string) (*domain.AnalysisSnapshot, error) {
	if r.repository == nil {
		return nil, ErrStorageDisabled
	}

	record, err := r.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}

	return Deserialise(record.Payload)
}

func (r *Recorder) ListRecent(ctx context.Context, limit int) ([]*domain.AnalysisSnapshotSummary, error) {
	if r.repository == nil {
		return nil, ErrStorageDisabled
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return r.repository.ListRecent(ctx, limit)
}

// Purge remove do banco os snapshots fora do período de retenção
func (r *Recorder) Purge(ctx context.Context) (int64, error) {
	if r.repository == nil || r.retentionDays <= 0 {
		return 0, nil
	}

	deleted, err := r.repository.DeleteOlderThan(ctx, r.retentionDays)
	if err != nil {
		return 0, err
	}

	log.ForContext(ctx).Infof("audit: %d snapshots antigos removidos", deleted)
	return deleted, nil
}
