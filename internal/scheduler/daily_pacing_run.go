package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/budget-guard-api/internal/config"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/internal/usecases/analysing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/auditing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/validating"
	"github.com/vfg2006/budget-guard-api/pkg/log"
)

var ErrJobRunning = errors.New("execução já em andamento")

// SnapshotRecorder grava os artefatos de um snapshot
type SnapshotRecorder interface {
	Record(ctx context.Context, snapshot *domain.AnalysisSnapshot) (*auditing.Record, error)
}

// DailyPacingRunConfig representa a configuração da análise diária
type DailyPacingRunConfig struct {
	CronSchedule string
	InputPath    string
	Enabled      bool
}

// DailyPacingRunService lê o CSV configurado, analisa o portfólio na data de hoje e grava a auditoria
type DailyPacingRunService struct {
	scheduler *gocron.Scheduler
	config    DailyPacingRunConfig
	validator validating.Validator
	analyser  analysing.BatchAnalyser
	recorder  SnapshotRecorder
	state     *jobState
	now       func() time.Time
}

func NewDailyPacingRunService(
	validator validating.Validator,
	analyser analysing.BatchAnalyser,
	recorder SnapshotRecorder,
	appConfig *config.Config,
) *DailyPacingRunService {
	runConfig := DailyPacingRunConfig{
		CronSchedule: appConfig.DailyPacingRun.CronSchedule,
		InputPath:    appConfig.DailyPacingRun.InputPath,
		Enabled:      appConfig.DailyPacingRun.Enabled,
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": runConfig.CronSchedule,
		"input_path":    runConfig.InputPath,
		"enabled":       runConfig.Enabled,
	}).Info("Configuração da análise diária de ritmo carregada")

	return &DailyPacingRunService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    runConfig,
		validator: validator,
		analyser:  analyser,
		recorder:  recorder,
		state:     newJobState(runConfig.Enabled, runConfig.CronSchedule),
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *DailyPacingRunService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("Análise diária de ritmo desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da análise diária de ritmo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.Run(ctx); err != nil && !errors.Is(err, ErrJobRunning) {
			log.L.WithError(err).Error("Erro na análise diária de ritmo")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar análise diária de ritmo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador da análise diária de ritmo")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara uma execução em segundo plano. Retorna false se já houver uma em andamento.
func (s *DailyPacingRunService) TriggerManualSync() bool {
	if s.GetStatus().Running {
		return false
	}

	go func() {
		if _, err := s.Run(context.Background()); err != nil {
			log.L.WithError(err).Warn("Execução manual da análise diária não concluída")
		}
	}()

	return true
}

// Run executa a análise de forma síncrona
func (s *DailyPacingRunService) Run(ctx context.Context) (*auditing.Record, error) {
	if !s.state.tryStart(s.now()) {
		log.L.Info("Análise diária de ritmo já em andamento, ignorando")
		return nil, ErrJobRunning
	}

	startTime := s.now()
	record, err := s.run(ctx, domain.DateOf(startTime))

	result := ""
	if record != nil {
		result = record.SnapshotID
	}
	s.state.finish(s.now(), result, err)

	if err == nil {
		log.L.WithFields(log.Fields{
			"duration":    time.Since(startTime).String(),
			"snapshot_id": record.SnapshotID,
		}).Info("Análise diária de ritmo concluída")
	}

	return record, err
}

func (s *DailyPacingRunService) run(ctx context.Context, date domain.Date) (*auditing.Record, error) {
	result, err := s.validator.ValidateFile(s.config.InputPath, true)
	if err != nil {
		return nil, err
	}

	for _, validationErr := range result.Errors {
		log.L.WithField("campaign_row", validationErr.RowNumber).Warn(validationErr.Error())
	}

	if result.ValidCount() == 0 {
		return nil, fmt.Errorf("nenhuma campanha válida em %s (%d erros)", s.config.InputPath, result.ErrorCount())
	}

	snapshot, err := s.analyser.AnalyseBatch(ctx, result.Campaigns, date)
	if err != nil {
		return nil, err
	}

	for _, ca := range snapshot.ByRisk(domain.RiskCritical) {
		log.L.WithFields(log.Fields{
			"campaign":     ca.Campaign.Name,
			"campaign_rds": ca.RecommendedDailySpend.StringFixed(2),
		}).Warn("Campanha em ritmo crítico")
	}

	return s.recorder.Record(ctx, snapshot)
}

// GetStatus retorna o status atual da análise diária
func (s *DailyPacingRunService) GetStatus() JobStatus {
	return s.state.get()
}
