package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/budget-guard-api/internal/config"
	"github.com/vfg2006/budget-guard-api/pkg/log"
)

// SnapshotPurger remove snapshots fora do período de retenção
type SnapshotPurger interface {
	Purge(ctx context.Context) (int64, error)
}

// SnapshotRetentionService remove periodicamente os snapshots antigos do banco
type SnapshotRetentionService struct {
	scheduler    *gocron.Scheduler
	cronSchedule string
	enabled      bool
	purger       SnapshotPurger
	state        *jobState
	now          func() time.Time
}

func NewSnapshotRetentionService(purger SnapshotPurger, appConfig *config.Config) *SnapshotRetentionService {
	enabled := appConfig.Database.Enabled && appConfig.Audit.RetentionDays > 0

	return &SnapshotRetentionService{
		scheduler:    gocron.NewScheduler(time.Local),
		cronSchedule: appConfig.Audit.RetentionCron,
		enabled:      enabled,
		purger:       purger,
		state:        newJobState(enabled, appConfig.Audit.RetentionCron),
		now:          time.Now,
	}
}

func (s *SnapshotRetentionService) Start(ctx context.Context) error {
	if !s.enabled {
		log.L.Info("Limpeza de snapshots desabilitada")
		return nil
	}

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		if _, err := s.Run(ctx); err != nil && !errors.Is(err, ErrJobRunning) {
			log.L.WithError(err).Error("Erro na limpeza de snapshots")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de snapshots: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SnapshotRetentionService) TriggerManualSync() bool {
	if s.GetStatus().Running {
		return false
	}

	go func() {
		if _, err := s.Run(context.Background()); err != nil {
			log.L.WithError(err).Warn("Execução manual da limpeza de snapshots não concluída")
		}
	}()

	return true
}

func (s *SnapshotRetentionService) Run(ctx context.Context) (int64, error) {
	if !s.state.tryStart(s.now()) {
		return 0, ErrJobRunning
	}

	deleted, err := s.purger.Purge(ctx)
	s.state.finish(s.now(), strconv.FormatInt(deleted, 10)+" removidos", err)

	return deleted, err
}

func (s *SnapshotRetentionService) GetStatus() JobStatus {
	return s.state.get()
}
