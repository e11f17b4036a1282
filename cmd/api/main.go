package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-guard-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-guard-api/infrastructure/repository"
	"github.com/vfg2006/budget-guard-api/internal/api"
	"github.com/vfg2006/budget-guard-api/internal/api/handler"
	"github.com/vfg2006/budget-guard-api/internal/config"
	"github.com/vfg2006/budget-guard-api/internal/scheduler"
	"github.com/vfg2006/budget-guard-api/internal/usecases/analysing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/auditing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-guard-api/internal/usecases/pacing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/reporting"
	"github.com/vfg2006/budget-guard-api/internal/usecases/validating"
	"github.com/vfg2006/budget-guard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Configure(os.Stdout, cfg.App.LogLevel); err != nil {
		log.L.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var snapshotRepo repository.AnalysisSnapshotRepository
	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		snapshotRepo = repository.NewAnalysisSnapshotRepository(pgConn)
		if err := snapshotRepo.EnsureSchema(ctx); err != nil {
			log.L.WithError(err).Fatal("Erro ao aplicar migrações do banco")
		}
	} else {
		log.L.Info("Banco de dados desabilitado, snapshots serão gravados apenas em arquivo")
	}

	authenticator := authenticating.NewService(cfg)

	validator := validating.NewService(cfg.Pacing.VATRate)
	engine := pacing.NewEngine(pacing.NewDateManager())
	analyser := analysing.NewService(cfg, engine)
	reporter := reporting.NewReporter()
	recorder := auditing.NewRecorder(cfg, snapshotRepo, reporter)

	dailyPacingRun := scheduler.NewDailyPacingRunService(validator, analyser, recorder, cfg)
	snapshotRetention := scheduler.NewSnapshotRetentionService(recorder, cfg)

	if err := dailyPacingRun.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador da análise diária de ritmo")
	}

	if err := snapshotRetention.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de limpeza de snapshots")
	}

	server, err := api.New(cfg, api.Services{
		Pacing: handler.PacingServices{
			Validator: validator,
			Analyser:  analyser,
			Recorder:  recorder,
		},
		Snapshots: recorder,
		Reports:   reporter,
		CronJobs: handler.CronJobServices{
			DailyPacingRun:    dailyPacingRun,
			SnapshotRetention: snapshotRetention,
		},
		Authenticator: authenticator,
	})
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	return conn
}
