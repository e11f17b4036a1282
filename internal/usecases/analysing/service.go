package analysing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-guard-api/internal/config"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/internal/usecases/pacing"
	"github.com/vfg2006/budget-guard-api/pkg/log"
	"github.com/vfg2006/budget-guard-api/pkg/utils"
)

const defaultMaxConcurrentJobs = 4

// BatchAnalyser analisa um lote de campanhas e monta o snapshot do portfólio
type BatchAnalyser interface {
	AnalyseBatch(ctx context.Context, campaigns []domain.Campaign, date domain.Date) (*domain.AnalysisSnapshot, error)
}

type Service struct {
	engine            pacing.Analyser
	dates             pacing.DateManager
	maxConcurrentJobs int
	version           string
	now               func() time.Time
	generateID        func() (string, error)
}

func NewService(cfg *config.Config, engine pacing.Analyser) *Service {
	maxJobs := cfg.Batch.MaxConcurrentJobs
	if maxJobs <= 0 {
		maxJobs = defaultMaxConcurrentJobs
	}

	return &Service{
		engine:            engine,
		dates:             pacing.NewDateManager(),
		maxConcurrentJobs: maxJobs,
		version:           cfg.App.Version,
		now:               time.Now,
		generateID:        utils.GenerateID,
	}
}

type outcome struct {
	analysis *domain.CampaignAnalysis
	failure  *domain.CampaignFailure
}

// AnalyseBatch processa as campanhas em paralelo mantendo a ordem de entrada.
// Falhas de uma campanha não interrompem as demais.
func (s *Service) AnalyseBatch(ctx context.Context, campaigns []domain.Campaign, date domain.Date) (*domain.AnalysisSnapshot, error) {
	logger := log.ForContext(ctx)

	if _, err := s.dates.Validate(date); err != nil {
		return nil, err
	}

	id, err := s.generateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id do snapshot: %w", err)
	}

	logger.WithFields(log.Fields{
		"campaigns":       len(campaigns),
		"evaluation_date": date.String(),
		"snapshot_id":     id,
	}).Info("pacing-batch: iniciando análise do lote")

	outcomes := make([]outcome, len(campaigns))
	seen := make(map[string]int, len(campaigns))

	semaphore := make(chan struct{}, s.maxConcurrentJobs)
	var wg sync.WaitGroup

	for i, campaign := range campaigns {
		if first, duplicated := seen[campaign.Name]; duplicated && campaign.Name != "" {
			outcomes[i] = outcome{failure: &domain.CampaignFailure{
				Campaign: campaign.Name,
				Field:    "name",
				Message:  fmt.Sprintf("duplicated campaign name (first seen at position %d)", first+1),
			}}
			continue
		}
		seen[campaign.Name] = i

		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, campaign domain.Campaign) {
			defer wg.Done()
			defer func() { <-semaphore }()

			outcomes[i] = s.analyse(campaign, date)
		}(i, campaign)
	}

	wg.Wait()

	snapshot := s.buildSnapshot(id, date, outcomes)

	logger.WithFields(log.Fields{
		"snapshot_id": id,
		"analysed":    len(snapshot.Campaigns),
		"failures":    len(snapshot.Failures),
		"critical":    snapshot.Count(domain.RiskCritical),
		"over_budget": snapshot.Count(domain.RiskOverBudget),
	}).Info("pacing-batch: análise do lote concluída")

	return snapshot, nil
}

func (s *Service) analyse(campaign domain.Campaign, date domain.Date) outcome {
	analysis, err := s.engine.AnalyseCampaign(campaign, date)
	if err == nil {
		return outcome{analysis: analysis}
	}

	failure := &domain.CampaignFailure{Campaign: campaign.Name, Message: err.Error()}

	var campaignErr *pacing.InvalidCampaignError
	if errors.As(err, &campaignErr) {
		failure.Field = campaignErr.Field
	}

	log.L.WithError(err).WithField("campaign", campaign.Name).Warn("pacing-batch: campanha ignorada")

	return outcome{failure: failure}
}

func (s *Service) buildSnapshot(id string, date domain.Date, outcomes []outcome) *domain.AnalysisSnapshot {
	snapshot := &domain.AnalysisSnapshot{
		ID:             id,
		Timestamp:      s.now().UTC(),
		Version:        s.version,
		EvaluationDate: date,
		Campaigns:      make([]domain.CampaignAnalysis, 0, len(outcomes)),
		Failures:       make([]domain.CampaignFailure, 0),
		TotalBudget:    decimal.Zero,
		TotalSpend:     decimal.Zero,
		RiskCounts:     make(map[domain.RiskLevel]int, len(domain.RiskLevels)),
	}

	for _, level := range domain.RiskLevels {
		snapshot.RiskCounts[level] = 0
	}

	for _, o := range outcomes {
		if o.failure != nil {
			snapshot.Failures = append(snapshot.Failures, *o.failure)
			continue
		}

		snapshot.Campaigns = append(snapshot.Campaigns, *o.analysis)
		snapshot.TotalBudget = snapshot.TotalBudget.Add(o.analysis.Campaign.MonthlyBudget)
		snapshot.TotalSpend = snapshot.TotalSpend.Add(o.analysis.Campaign.CurrentSpend)
		snapshot.RiskCounts[o.analysis.RiskLevel]++
	}

	return snapshot
}
