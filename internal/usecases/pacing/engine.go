package pacing

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/pkg/utils"
)

// Limites de variação em pontos percentuais
var (
	CriticalThreshold   = decimal.NewFromInt(15)
	WarningThreshold    = decimal.NewFromInt(5)
	UnderPaceTolerance  = decimal.NewFromInt(-5)
	overBudgetThreshold = decimal.NewFromInt(100)
)

//go:generate mockgen -source=engine.go -destination=mocks/mock_analyser.go -package=mocks

// Analyser é o contrato usado pelos colaboradores externos
type Analyser interface {
	AnalyseCampaign(campaign domain.Campaign, date domain.Date) (*domain.CampaignAnalysis, error)
}

// Engine calcula o gasto diário recomendado e classifica o risco.
// Sem estado mutável: pode ser compartilhado entre goroutines.
type Engine struct {
	dates     DateManager
	weighting TimeWeighting
}

var _ Analyser = (*Engine)(nil)

type EngineOption func(e *Engine)

// WithTimeWeighting substitui o calendário uniforme usado no percentual de tempo
func WithTimeWeighting(w TimeWeighting) EngineOption {
	return func(e *Engine) {
		if w != nil {
			e.weighting = w
		}
	}
}

func NewEngine(dates DateManager, opts ...EngineOption) *Engine {
	e := &Engine{
		dates:     dates,
		weighting: dates,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// CalculateSpendPercentage retorna gasto/orçamento*100 com uma casa decimal. Pode passar de 100.
func (e *Engine) CalculateSpendPercentage(campaign domain.Campaign) (decimal.Decimal, error) {
	if !campaign.MonthlyBudget.IsPositive() {
		return decimal.Zero, &InvalidCampaignError{
			Campaign: campaign.Name,
			Field:    "monthly_budget",
			Value:    campaign.MonthlyBudget.String(),
			Reason:   "must be positive",
		}
	}

	return utils.Percentage(campaign.CurrentSpend, campaign.MonthlyBudget), nil
}

// CalculateRDS retorna max(0, restante/dias) com duas casas decimais.
// Com zero dias restantes o valor é o orçamento restante inteiro.
func (e *Engine) CalculateRDS(campaign domain.Campaign, daysRemaining int) (decimal.Decimal, error) {
	if daysRemaining < 0 {
		return decimal.Zero, &InvalidDateError{Reason: "days remaining must not be negative, got " + strconv.Itoa(daysRemaining)}
	}

	remaining := utils.MaxZero(campaign.RemainingBudget())
	if daysRemaining == 0 {
		return utils.RoundWithTwoDecimalPlace(remaining), nil
	}

	rds := utils.Divide(remaining, decimal.NewFromInt(int64(daysRemaining)))
	return utils.RoundWithTwoDecimalPlace(rds), nil
}

// DetermineRiskLevel aplica as regras em ordem de precedência:
// estouro de orçamento, crítico, alerta e saudável.
func (e *Engine) DetermineRiskLevel(spendPercentage, timePercentage decimal.Decimal) domain.RiskLevel {
	if spendPercentage.GreaterThan(overBudgetThreshold) {
		return domain.RiskOverBudget
	}

	variance := spendPercentage.Sub(timePercentage)

	switch {
	case variance.GreaterThan(CriticalThreshold):
		return domain.RiskCritical
	case variance.GreaterThanOrEqual(WarningThreshold):
		return domain.RiskWarning
	case variance.GreaterThanOrEqual(UnderPaceTolerance):
		return domain.RiskHealthy
	default:
		// Ritmo abaixo do esperado não é tratado como risco
		return domain.RiskHealthy
	}
}

// AnalyseCampaign valida a campanha e compõe todos os cálculos em um único resultado
func (e *Engine) AnalyseCampaign(campaign domain.Campaign, date domain.Date) (*domain.CampaignAnalysis, error) {
	if err := ValidateCampaign(campaign); err != nil {
		return nil, err
	}

	daysRemaining, err := e.dates.DaysRemaining(date)
	if err != nil {
		return nil, err
	}

	timePercentage, err := e.weighting.TimePercentage(date)
	if err != nil {
		return nil, err
	}
	// estratégias de peso customizadas podem devolver mais casas
	timePercentage = utils.RoundWithOneDecimalPlace(timePercentage)

	spendPercentage, err := e.CalculateSpendPercentage(campaign)
	if err != nil {
		return nil, err
	}

	rds, err := e.CalculateRDS(campaign, daysRemaining)
	if err != nil {
		return nil, err
	}

	return &domain.CampaignAnalysis{
		Campaign:              campaign,
		EvaluationDate:        date,
		SpendPercentage:       spendPercentage,
		TimePercentage:        timePercentage,
		Variance:              spendPercentage.Sub(timePercentage),
		RecommendedDailySpend: rds,
		RiskLevel:             e.DetermineRiskLevel(spendPercentage, timePercentage),
		DaysRemaining:         daysRemaining,
	}, nil
}

// ValidateCampaign confere as invariantes de orçamento e gasto
func ValidateCampaign(campaign domain.Campaign) error {
	if campaign.Name == "" {
		return &InvalidCampaignError{Field: "name", Reason: "must not be empty"}
	}

	if !campaign.MonthlyBudget.IsPositive() {
		return &InvalidCampaignError{
			Campaign: campaign.Name,
			Field:    "monthly_budget",
			Value:    campaign.MonthlyBudget.String(),
			Reason:   "must be positive",
		}
	}

	if campaign.CurrentSpend.IsNegative() {
		return &InvalidCampaignError{
			Campaign: campaign.Name,
			Field:    "current_spend",
			Value:    campaign.CurrentSpend.String(),
			Reason:   "must not be negative",
		}
	}

	return nil
}
