package auditing

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-guard-api/internal/domain"
)

const generatedBy = "BudgetGuard ZAR"

// Document é o formato JSON de auditoria. Todos os valores monetários e
// percentuais são strings para preservar a precisão decimal.
type Document struct {
	Metadata  Metadata                 `json:"metadata"`
	Summary   Summary                  `json:"summary"`
	Campaigns []CampaignEntry          `json:"campaigns"`
	Failures  []domain.CampaignFailure `json:"failures"`
}

type Metadata struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Version        string    `json:"version"`
	GeneratedBy    string    `json:"generated_by"`
	EvaluationDate string    `json:"evaluation_date"`
}

type Summary struct {
	TotalBudget     string `json:"total_budget"`
	TotalSpend      string `json:"total_spend"`
	Remaining       string `json:"remaining"`
	OverallRDS      string `json:"overall_rds"`
	CampaignCount   int    `json:"campaign_count"`
	CriticalCount   int    `json:"critical_count"`
	WarningCount    int    `json:"warning_count"`
	HealthyCount    int    `json:"healthy_count"`
	OverBudgetCount int    `json:"over_budget_count"`
	FailureCount    int    `json:"failure_count"`
}

type CampaignEntry struct {
	Campaign CampaignFields `json:"campaign"`
	Analysis AnalysisFields `json:"analysis"`
}

type CampaignFields struct {
	Name          string  `json:"name"`
	MonthlyBudget string  `json:"monthly_budget"`
	CurrentSpend  string  `json:"current_spend"`
	GrossBudget   *string `json:"gross_budget,omitempty"`
}

type AnalysisFields struct {
	RDS             string           `json:"rds"`
	SpendPercentage string           `json:"spend_percentage"`
	TimePercentage  string           `json:"time_percentage"`
	Variance        string           `json:"variance"`
	RiskLevel       domain.RiskLevel `json:"risk_level"`
	DaysRemaining   int              `json:"days_remaining"`
}

// NewDocument converte o snapshot para o formato de auditoria
func NewDocument(snapshot *domain.AnalysisSnapshot) *Document {
	doc := &Document{
		Metadata: Metadata{
			ID:             snapshot.ID,
			Timestamp:      snapshot.Timestamp,
			Version:        snapshot.Version,
			GeneratedBy:    generatedBy,
			EvaluationDate: snapshot.EvaluationDate.String(),
		},
		Summary: Summary{
			TotalBudget:     fixed(snapshot.TotalBudget, 2),
			TotalSpend:      fixed(snapshot.TotalSpend, 2),
			Remaining:       fixed(snapshot.Remaining(), 2),
			OverallRDS:      fixed(snapshot.OverallRDS(), 2),
			CampaignCount:   len(snapshot.Campaigns),
			CriticalCount:   snapshot.Count(domain.RiskCritical),
			WarningCount:    snapshot.Count(domain.RiskWarning),
			HealthyCount:    snapshot.Count(domain.RiskHealthy),
			OverBudgetCount: snapshot.Count(domain.RiskOverBudget),
			FailureCount:    len(snapshot.Failures),
		},
		Campaigns: make([]CampaignEntry, 0, len(snapshot.Campaigns)),
		Failures:  make([]domain.CampaignFailure, 0, len(snapshot.Failures)),
	}

	for _, ca := range snapshot.Campaigns {
		fields := CampaignFields{
			Name:          ca.Campaign.Name,
			MonthlyBudget: ca.Campaign.MonthlyBudget.String(),
			CurrentSpend:  ca.Campaign.CurrentSpend.String(),
		}
		if ca.Campaign.GrossBudget != nil {
			gross := ca.Campaign.GrossBudget.String()
			fields.GrossBudget = &gross
		}

		doc.Campaigns = append(doc.Campaigns, CampaignEntry{
			Campaign: fields,
			Analysis: AnalysisFields{
				RDS:             fixed(ca.RecommendedDailySpend, 2),
				SpendPercentage: fixed(ca.SpendPercentage, 1),
				TimePercentage:  fixed(ca.TimePercentage, 1),
				Variance:        fixed(ca.Variance, 1),
				RiskLevel:       ca.RiskLevel,
				DaysRemaining:   ca.DaysRemaining,
			},
		})
	}

	doc.Failures = append(doc.Failures, snapshot.Failures...)

	return doc
}

// Snapshot reconstrói o snapshot a partir do documento.
// Os totais e contagens do resumo precisam bater com as campanhas.
func (d *Document) Snapshot() (*domain.AnalysisSnapshot, error) {
	evaluationDate, err := domain.ParseDate(d.Metadata.EvaluationDate)
	if err != nil {
		return nil, malformed(err, "metadata.evaluation_date")
	}

	totalBudget, err := parseDecimal(d.Summary.TotalBudget, "summary.total_budget")
	if err != nil {
		return nil, err
	}

	totalSpend, err := parseDecimal(d.Summary.TotalSpend, "summary.total_spend")
	if err != nil {
		return nil, err
	}

	snapshot := &domain.AnalysisSnapshot{
		ID:             d.Metadata.ID,
		Timestamp:      d.Metadata.Timestamp,
		Version:        d.Metadata.Version,
		EvaluationDate: evaluationDate,
		Campaigns:      make([]domain.CampaignAnalysis, 0, len(d.Campaigns)),
		Failures:       make([]domain.CampaignFailure, 0, len(d.Failures)),
		TotalBudget:    totalBudget,
		TotalSpend:     totalSpend,
		RiskCounts:     make(map[domain.RiskLevel]int, len(domain.RiskLevels)),
	}

	for _, level := range domain.RiskLevels {
		snapshot.RiskCounts[level] = 0
	}

	for i, entry := range d.Campaigns {
		analysis, err := entry.analysis(evaluationDate)
		if err != nil {
			return nil, errors.Wrapf(err, "campaigns[%d]", i)
		}
		snapshot.Campaigns = append(snapshot.Campaigns, *analysis)
		snapshot.RiskCounts[analysis.RiskLevel]++
	}

	snapshot.Failures = append(snapshot.Failures, d.Failures...)

	if err := d.Summary.check(snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// check confere contagens e totais do resumo com as campanhas e falhas do documento
func (s Summary) check(snapshot *domain.AnalysisSnapshot) error {
	counts := []struct {
		field string
		got   int
		want  int
	}{
		{"campaign_count", s.CampaignCount, len(snapshot.Campaigns)},
		{"critical_count", s.CriticalCount, snapshot.Count(domain.RiskCritical)},
		{"warning_count", s.WarningCount, snapshot.Count(domain.RiskWarning)},
		{"healthy_count", s.HealthyCount, snapshot.Count(domain.RiskHealthy)},
		{"over_budget_count", s.OverBudgetCount, snapshot.Count(domain.RiskOverBudget)},
		{"failure_count", s.FailureCount, len(snapshot.Failures)},
	}

	for _, c := range counts {
		if c.got != c.want {
			return fmt.Errorf("%w: summary.%s is %d, entries give %d", ErrMalformedAudit, c.field, c.got, c.want)
		}
	}

	budget, spend := decimal.Zero, decimal.Zero
	for _, ca := range snapshot.Campaigns {
		budget = budget.Add(ca.Campaign.MonthlyBudget)
		spend = spend.Add(ca.Campaign.CurrentSpend)
	}

	if !budget.Equal(snapshot.TotalBudget) {
		return fmt.Errorf("%w: summary.total_budget is %s, entries give %s", ErrMalformedAudit, snapshot.TotalBudget, budget)
	}
	if !spend.Equal(snapshot.TotalSpend) {
		return fmt.Errorf("%w: summary.total_spend is %s, entries give %s", ErrMalformedAudit, snapshot.TotalSpend, spend)
	}

	return nil
}

func (e CampaignEntry) analysis(date domain.Date) (*domain.CampaignAnalysis, error) {
	budget, err := parseDecimal(e.Campaign.MonthlyBudget, "monthly_budget")
	if err != nil {
		return nil, err
	}

	spend, err := parseDecimal(e.Campaign.CurrentSpend, "current_spend")
	if err != nil {
		return nil, err
	}

	campaign := domain.Campaign{
		Name:          e.Campaign.Name,
		MonthlyBudget: budget,
		CurrentSpend:  spend,
	}

	if e.Campaign.GrossBudget != nil {
		gross, err := parseDecimal(*e.Campaign.GrossBudget, "gross_budget")
		if err != nil {
			return nil, err
		}
		campaign.GrossBudget = &gross
	}

	rds, err := parseDecimal(e.Analysis.RDS, "rds")
	if err != nil {
		return nil, err
	}

	spendPercentage, err := parseDecimal(e.Analysis.SpendPercentage, "spend_percentage")
	if err != nil {
		return nil, err
	}

	timePercentage, err := parseDecimal(e.Analysis.TimePercentage, "time_percentage")
	if err != nil {
		return nil, err
	}

	variance := spendPercentage.Sub(timePercentage)
	if e.Analysis.Variance != "" {
		if variance, err = parseDecimal(e.Analysis.Variance, "variance"); err != nil {
			return nil, err
		}
	}

	if !e.Analysis.RiskLevel.IsValid() {
		return nil, fmt.Errorf("%w: missing risk_level", ErrMalformedAudit)
	}

	return &domain.CampaignAnalysis{
		Campaign:              campaign,
		EvaluationDate:        date,
		SpendPercentage:       spendPercentage,
		TimePercentage:        timePercentage,
		Variance:              variance,
		RecommendedDailySpend: rds,
		RiskLevel:             e.Analysis.RiskLevel,
		DaysRemaining:         e.Analysis.DaysRemaining,
	}, nil
}

func parseDecimal(value, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, malformed(err, field)
	}
	return d, nil
}

func malformed(err error, field string) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedAudit, field, err)
}

// fixed escreve com casas fixas; valores com mais casas saem exatos
func fixed(d decimal.Decimal, places int32) string {
	if d.Equal(d.Round(places)) {
		return d.StringFixed(places)
	}
	return d.String()
}
