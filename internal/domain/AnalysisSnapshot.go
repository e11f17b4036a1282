package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignFailure registra uma campanha que não pôde ser analisada no lote
type CampaignFailure struct {
	Campaign string `json:"campaign"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

// AnalysisSnapshot representa uma execução completa de análise para fins de auditoria
type AnalysisSnapshot struct {
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	Version        string             `json:"version"`
	EvaluationDate Date               `json:"evaluation_date"`
	Campaigns      []CampaignAnalysis `json:"campaigns"`
	Failures       []CampaignFailure  `json:"failures,omitempty"`
	TotalBudget    decimal.Decimal    `json:"total_budget"`
	TotalSpend     decimal.Decimal    `json:"total_spend"`
	RiskCounts     map[RiskLevel]int  `json:"risk_counts"`
}

// Remaining retorna o orçamento restante do portfólio
func (s *AnalysisSnapshot) Remaining() decimal.Decimal {
	return s.TotalBudget.Sub(s.TotalSpend)
}

// OverallRDS soma o gasto diário recomendado de todas as campanhas
func (s *AnalysisSnapshot) OverallRDS() decimal.Decimal {
	total := decimal.Zero
	for _, ca := range s.Campaigns {
		total = total.Add(ca.RecommendedDailySpend)
	}
	return total
}

func (s *AnalysisSnapshot) Count(level RiskLevel) int {
	return s.RiskCounts[level]
}

// ByRisk filtra as análises de um nível de risco mantendo a ordem original
func (s *AnalysisSnapshot) ByRisk(level RiskLevel) []CampaignAnalysis {
	result := make([]CampaignAnalysis, 0)
	for _, ca := range s.Campaigns {
		if ca.RiskLevel == level {
			result = append(result, ca)
		}
	}
	return result
}

// AnalysisSnapshotSummary é a linha resumida de um snapshot persistido
type AnalysisSnapshotSummary struct {
	ID             string          `json:"id"`
	EvaluationDate Date            `json:"evaluation_date"`
	Version        string          `json:"version"`
	TotalBudget    decimal.Decimal `json:"total_budget"`
	TotalSpend     decimal.Decimal `json:"total_spend"`
	CampaignCount  int             `json:"campaign_count"`
	CriticalCount  int             `json:"critical_count"`
	WarningCount   int             `json:"warning_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AnalysisSnapshotRecord é o snapshot persistido: colunas de resumo mais o documento de auditoria
type AnalysisSnapshotRecord struct {
	Summary AnalysisSnapshotSummary
	Payload []byte
}
