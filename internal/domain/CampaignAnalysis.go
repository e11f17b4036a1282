package domain

import "github.com/shopspring/decimal"

// CampaignAnalysis é o resultado imutável da análise de ritmo de uma campanha em uma data
type CampaignAnalysis struct {
	Campaign              Campaign        `json:"campaign"`
	EvaluationDate        Date            `json:"evaluation_date"`
	SpendPercentage       decimal.Decimal `json:"spend_percentage"`
	TimePercentage        decimal.Decimal `json:"time_percentage"`
	Variance              decimal.Decimal `json:"variance"`
	RecommendedDailySpend decimal.Decimal `json:"recommended_daily_spend"`
	RiskLevel             RiskLevel       `json:"risk_level"`
	DaysRemaining         int             `json:"days_remaining"`
}
