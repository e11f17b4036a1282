package domain

import "github.com/shopspring/decimal"

// Campaign representa uma campanha validada com orçamento mensal líquido (sem IVA)
type Campaign struct {
	Name          string           `json:"name"`
	MonthlyBudget decimal.Decimal  `json:"monthly_budget"`
	CurrentSpend  decimal.Decimal  `json:"current_spend"`
	GrossBudget   *decimal.Decimal `json:"gross_budget,omitempty"` // Orçamento bruto (com IVA), apenas para auditoria
}

// RemainingBudget retorna o orçamento ainda disponível, podendo ser negativo
func (c Campaign) RemainingBudget() decimal.Decimal {
	return c.MonthlyBudget.Sub(c.CurrentSpend)
}
