package validating

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-guard-api/pkg/utils"
)

// DefaultVATRate é a alíquota de IVA da África do Sul (15%)
var DefaultVATRate = decimal.RequireFromString("0.15")

// NetFromGross extrai o valor líquido de plataforma de um orçamento com IVA
func NetFromGross(gross, vatRate decimal.Decimal) decimal.Decimal {
	return utils.RoundWithTwoDecimalPlace(utils.Divide(gross, decimal.NewFromInt(1).Add(vatRate)))
}

// GrossFromNet calcula o valor com IVA a partir do líquido
func GrossFromNet(net, vatRate decimal.Decimal) decimal.Decimal {
	return utils.RoundWithTwoDecimalPlace(net.Mul(decimal.NewFromInt(1).Add(vatRate)))
}
