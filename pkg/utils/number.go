package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Precisão usada nas divisões antes da quantização final
const divisionPrecision = 28

var hundred = decimal.NewFromInt(100)

// RoundWithTwoDecimalPlace arredonda valores monetários com arredondamento bancário
func RoundWithTwoDecimalPlace(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// RoundWithOneDecimalPlace arredonda percentuais com arredondamento bancário
func RoundWithOneDecimalPlace(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(1)
}

// Divide divide com precisão suficiente para que o arredondamento final seja o único relevante
func Divide(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, divisionPrecision)
}

// Percentage retorna part/whole*100 arredondado para uma casa decimal.
// whole precisa ser diferente de zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	return RoundWithOneDecimalPlace(Divide(part.Mul(hundred), whole))
}

// MaxZero limita o valor a no mínimo zero
func MaxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatZAR formata um valor em rands, ex: "R 12,345.67"
func FormatZAR(d decimal.Decimal) string {
	return "R " + GroupThousands(d.StringFixedBank(2))
}

// GroupThousands insere separadores de milhar na parte inteira de um número já formatado
func GroupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	return sign + b.String() + fracPart
}
