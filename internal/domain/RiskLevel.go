package domain

import (
	"fmt"
	"strings"
)

// RiskLevel é a classificação de risco de ritmo de gasto de uma campanha
type RiskLevel uint8

const (
	RiskHealthy RiskLevel = iota + 1
	RiskWarning
	RiskCritical
	RiskOverBudget
)

// RiskLevels lista todas as classificações na ordem de exibição
var RiskLevels = []RiskLevel{RiskCritical, RiskWarning, RiskHealthy, RiskOverBudget}

func (r RiskLevel) String() string {
	switch r {
	case RiskHealthy:
		return "HEALTHY"
	case RiskWarning:
		return "WARNING"
	case RiskCritical:
		return "CRITICAL"
	case RiskOverBudget:
		return "OVER_BUDGET"
	}
	return fmt.Sprintf("RiskLevel(%d)", uint8(r))
}

// Label retorna o texto usado em relatórios
func (r RiskLevel) Label() string {
	if r == RiskOverBudget {
		return "OVER BUDGET"
	}
	return r.String()
}

func (r RiskLevel) IsValid() bool {
	return r >= RiskHealthy && r <= RiskOverBudget
}

// ParseRiskLevel converte o texto para RiskLevel, rejeitando valores desconhecidos
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HEALTHY":
		return RiskHealthy, nil
	case "WARNING":
		return RiskWarning, nil
	case "CRITICAL":
		return RiskCritical, nil
	case "OVER_BUDGET":
		return RiskOverBudget, nil
	}
	return 0, fmt.Errorf("unknown risk level %q", s)
}

func (r RiskLevel) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid risk level %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *RiskLevel) UnmarshalText(text []byte) error {
	level, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*r = level
	return nil
}
