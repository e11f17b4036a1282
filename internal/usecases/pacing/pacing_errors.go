package pacing

import (
	"errors"
	"fmt"
	"time"
)

// Erros base do motor de ritmo
var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidCampaign = errors.New("invalid campaign")
)

// InvalidDateError indica uma combinação de calendário inexistente.
// Nunca é corrigido silenciosamente.
type InvalidDateError struct {
	Year   int
	Month  time.Month
	Day    int
	Reason string
}

func (e *InvalidDateError) Error() string {
	if e.Year == 0 && e.Month == 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidDate, e.Reason)
	}
	if e.Day == 0 {
		return fmt.Sprintf("%s %04d-%02d: %s", ErrInvalidDate, e.Year, int(e.Month), e.Reason)
	}
	return fmt.Sprintf("%s %04d-%02d-%02d: %s", ErrInvalidDate, e.Year, int(e.Month), e.Day, e.Reason)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}

// InvalidCampaignError indica que a campanha viola uma invariante do modelo de dados
type InvalidCampaignError struct {
	Campaign string // Identificador da campanha
	Field    string // Campo inválido
	Value    string // Valor recebido
	Reason   string
}

func (e *InvalidCampaignError) Error() string {
	return fmt.Sprintf("%s %q: %s %s (received: %s)", ErrInvalidCampaign, e.Campaign, e.Field, e.Reason, e.Value)
}

func (e *InvalidCampaignError) Unwrap() error {
	return ErrInvalidCampaign
}
