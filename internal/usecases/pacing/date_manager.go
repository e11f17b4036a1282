package pacing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/pkg/utils"
)

// TimeWeighting define a fração do mês considerada decorrida em uma data.
// Permite trocar o calendário uniforme por modelos ponderados sem alterar o Engine.
type TimeWeighting interface {
	TimePercentage(date domain.Date) (decimal.Decimal, error)
}

// DateManager concentra a aritmética de calendário. Não guarda estado.
type DateManager struct{}

var _ TimeWeighting = DateManager{}

func NewDateManager() DateManager {
	return DateManager{}
}

// IsLeapYear aplica a regra gregoriana
func (DateManager) IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func (dm DateManager) DaysInMonth(year int, month time.Month) (int, error) {
	switch month {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31, nil
	case time.April, time.June, time.September, time.November:
		return 30, nil
	case time.February:
		if dm.IsLeapYear(year) {
			return 29, nil
		}
		return 28, nil
	}

	return 0, &InvalidDateError{Year: year, Month: month, Reason: "month must be between 1 and 12"}
}

// Validate confere se a data existe no calendário
func (dm DateManager) Validate(date domain.Date) (int, error) {
	total, err := dm.DaysInMonth(date.Year, date.Month)
	if err != nil {
		return 0, err
	}

	if date.Day < 1 || date.Day > total {
		return 0, &InvalidDateError{
			Year:   date.Year,
			Month:  date.Month,
			Day:    date.Day,
			Reason: "day out of range for month",
		}
	}

	return total, nil
}

// DaysRemaining conta os dias restantes incluindo o próprio dia.
// O último dia do mês retorna 1.
func (dm DateManager) DaysRemaining(date domain.Date) (int, error) {
	total, err := dm.Validate(date)
	if err != nil {
		return 0, err
	}
	return total - date.Day + 1, nil
}

// DaysElapsed conta os dias decorridos incluindo o próprio dia
func (dm DateManager) DaysElapsed(date domain.Date) (int, error) {
	if _, err := dm.Validate(date); err != nil {
		return 0, err
	}
	return date.Day, nil
}

// TimePercentage retorna dia/dias_no_mês*100 com uma casa decimal
func (dm DateManager) TimePercentage(date domain.Date) (decimal.Decimal, error) {
	total, err := dm.Validate(date)
	if err != nil {
		return decimal.Zero, err
	}

	return utils.Percentage(decimal.NewFromInt(int64(date.Day)), decimal.NewFromInt(int64(total))), nil
}
