package pacing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-guard-api/internal/domain"
)

func TestDateManager_IsLeapYear(t *testing.T) {
	dm := NewDateManager()

	tests := []struct {
		year int
		want bool
	}{
		{1900, false},
		{2000, true},
		{2023, false},
		{2024, true},
		{2100, false},
		{2400, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dm.IsLeapYear(tt.year), "ano %d", tt.year)
	}
}

func TestDateManager_IsLeapYear_MatchesCalendarOver200Years(t *testing.T) {
	dm := NewDateManager()

	for year := 1900; year <= 2100; year++ {
		// 29 de fevereiro só existe em anos bissextos
		feb29 := time.Date(year, time.February, 29, 0, 0, 0, 0, time.UTC)
		expected := feb29.Month() == time.February
		assert.Equal(t, expected, dm.IsLeapYear(year), "ano %d", year)
	}
}

func TestDateManager_DaysInMonth(t *testing.T) {
	dm := NewDateManager()

	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"Janeiro", 2024, time.January, 31},
		{"Fevereiro bissexto", 2024, time.February, 29},
		{"Fevereiro comum", 2023, time.February, 28},
		{"Fevereiro 1900", 1900, time.February, 28},
		{"Fevereiro 2000", 2000, time.February, 29},
		{"Abril", 2024, time.April, 30},
		{"Dezembro", 2024, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dm.DaysInMonth(tt.year, tt.month)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateManager_DaysInMonth_InvalidMonth(t *testing.T) {
	dm := NewDateManager()

	for _, month := range []time.Month{0, 13} {
		_, err := dm.DaysInMonth(2024, month)

		var dateErr *InvalidDateError
		require.True(t, errors.As(err, &dateErr))
		assert.ErrorIs(t, err, ErrInvalidDate)
		assert.Equal(t, month, dateErr.Month)
	}
}

func TestDateManager_DaysRemaining(t *testing.T) {
	dm := NewDateManager()

	tests := []struct {
		name string
		date domain.Date
		want int
	}{
		{"Último dia de mês com 31 dias", domain.NewDate(2024, time.December, 31), 1},
		{"Primeiro dia de mês com 31 dias", domain.NewDate(2024, time.December, 1), 31},
		{"Meio de dezembro", domain.NewDate(2024, time.December, 18), 14},
		{"Último dia de fevereiro bissexto", domain.NewDate(2024, time.February, 29), 1},
		{"Último dia de fevereiro comum", domain.NewDate(2023, time.February, 28), 1},
		{"Primeiro dia de mês com 30 dias", domain.NewDate(2024, time.June, 1), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dm.DaysRemaining(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateManager_DaysRemaining_BoundsForEveryDay(t *testing.T) {
	dm := NewDateManager()

	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		date := domain.DateOf(day)

		total, err := dm.DaysInMonth(date.Year, date.Month)
		require.NoError(t, err)

		remaining, err := dm.DaysRemaining(date)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, remaining, 1, date.String())
		assert.LessOrEqual(t, remaining, total, date.String())

		if date.Day == 1 {
			assert.Equal(t, total, remaining, date.String())
		}
		if date.Day == total {
			assert.Equal(t, 1, remaining, date.String())
		}
	}
}

func TestDateManager_InvalidDates(t *testing.T) {
	dm := NewDateManager()

	invalid := []domain.Date{
		domain.NewDate(2024, time.February, 30),
		domain.NewDate(2023, time.February, 29),
		domain.NewDate(2024, time.April, 31),
		domain.NewDate(2024, time.January, 0),
		domain.NewDate(2024, 13, 1),
	}

	for _, date := range invalid {
		t.Run(date.String(), func(t *testing.T) {
			_, err := dm.DaysRemaining(date)
			assert.ErrorIs(t, err, ErrInvalidDate)

			_, err = dm.TimePercentage(date)
			assert.ErrorIs(t, err, ErrInvalidDate)

			_, err = dm.DaysElapsed(date)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestDateManager_TimePercentage(t *testing.T) {
	dm := NewDateManager()

	tests := []struct {
		date domain.Date
		want string
	}{
		{domain.NewDate(2024, time.December, 18), "58.1"},
		{domain.NewDate(2024, time.June, 1), "3.3"},
		{domain.NewDate(2024, time.June, 30), "100.0"},
		{domain.NewDate(2024, time.February, 15), "51.7"},
		{domain.NewDate(2024, time.April, 15), "50.0"},
	}

	for _, tt := range tests {
		t.Run(tt.date.String(), func(t *testing.T) {
			got, err := dm.TimePercentage(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(1))
		})
	}
}

func TestDateManager_DaysElapsed(t *testing.T) {
	got, err := NewDateManager().DaysElapsed(domain.NewDate(2024, time.March, 9))
	require.NoError(t, err)
	assert.Equal(t, 9, got)
}
