package domain

import (
	"fmt"
	"time"
)

const DateLayout = time.DateOnly

// Date é uma data de calendário sem horário nem fuso.
// Não é normalizada: 30/02 continua sendo 30/02 até ser validada.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extrai a data de calendário de um time.Time no seu próprio fuso
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate interpreta uma data no formato yyyy-mm-dd
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// ParseDateUnchecked lê os campos de yyyy-mm-dd sem validar o calendário.
// 2025-02-30 é aceito aqui e rejeitado depois pelo DateManager.
func ParseDateUnchecked(s string) (Date, error) {
	var year, month, day int
	if len(s) != len(DateLayout) {
		return Date{}, fmt.Errorf("formato de data inválido %q, esperado yyyy-mm-dd", s)
	}
	if n, err := fmt.Sscanf(s, "%4d-%2d-%2d", &year, &month, &day); err != nil || n != 3 {
		return Date{}, fmt.Errorf("formato de data inválido %q, esperado yyyy-mm-dd", s)
	}
	return NewDate(year, time.Month(month), day), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Period retorna o período no formato mm-yyyy
func (d Date) Period() string {
	return fmt.Sprintf("%02d-%04d", int(d.Month), d.Year)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
