package reporting

import (
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	zarFormat        = "R #,##0.00"
	percentageFormat = "0.00%"
	varianceFormat   = "0.00"

	criticalColor = "FFC7CE"
	warningColor  = "FFEB9C"
	healthyColor  = "C6EFCE"
	headerColor   = "2F5496"
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// styles guarda os ids de estilo registrados em um arquivo
type styles struct {
	title    int
	section  int
	label    int
	currency int
	header   int
	bordered int

	// linha de campanha por nível de risco e formato numérico
	rows map[domain.RiskLevel]map[string]int
	// célula da tabela de resumo de risco
	summary map[domain.RiskLevel]int
}

func newStyles(f *excelize.File) (*styles, error) {
	s := &styles{
		rows:    make(map[domain.RiskLevel]map[string]int),
		summary: make(map[domain.RiskLevel]int),
	}

	var err error

	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}); err != nil {
		return nil, err
	}
	if s.section, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return nil, err
	}
	if s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, err
	}
	if s.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: ptr(zarFormat)}); err != nil {
		return nil, err
	}
	if s.bordered, err = f.NewStyle(&excelize.Style{Border: thinBorder}); err != nil {
		return nil, err
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      solidFill(headerColor),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, err
	}

	for _, level := range domain.RiskLevels {
		fill := summaryFill(level)
		if s.summary[level], err = f.NewStyle(&excelize.Style{Fill: fill, Border: thinBorder}); err != nil {
			return nil, err
		}

		s.rows[level] = make(map[string]int)
		for _, format := range []string{"", zarFormat, percentageFormat, varianceFormat} {
			style := &excelize.Style{Fill: rowFill(level), Border: thinBorder}
			if format != "" {
				style.CustomNumFmt = ptr(format)
			}
			if s.rows[level][format], err = f.NewStyle(style); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

// rowFill destaca as linhas da planilha detalhada; saudável fica sem cor
func rowFill(level domain.RiskLevel) excelize.Fill {
	switch level {
	case domain.RiskCritical, domain.RiskOverBudget:
		return solidFill(criticalColor)
	case domain.RiskWarning:
		return solidFill(warningColor)
	}
	return excelize.Fill{}
}

func summaryFill(level domain.RiskLevel) excelize.Fill {
	switch level {
	case domain.RiskCritical:
		return solidFill(criticalColor)
	case domain.RiskWarning:
		return solidFill(warningColor)
	case domain.RiskHealthy:
		return solidFill(healthyColor)
	}
	return excelize.Fill{}
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func ptr[T any](v T) *T {
	return &v
}
