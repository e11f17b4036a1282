package validating

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/pkg/utils"
)

const (
	ColumnCampaign      = "Campaign"
	ColumnMonthlyBudget = "Monthly_Budget"
	ColumnCurrentSpend  = "Current_Spend"
	ColumnGrossBudget   = "Gross_Budget"
)

var RequiredColumns = []string{ColumnCampaign, ColumnMonthlyBudget, ColumnCurrentSpend}

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrEmptyFile      = errors.New("csv file is empty")
)

var (
	currencyCleanPattern = regexp.MustCompile(`[R\s,]`)
	europeanPattern      = regexp.MustCompile(`^R?\s*\d+,\d{2}$`)
	numberPattern        = regexp.MustCompile(`^-?\d+\.?\d*$`)
)

// Validator converte linhas de CSV em campanhas validadas
type Validator interface {
	ValidateFile(path string, hasHeader bool) (*ValidationResult, error)
	ValidateCSV(r io.Reader, hasHeader bool) (*ValidationResult, error)
	ValidateRows(rows []map[string]string, startRow int) *ValidationResult
}

type Service struct {
	vatRate decimal.Decimal
}

func NewService(vatRate decimal.Decimal) Validator {
	if vatRate.IsNegative() || vatRate.IsZero() {
		vatRate = DefaultVATRate
	}
	return &Service{vatRate: vatRate}
}

func (s *Service) ValidateFile(path string, hasHeader bool) (*ValidationResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "csv file not found: %s", path)
	}
	defer file.Close()

	return s.ValidateCSV(file, hasHeader)
}

// ValidateCSV lê o CSV inteiro coletando todos os erros com o número da linha
func (s *Service) ValidateCSV(r io.Reader, hasHeader bool) (*ValidationResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler csv")
	}

	if !hasHeader {
		return s.validatePositional(records), nil
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := records[0]
	if len(header) > 0 {
		// Remove BOM gerado por planilhas
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	if missing := missingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	index := columnIndex(header)
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(index))
		for name, i := range index {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}

	result := s.ValidateRows(rows, 2)

	logrus.WithFields(logrus.Fields{
		"total_rows": result.TotalRows,
		"valid":      result.ValidCount(),
		"errors":     result.ErrorCount(),
	}).Debug("validating: csv processado")

	return result, nil
}

func (s *Service) validatePositional(records [][]string) *ValidationResult {
	result := &ValidationResult{
		Campaigns: make([]domain.Campaign, 0),
		Errors:    make([]ValidationError, 0),
	}

	for i, record := range records {
		rowNumber := i + 1
		result.TotalRows++

		if len(record) < 3 {
			result.Errors = append(result.Errors, ValidationError{
				RowNumber: rowNumber,
				FieldName: "Row",
				Value:     strings.Join(record, ","),
				Message:   "Row must have at least 3 columns: Campaign, Monthly_Budget, Current_Spend",
			})
			continue
		}

		row := map[string]string{
			ColumnCampaign:      record[0],
			ColumnMonthlyBudget: record[1],
			ColumnCurrentSpend:  record[2],
		}
		if len(record) > 3 {
			row[ColumnGrossBudget] = record[3]
		}

		s.collect(result, row, rowNumber)
	}

	return result
}

// ValidateRows valida linhas vindas de outras fontes (ex: JSON da API)
func (s *Service) ValidateRows(rows []map[string]string, startRow int) *ValidationResult {
	result := &ValidationResult{
		Campaigns: make([]domain.Campaign, 0, len(rows)),
		Errors:    make([]ValidationError, 0),
		TotalRows: len(rows),
	}

	for i, row := range rows {
		s.collect(result, row, startRow+i)
	}

	return result
}

func (s *Service) collect(result *ValidationResult, row map[string]string, rowNumber int) {
	campaign, rowErrors := s.validateRow(row, rowNumber)
	if campaign != nil {
		result.Campaigns = append(result.Campaigns, *campaign)
	}
	result.Errors = append(result.Errors, rowErrors...)
}

func (s *Service) validateRow(row map[string]string, rowNumber int) (*domain.Campaign, []ValidationError) {
	var rowErrors []ValidationError

	name := strings.TrimSpace(row[ColumnCampaign])
	if name == "" {
		rowErrors = append(rowErrors, ValidationError{
			RowNumber: rowNumber,
			FieldName: ColumnCampaign,
			Value:     row[ColumnCampaign],
			Message:   "Campaign name cannot be empty",
		})
	}

	var grossBudget *decimal.Decimal
	if grossStr := strings.TrimSpace(row[ColumnGrossBudget]); grossStr != "" {
		gross, err := parseDecimal(grossStr, ColumnGrossBudget, rowNumber, true, false)
		if err != nil {
			rowErrors = append(rowErrors, *err)
		} else {
			grossBudget = &gross
		}
	}

	var monthlyBudget *decimal.Decimal
	budgetStr := strings.TrimSpace(row[ColumnMonthlyBudget])
	switch {
	case budgetStr != "":
		budget, err := parseDecimal(budgetStr, ColumnMonthlyBudget, rowNumber, true, false)
		if err != nil {
			rowErrors = append(rowErrors, *err)
		} else {
			monthlyBudget = &budget
		}
	case grossBudget != nil:
		net := NetFromGross(*grossBudget, s.vatRate)
		monthlyBudget = &net
	default:
		rowErrors = append(rowErrors, ValidationError{
			RowNumber: rowNumber,
			FieldName: ColumnMonthlyBudget,
			Value:     budgetStr,
			Message:   "Monthly_Budget cannot be empty (or provide Gross_Budget)",
		})
	}

	spend, spendErr := parseDecimal(row[ColumnCurrentSpend], ColumnCurrentSpend, rowNumber, false, true)
	if spendErr != nil {
		rowErrors = append(rowErrors, *spendErr)
	}

	if len(rowErrors) > 0 || monthlyBudget == nil {
		return nil, rowErrors
	}

	return &domain.Campaign{
		Name:          name,
		MonthlyBudget: *monthlyBudget,
		CurrentSpend:  spend,
		GrossBudget:   grossBudget,
	}, nil
}

// parseDecimal aceita os formatos "10000", "10,000", "R 10,000" e "R10000.00"
func parseDecimal(value, field string, rowNumber int, mustBePositive, allowZero bool) (decimal.Decimal, *ValidationError) {
	original := value
	value = strings.TrimSpace(value)

	fail := func(message string) (decimal.Decimal, *ValidationError) {
		return decimal.Zero, &ValidationError{
			RowNumber: rowNumber,
			FieldName: field,
			Value:     original,
			Message:   message,
		}
	}

	if value == "" {
		return fail(fmt.Sprintf("%s cannot be empty", field))
	}

	if europeanPattern.MatchString(value) {
		return fail(fmt.Sprintf("%s appears to use European format (comma as decimal). "+
			"Please use period as decimal separator (e.g., '100.00' not '100,00')", field))
	}

	cleaned := currencyCleanPattern.ReplaceAllString(value, "")
	if !numberPattern.MatchString(cleaned) {
		return fail(fmt.Sprintf("%s must be a valid number (received: '%s')", field, original))
	}

	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return fail(fmt.Sprintf("%s must be a valid number (received: '%s')", field, original))
	}

	parsed = utils.RoundWithTwoDecimalPlace(parsed)

	if mustBePositive && !parsed.IsPositive() {
		return fail(fmt.Sprintf("%s must be a positive number (received: '%s')", field, original))
	}

	if (allowZero || !mustBePositive) && parsed.IsNegative() {
		return fail(fmt.Sprintf("%s must be a non-negative number (received: '%s')", field, original))
	}

	return parsed, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, column := range header {
		present[strings.ToLower(strings.TrimSpace(column))] = true
	}

	missing := make([]string, 0)
	for _, required := range RequiredColumns {
		if !present[strings.ToLower(required)] {
			missing = append(missing, required)
		}
	}
	return missing
}

// columnIndex mapeia o nome canônico de cada coluna conhecida para sua posição
func columnIndex(header []string) map[string]int {
	known := append([]string{}, RequiredColumns...)
	known = append(known, ColumnGrossBudget)

	index := make(map[string]int)
	for i, column := range header {
		normalized := strings.ToLower(strings.TrimSpace(column))
		for _, name := range known {
			if normalized == strings.ToLower(name) {
				index[name] = i
			}
		}
	}
	return index
}
