package validating

import (
	"fmt"

	"github.com/vfg2006/budget-guard-api/internal/domain"
)

// ValidationError descreve um campo inválido de uma linha do arquivo
type ValidationError struct {
	RowNumber int    `json:"row_number"`
	FieldName string `json:"field_name"`
	Value     string `json:"value"`
	Message   string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("Error: Row %d '%s' - %s", e.RowNumber, e.FieldName, e.Message)
}

// ValidationResult agrupa as campanhas válidas e os erros encontrados
type ValidationResult struct {
	Campaigns []domain.Campaign `json:"campaigns"`
	Errors    []ValidationError `json:"errors"`
	TotalRows int               `json:"total_rows"`
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) ValidCount() int {
	return len(r.Campaigns)
}

func (r *ValidationResult) ErrorCount() int {
	return len(r.Errors)
}
