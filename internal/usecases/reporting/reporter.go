package reporting

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Finance Summary"
	DetailSheet  = "Campaign Deep-Dive"

	defaultPrefix = "budget_report"
	minColWidth   = 10
)

var detailHeaders = []string{
	"Campaign",
	"Monthly Budget",
	"Current Spend",
	"Remaining",
	"RDS",
	"Spend %",
	"Time %",
	"Variance",
	"Risk Status",
	"Days Left",
}

var riskStatus = map[domain.RiskLevel]string{
	domain.RiskCritical:   "Immediate Action Required",
	domain.RiskWarning:    "Monitor Closely",
	domain.RiskHealthy:    "On Track",
	domain.RiskOverBudget: "Budget Exceeded",
}

// Reporter gera a planilha executiva de um snapshot
type Reporter struct {
	now func() time.Time
}

func NewReporter() *Reporter {
	return &Reporter{now: time.Now}
}

// GenerateFilename retorna prefix_YYYY-MM-DD_HHMMSS_<id>.xlsx usando o horário do snapshot
func (r *Reporter) GenerateFilename(prefix string, snapshot *domain.AnalysisSnapshot) string {
	if prefix == "" {
		prefix = defaultPrefix
	}

	name := prefix + "_" + utils.TimestampSuffix(snapshot.Timestamp)
	if snapshot.ID != "" {
		name += "_" + snapshot.ID
	}
	return name + ".xlsx"
}

func (r *Reporter) SaveToFile(snapshot *domain.AnalysisSnapshot, path string) error {
	f, err := r.Build(snapshot)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório do relatório %s", filepath.Dir(path))
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "erro ao salvar relatório %s", path)
	}

	return nil
}

// Write grava a planilha no writer, usado no download pela API
func (r *Reporter) Write(snapshot *domain.AnalysisSnapshot, w io.Writer) error {
	f, err := r.Build(snapshot)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "erro ao escrever relatório")
	}
	return nil
}

// Build monta o arquivo com as abas de resumo financeiro e detalhamento por campanha
func (r *Reporter) Build(snapshot *domain.AnalysisSnapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "erro ao criar estilos")
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := r.writeSummary(f, st, snapshot); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "erro na aba de resumo")
	}

	if _, err := f.NewSheet(DetailSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeDetail(f, st, snapshot); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "erro na aba de campanhas")
	}

	f.SetActiveSheet(0)

	return f, nil
}

func (r *Reporter) writeSummary(f *excelize.File, st *styles, snapshot *domain.AnalysisSnapshot) error {
	w := newSheetWriter(f, SummarySheet)

	w.text("A1", "BudgetGuard ZAR - Finance Summary", st.title)
	w.merge("A1", "D1")

	w.text("A3", "Report Generated:", 0)
	w.text("B3", r.now().Format("2006-01-02 15:04"), 0)
	w.text("A4", "Analysis Date:", 0)
	w.text("B4", snapshot.Timestamp.Format("2006-01-02 15:04"), 0)
	w.text("A5", "Evaluation Date:", 0)
	w.text("B5", snapshot.EvaluationDate.String(), 0)
	w.text("A6", "Version:", 0)
	w.text("B6", snapshot.Version, 0)

	w.text("A8", "PORTFOLIO OVERVIEW", st.section)
	w.merge("A8", "D8")

	metrics := []struct {
		label string
		value decimal.Decimal
	}{
		{"Total Portfolio Budget", snapshot.TotalBudget},
		{"Total Spend to Date", snapshot.TotalSpend},
		{"Remaining Budget", snapshot.Remaining()},
		{"Overall RDS", snapshot.OverallRDS()},
	}

	row := 10
	for _, m := range metrics {
		w.text(cell(1, row), m.label, st.label)
		w.number(cell(2, row), m.value, st.currency)
		row++
	}

	w.text("A15", "RISK SUMMARY", st.section)
	w.merge("A15", "D15")

	row = 17
	for col, header := range []string{"Risk Level", "Count", "Status"} {
		w.text(cell(col+1, row), header, st.header)
	}

	for _, level := range domain.RiskLevels {
		row++
		w.text(cell(1, row), level.Label(), st.summary[level])
		w.integer(cell(2, row), snapshot.Count(level), st.bordered)
		w.text(cell(3, row), riskStatus[level], st.bordered)
	}

	row += 2
	w.text(cell(1, row), "Total Campaigns Analysed:", st.label)
	w.integer(cell(2, row), len(snapshot.Campaigns), 0)

	if len(snapshot.Failures) > 0 {
		row++
		w.text(cell(1, row), "Campaigns Skipped:", st.label)
		w.integer(cell(2, row), len(snapshot.Failures), 0)
	}

	return w.finish()
}

func writeDetail(f *excelize.File, st *styles, snapshot *domain.AnalysisSnapshot) error {
	w := newSheetWriter(f, DetailSheet)

	for col, header := range detailHeaders {
		w.text(cell(col+1, 1), header, st.header)
	}

	hundred := decimal.NewFromInt(100)

	for i, ca := range snapshot.Campaigns {
		row := i + 2
		rowStyle := st.rows[ca.RiskLevel]

		w.text(cell(1, row), ca.Campaign.Name, rowStyle[""])
		w.number(cell(2, row), ca.Campaign.MonthlyBudget, rowStyle[zarFormat])
		w.number(cell(3, row), ca.Campaign.CurrentSpend, rowStyle[zarFormat])
		w.number(cell(4, row), ca.Campaign.RemainingBudget(), rowStyle[zarFormat])
		w.number(cell(5, row), ca.RecommendedDailySpend, rowStyle[zarFormat])
		w.number(cell(6, row), ca.SpendPercentage.Div(hundred), rowStyle[percentageFormat])
		w.number(cell(7, row), ca.TimePercentage.Div(hundred), rowStyle[percentageFormat])
		w.number(cell(8, row), ca.Variance, rowStyle[varianceFormat])
		w.text(cell(9, row), ca.RiskLevel.String(), rowStyle[""])
		w.integer(cell(10, row), ca.DaysRemaining, rowStyle[""])
	}

	return w.finish()
}

// sheetWriter acumula o primeiro erro e a largura das colunas
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	widths map[int]int
	err    error
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, widths: make(map[int]int)}
}

func (w *sheetWriter) text(axis, value string, style int) {
	w.set(axis, value, utf8.RuneCountInString(value), style)
}

// number converte para float64 só para exibição na célula.
// Não use para valores que alimentam cálculos: a conversão perde precisão.
func (w *sheetWriter) number(axis string, value decimal.Decimal, style int) {
	w.set(axis, value.InexactFloat64(), len(value.StringFixed(2))+4, style)
}

func (w *sheetWriter) integer(axis string, value int, style int) {
	w.set(axis, value, len(fmt.Sprint(value)), style)
}

func (w *sheetWriter) set(axis string, value interface{}, width int, style int) {
	if w.err != nil {
		return
	}

	if w.err = w.f.SetCellValue(w.sheet, axis, value); w.err != nil {
		return
	}

	if style != 0 {
		if w.err = w.f.SetCellStyle(w.sheet, axis, axis, style); w.err != nil {
			return
		}
	}

	col, _, err := excelize.CellNameToCoordinates(axis)
	if err != nil {
		w.err = err
		return
	}
	if width > w.widths[col] {
		w.widths[col] = width
	}
}

func (w *sheetWriter) merge(from, to string) {
	if w.err != nil {
		return
	}
	w.err = w.f.MergeCell(w.sheet, from, to)
}

func (w *sheetWriter) finish() error {
	if w.err != nil {
		return w.err
	}

	for col, width := range w.widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(w.sheet, name, name, float64(max(width+2, minColWidth))); err != nil {
			return err
		}
	}

	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
