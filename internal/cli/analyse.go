package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/internal/usecases/analysing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/auditing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/pacing"
	"github.com/vfg2006/budget-guard-api/internal/usecases/reporting"
	"github.com/vfg2006/budget-guard-api/internal/usecases/validating"
)

type analyseOptions struct {
	outputDir string
	date      string
	noReport  bool
	noHeader  bool
}

func (a *app) analyseCommand() *cobra.Command {
	opts := &analyseOptions{}

	cmd := &cobra.Command{
		Use:   "analyse <input_csv>",
		Short: "Validate a campaign CSV and generate the pacing audit and report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Output directory for reports (default: AUDIT_OUTPUT_DIR)")
	cmd.Flags().StringVar(&opts.date, "date", "", "Evaluation date yyyy-mm-dd (default: today)")
	cmd.Flags().BoolVar(&opts.noReport, "no-report", false, "Skip the Excel report")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "CSV has no header row (Campaign, Monthly_Budget, Current_Spend[, Gross_Budget])")

	return cmd
}

func (a *app) runAnalyse(cmd *cobra.Command, path string, opts *analyseOptions) error {
	out := cmd.OutOrStdout()

	date := domain.DateOf(time.Now())
	if opts.date != "" {
		parsed, err := domain.ParseDateUnchecked(opts.date)
		if err != nil {
			return err
		}
		date = parsed
	}

	printHeader(out, a.cfg.App.Version)
	fmt.Fprintf(out, "  Loading: %s\n", path)

	result, err := validating.NewService(a.cfg.Pacing.VATRate).ValidateFile(path, !opts.noHeader)
	if err != nil {
		fmt.Fprintf(out, "\n  ERROR: %s\n", err)
		return ErrValidationFailed
	}

	if !result.IsValid() {
		printValidationErrors(out, result)
		return ErrValidationFailed
	}

	fmt.Fprintf(out, "  Validated %d campaigns\n", result.ValidCount())
	fmt.Fprintln(out, "  Calculating pacing metrics...")

	analyser := analysing.NewService(a.cfg, pacing.NewEngine(pacing.NewDateManager()))
	snapshot, err := analyser.AnalyseBatch(cmd.Context(), result.Campaigns, date)
	if err != nil {
		return err
	}

	recorder := auditing.NewRecorder(a.cfg, nil, reporting.NewReporter())
	if opts.outputDir != "" {
		recorder = recorder.WithOutputDir(opts.outputDir)
	}
	if opts.noReport {
		recorder = recorder.WithoutReport()
	}

	record, err := recorder.Record(cmd.Context(), snapshot)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  Audit log saved: %s\n", record.AuditPath)
	if record.ReportPath != "" {
		fmt.Fprintf(out, "  Excel report saved: %s\n", record.ReportPath)
	}

	printSummary(out, snapshot)
	printCriticalAlerts(out, snapshot)
	printFooter(out)

	return nil
}
