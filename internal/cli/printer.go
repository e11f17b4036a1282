package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/vfg2006/budget-guard-api/internal/domain"
	"github.com/vfg2006/budget-guard-api/internal/usecases/validating"
	"github.com/vfg2006/budget-guard-api/pkg/utils"
)

const maxPrintedErrors = 10

var (
	rule     = strings.Repeat("=", 60)
	thinRule = "  " + strings.Repeat("-", 40)
)

func printHeader(w io.Writer, version string) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  BudgetGuard ZAR - Financial Safety Tool")
	fmt.Fprintf(w, "  Version: %s\n", version)
	fmt.Fprintln(w, "  Zero-Overspend Guarantee for SA Advertising Agencies")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func printFooter(w io.Writer) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  BudgetGuard ZAR - Analysis Complete")
	fmt.Fprintln(w, rule)
}

func printValidationErrors(w io.Writer, result *validating.ValidationResult) {
	fmt.Fprintf(w, "\n  VALIDATION ERRORS (%d errors):\n", result.ErrorCount())

	for i, err := range result.Errors {
		if i == maxPrintedErrors {
			fmt.Fprintf(w, "     ... and %d more errors\n", result.ErrorCount()-maxPrintedErrors)
			break
		}
		fmt.Fprintf(w, "     %s\n", err.Error())
	}
}

func printSummary(w io.Writer, snapshot *domain.AnalysisSnapshot) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  ANALYSIS COMPLETE")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  PORTFOLIO OVERVIEW")
	fmt.Fprintln(w, thinRule)
	fmt.Fprintf(w, "  Evaluation Date:   %s\n", snapshot.EvaluationDate)
	fmt.Fprintf(w, "  Total Budget:      %s\n", utils.FormatZAR(snapshot.TotalBudget))
	fmt.Fprintf(w, "  Total Spend:       %s\n", utils.FormatZAR(snapshot.TotalSpend))
	fmt.Fprintf(w, "  Remaining:         %s\n", utils.FormatZAR(snapshot.Remaining()))
	fmt.Fprintf(w, "  Overall RDS:       %s\n", utils.FormatZAR(snapshot.OverallRDS()))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  RISK SUMMARY")
	fmt.Fprintln(w, thinRule)
	for _, level := range domain.RiskLevels {
		if count := snapshot.Count(level); count > 0 {
			fmt.Fprintf(w, "  %-18s %d campaigns\n", level.Label()+":", count)
		}
	}

	fmt.Fprintf(w, "\n  Total Campaigns:   %d\n", len(snapshot.Campaigns))
	if len(snapshot.Failures) > 0 {
		fmt.Fprintf(w, "  Skipped:           %d\n", len(snapshot.Failures))
		for _, failure := range snapshot.Failures {
			fmt.Fprintf(w, "     %s: %s\n", failure.Campaign, failure.Message)
		}
	}
	fmt.Fprintln(w)
}

func printCriticalAlerts(w io.Writer, snapshot *domain.AnalysisSnapshot) {
	critical := snapshot.ByRisk(domain.RiskCritical)
	if len(critical) == 0 {
		return
	}

	fmt.Fprintln(w, "  CRITICAL ALERTS - IMMEDIATE ACTION REQUIRED")
	fmt.Fprintln(w, thinRule)
	for _, ca := range critical {
		fmt.Fprintf(w, "  * %s\n", ca.Campaign.Name)
		fmt.Fprintf(w, "    Spend: %s%% | Time: %s%%\n", ca.SpendPercentage.StringFixed(1), ca.TimePercentage.StringFixed(1))
		fmt.Fprintf(w, "    Variance: +%s%% over pace\n", ca.Variance.StringFixed(1))
		fmt.Fprintf(w, "    RDS: %s\n", utils.FormatZAR(ca.RecommendedDailySpend))
		fmt.Fprintln(w)
	}
}
