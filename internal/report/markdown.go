package report

import (
	"fmt"
	"strings"
	"time"

	"reitetl/internal/exporter"
	"reitetl/internal/macro"
	"reitetl/internal/panel"
	"reitetl/internal/reitpanel"
)

// reportData is everything the Markdown renderer needs, assembled by the
// generator so rendering stays a pure function.
type reportData struct {
	GeneratedAt time.Time
	TraceID     string
	Stats       panel.MergeStats
	REITAudit   *reitpanel.Audit
	MacroAudit  *macro.Audit
	Groups      []GroupSummary
	PanelCSV    string

	DateMin       time.Time
	DateMax       time.Time
	UniqueTickers int
	UniqueMonths  int
}

// renderMarkdown builds the full run report.
func renderMarkdown(d reportData) string {
	var b strings.Builder

	b.WriteString("# REIT Analysis Panel Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", d.GeneratedAt.Format(time.RFC3339)))
	if d.TraceID != "" {
		b.WriteString(fmt.Sprintf("Run: %s\n", d.TraceID))
	}
	b.WriteString(fmt.Sprintf("Panel: %s\n\n", d.PanelCSV))

	writePipeline(&b, d)
	writeCoverage(&b, d)
	writeCleaningAudit(&b, d.REITAudit)
	writeMacroAudit(&b, d.MacroAudit)
	writeSummaryTables(&b, d.Groups)

	return b.String()
}

func writePipeline(b *strings.Builder, d reportData) {
	b.WriteString("## Pipeline\n\n")
	b.WriteString("| Stage | Output rows | Notes |\n")
	b.WriteString("| --- | ---: | --- |\n")

	if a := d.REITAudit; a != nil {
		b.WriteString(fmt.Sprintf("| reitclean | %d | dropped %d of %d input rows |\n",
			a.OutputRows, a.InputRows-a.OutputRows, a.InputRows))
	} else {
		b.WriteString("| reitclean | | audit sidecar unavailable |\n")
	}
	if a := d.MacroAudit; a != nil {
		note := fmt.Sprintf("%d series", len(a.SeriesCounts))
		if a.Synthetic {
			note = "synthetic data"
		}
		b.WriteString(fmt.Sprintf("| fredclean | %d | %s |\n", a.OutputRows, note))
	} else {
		b.WriteString("| fredclean | | audit sidecar unavailable |\n")
	}
	b.WriteString(fmt.Sprintf("| panelmerge | %d | left join on month-end date |\n\n",
		d.Stats.REITRows))

	// The merge stage aborts on any count mismatch, so reaching the report
	// is itself the proof.
	b.WriteString(fmt.Sprintf(
		"Row preservation check: **PASS** (%d security-months in, %d panel rows out).\n\n",
		d.Stats.REITRows, d.Stats.REITRows))
}

func writeCoverage(b *strings.Builder, d reportData) {
	b.WriteString("## Coverage\n\n")
	if d.UniqueMonths > 0 {
		b.WriteString(fmt.Sprintf("- Months: %s to %s (%d distinct)\n",
			d.DateMin.Format("2006-01-02"), d.DateMax.Format("2006-01-02"), d.UniqueMonths))
	} else {
		b.WriteString("- Months: none\n")
	}
	b.WriteString(fmt.Sprintf("- Securities: %d tickers\n", d.UniqueTickers))

	if d.Stats.REITRows > 0 {
		pct := float64(d.Stats.MatchedRows) / float64(d.Stats.REITRows) * 100
		b.WriteString(fmt.Sprintf("- Macro backdrop: %d of %d rows matched (%.1f%%), %d macro months on file\n",
			d.Stats.MatchedRows, d.Stats.REITRows, pct, d.Stats.MacroMonths))
	}

	if balanced := d.UniqueTickers * d.UniqueMonths; balanced > 0 {
		pct := float64(d.Stats.REITRows) / float64(balanced) * 100
		b.WriteString(fmt.Sprintf(
			"- Balance: %d rows of a %d x %d = %d balanced panel (%.1f%%)\n",
			d.Stats.REITRows, d.UniqueTickers, d.UniqueMonths, balanced, pct))
	}
	b.WriteString("\n")
}

func writeCleaningAudit(b *strings.Builder, a *reitpanel.Audit) {
	if a == nil {
		return
	}
	b.WriteString("## Cleaning audit\n\n")
	b.WriteString(fmt.Sprintf("Source: %s\n\n", a.Source))
	b.WriteString("| Filter | Rows dropped |\n")
	b.WriteString("| --- | ---: |\n")
	b.WriteString(fmt.Sprintf("| malformed rows | %d |\n", a.DroppedMalformed))
	b.WriteString(fmt.Sprintf("| missing key fields | %d |\n", a.DroppedMissingKey))
	b.WriteString(fmt.Sprintf("| invalid dates | %d |\n", a.DroppedInvalidDates))
	b.WriteString(fmt.Sprintf("| invalid returns | %d |\n", a.DroppedInvalidReturns))
	b.WriteString(fmt.Sprintf("| duplicate security-months | %d |\n", a.DroppedDuplicates))
	b.WriteString(fmt.Sprintf("| outlier returns | %d |\n", a.DroppedOutliers))
	b.WriteString(fmt.Sprintf("\n%d input rows became %d clean rows.\n\n", a.InputRows, a.OutputRows))
}

func writeMacroAudit(b *strings.Builder, a *macro.Audit) {
	if a == nil {
		return
	}
	b.WriteString("## Macro audit\n\n")
	if a.Synthetic {
		b.WriteString("Macro data is synthetic; no raw series files were found.\n\n")
	}
	if len(a.MissingSeries) > 0 {
		b.WriteString(fmt.Sprintf("Missing series: %s\n\n", strings.Join(a.MissingSeries, ", ")))
	}
	b.WriteString(fmt.Sprintf("Coverage: %s to %s, %d months",
		a.DateMin, a.DateMax, a.OutputRows))
	if a.SkippedRows > 0 || a.DuplicateDates > 0 {
		b.WriteString(fmt.Sprintf(" (%d rows skipped, %d repeated months collapsed)",
			a.SkippedRows, a.DuplicateDates))
	}
	b.WriteString(".\n\n")
}

func writeSummaryTables(b *strings.Builder, groups []GroupSummary) {
	b.WriteString("## Summary statistics\n")
	for _, group := range groups {
		b.WriteString(fmt.Sprintf("\n### %s\n\n", group.Title))
		b.WriteString("| Variable | Count | Missing % | Mean | Std | Min | 25% | Median | 75% | Max |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: | ---: | ---: | ---: | ---: |\n")
		for _, s := range group.Summaries {
			b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				s.Variable,
				s.Count,
				cell(s.MissingPct(), 1),
				cell(s.Mean, 4),
				cell(s.Std, 4),
				cell(s.Min, 4),
				cell(s.Q25, 4),
				cell(s.Median, 4),
				cell(s.Q75, 4),
				cell(s.Max, 4),
			))
		}
	}
}

// cell formats one table value, leaving NaN blank.
func cell(v float64, prec int) string {
	return exporter.FormatFloatPrec(v, prec)
}
