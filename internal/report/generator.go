package report

import (
	"context"
	"log/slog"
	"time"

	"reitetl/internal/config"
	apperrors "reitetl/internal/errors"
	"reitetl/internal/exporter"
	"reitetl/internal/infrastructure"
	"reitetl/internal/panel"
	"reitetl/internal/reitpanel"
)

// Generator renders the analysis artifacts for a merged panel: the
// summary statistics CSV and the Markdown run report. Construct with
// NewGenerator.
type Generator struct {
	logger *slog.Logger
	paths  *config.Paths
	csv    *exporter.CSVWriter
}

// NewGenerator wires a report generator. A nil logger falls back to the
// process default.
func NewGenerator(logger *slog.Logger, paths *config.Paths) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		logger: logger,
		paths:  paths,
		csv:    exporter.NewCSVWriter(paths),
	}
}

// Output lists what one generation pass produced.
type Output struct {
	Groups     []GroupSummary
	SummaryCSV string
	ReportMD   string
}

// panelGroups returns the variable groups in report order. Macro columns
// come from the merge result because their set depends on configuration.
func panelGroups(macroColumns []string) []Group {
	return []Group{
		{Title: "Returns and Valuation", Variables: []string{
			reitpanel.ColReturn, reitpanel.ColPrice, reitpanel.ColMarketEquity,
			reitpanel.ColBookToMarket, reitpanel.ColBeta,
		}},
		{Title: "Financial Fundamentals", Variables: []string{
			reitpanel.ColAssets, reitpanel.ColSales, reitpanel.ColNetIncome,
			reitpanel.ColBookEquity, reitpanel.ColDebtAssets, reitpanel.ColCashAssets,
			reitpanel.ColOCFAssets, reitpanel.ColROE,
		}},
		{Title: "Macro Environment", Variables: macroColumns},
	}
}

// Generate computes grouped summary statistics over the merged panel and
// writes both artifacts.
func (g *Generator) Generate(ctx context.Context, res *panel.Result) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "generating panel report",
		slog.Int("rows", len(res.Rows)),
		slog.Int("variables", len(res.Columns)))

	groups := make([]GroupSummary, 0, 3)
	for _, group := range panelGroups(res.MacroColumns) {
		gs := GroupSummary{Title: group.Title}
		for _, variable := range group.Variables {
			gs.Summaries = append(gs.Summaries, Describe(variable, panel.Values(res.Rows, variable)))
		}
		groups = append(groups, gs)
	}

	if err := g.writeSummaryCSV(groups); err != nil {
		return nil, apperrors.NewStorageError("write summary statistics", err)
	}

	markdown := renderMarkdown(buildReportData(ctx, res, groups))
	if err := exporter.WriteText(g.paths.ReportMarkdown, markdown); err != nil {
		return nil, apperrors.NewStorageError("write panel report", err)
	}

	g.logger.InfoContext(ctx, "panel report written",
		slog.String("summary", g.paths.SummaryStatsCSV),
		slog.String("report", g.paths.ReportMarkdown))

	return &Output{
		Groups:     groups,
		SummaryCSV: g.paths.SummaryStatsCSV,
		ReportMD:   g.paths.ReportMarkdown,
	}, nil
}

// summaryColumns is the describe layout: one row per variable.
var summaryColumns = []string{
	"variable", "group", "count", "missing", "missing_pct",
	"mean", "std", "min", "q25", "median", "q75", "max",
}

func (g *Generator) writeSummaryCSV(groups []GroupSummary) error {
	records := make([][]string, 0, 16)
	for _, group := range groups {
		for _, s := range group.Summaries {
			records = append(records, []string{
				s.Variable,
				group.Title,
				exporter.FormatInt(s.Count),
				exporter.FormatInt(s.Missing),
				exporter.FormatFloatPrec(s.MissingPct(), 2),
				exporter.FormatFloat(s.Mean),
				exporter.FormatFloat(s.Std),
				exporter.FormatFloat(s.Min),
				exporter.FormatFloat(s.Q25),
				exporter.FormatFloat(s.Median),
				exporter.FormatFloat(s.Q75),
				exporter.FormatFloat(s.Max),
			})
		}
	}
	return g.csv.WriteSimpleCSV(g.paths.SummaryStatsCSV, summaryColumns, records)
}

// buildReportData assembles everything the Markdown renderer needs.
func buildReportData(ctx context.Context, res *panel.Result, groups []GroupSummary) reportData {
	data := reportData{
		GeneratedAt: time.Now().UTC(),
		TraceID:     infrastructure.GetTraceID(ctx),
		Stats:       res.Stats,
		REITAudit:   res.REITAudit,
		MacroAudit:  res.MacroAudit,
		Groups:      groups,
		PanelCSV:    res.PanelCSV,
	}

	tickers := make(map[string]struct{})
	months := make(map[string]struct{})
	for _, row := range res.Rows {
		tickers[row.Security.Ticker] = struct{}{}
		months[row.Security.Date.Format("2006-01-02")] = struct{}{}
		if data.DateMin.IsZero() || row.Security.Date.Before(data.DateMin) {
			data.DateMin = row.Security.Date
		}
		if row.Security.Date.After(data.DateMax) {
			data.DateMax = row.Security.Date
		}
	}
	data.UniqueTickers = len(tickers)
	data.UniqueMonths = len(months)
	return data
}
