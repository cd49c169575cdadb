package digest

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Afrawles/jiradigest/internal/config"
	"github.com/Afrawles/jiradigest/internal/jira"
	"github.com/Afrawles/jiradigest/internal/report"
)

type Options struct {
	Debug  bool
	UpNext bool

	JSONFile  string
	CSVFile   string
	ExcelFile string

	// AfterFetch runs once all remote calls are done, before the digest is written.
	AfterFetch func()
}

type Application struct {
	Config    config.Config
	Logger    *zap.SugaredLogger
	Source    report.IssueSource
	BrowseURL string
	Exporter  *report.Exporter
}

func New(cfg config.Config, logger *zap.SugaredLogger) *Application {
	src := jira.NewSource(cfg.Jira, logger)
	return &Application{
		Config:    cfg,
		Logger:    logger,
		Source:    src,
		BrowseURL: cfg.Jira.BaseURL,
		Exporter:  report.NewExporter(""),
	}
}

// Run builds the digest for the window and writes it to out. Export failures
// are logged and never affect the text digest.
func (app *Application) Run(ctx context.Context, window report.TimeWindow, opts Options, out io.Writer) error {
	app.Logger.Debugw("generating digest",
		"project", app.Config.Jira.ProjectKey,
		"window", window.String(),
	)

	gen := report.NewGenerator(app.Source, app.Logger, opts.UpNext)
	d := gen.Generate(ctx, window)
	if opts.AfterFetch != nil {
		opts.AfterFetch()
	}

	text := report.Render(d, report.RenderOptions{Debug: opts.Debug, BrowseURL: app.BrowseURL})
	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}

	stats := gen.Statistics(d)
	app.export(d, stats, opts)

	app.Logger.Debugw("digest complete",
		"assignees", len(d.Groups),
		"issues", stats.Issues,
		"status_changes", stats.Statuses,
		"comments", stats.Comments,
	)
	return nil
}

func (app *Application) export(d report.Digest, stats report.Stats, opts Options) {
	if opts.JSONFile != "" {
		if err := app.Exporter.ExportJSON(d, opts.JSONFile); err != nil {
			app.Logger.Errorw("failed to export JSON", "error", err)
		} else {
			app.Logger.Infow("report exported", "format", "json", "file", opts.JSONFile)
		}
	}
	if opts.CSVFile != "" {
		if err := app.Exporter.ExportCSV(d, opts.CSVFile); err != nil {
			app.Logger.Errorw("failed to export CSV", "error", err)
		} else {
			app.Logger.Infow("report exported", "format", "csv", "file", opts.CSVFile)
		}
	}
	if opts.ExcelFile != "" {
		if err := app.Exporter.ExportExcel(d, stats, opts.ExcelFile); err != nil {
			app.Logger.Errorw("failed to export Excel", "error", err)
		} else {
			app.Logger.Infow("report exported", "format", "xlsx", "file", opts.ExcelFile)
		}
	}
}
