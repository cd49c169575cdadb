package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Afrawles/jiradigest/internal/config"
	"github.com/Afrawles/jiradigest/internal/digest"
	"github.com/Afrawles/jiradigest/internal/logger"
	"github.com/Afrawles/jiradigest/internal/report"
)

var (
	startTime string
	endTime   string
	daysBack  int
	debug     bool
	upNext    bool
	quiet     bool
	jsonFile  string
	csvFile   string
	xlsxFile  string
)

var rootCmd = &cobra.Command{
	Use:   "jiradigest",
	Short: "Summarize Jira status changes and comments per assignee",
	Long: `jiradigest lists the Jira issues of a project that changed status or received
comments inside a time window, grouped by assignee, with each assignee's
ready-for-development queue.

Configuration comes from JIRA_BASE_URL, JIRA_PROJECT_KEY, JIRA_EMAIL and JIRA_API_TOKEN.`,
	Example: `  jiradigest
  jiradigest --start 09:00 --end 17:30 --days 1
  jiradigest -s "2024-01-01 10:00" -e "2024-01-01 11:00" --debug --xlsx digest.xlsx`,
	SilenceUsage: true,
	RunE:         runDigest,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&startTime, "start", "s", "10:00", "Window start (HH:MM today, or YYYY-MM-DD HH:MM)")
	rootCmd.Flags().StringVarP(&endTime, "end", "e", "11:00", "Window end (HH:MM today, or YYYY-MM-DD HH:MM)")
	rootCmd.Flags().IntVarP(&daysBack, "days", "d", 0, "Days to subtract from the window start")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Show timestamps, update kinds, authors and browse URLs")
	rootCmd.Flags().BoolVar(&upNext, "up-next", true, "List each assignee's ready-for-development issues")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress spinner")

	rootCmd.Flags().StringVar(&jsonFile, "json", "", "Also write the digest as JSON to this file")
	rootCmd.Flags().StringVar(&csvFile, "csv", "", "Also write one CSV row per update to this file")
	rootCmd.Flags().StringVar(&xlsxFile, "xlsx", "", "Also write an Excel workbook to this file")
}

func runDigest(cmd *cobra.Command, args []string) error {
	window, err := report.WindowFromArgs(startTime, endTime, daysBack, time.Now())
	if err != nil {
		_ = cmd.Usage()
		return err
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	app := digest.New(cfg, log)

	opts := digest.Options{
		Debug:     debug,
		UpNext:    upNext,
		JSONFile:  jsonFile,
		CSVFile:   csvFile,
		ExcelFile: xlsxFile,
	}

	if !quiet {
		bar := newSpinner("Fetching updates")
		app.Source = withProgress(app.Source, bar)
		opts.AfterFetch = func() { finishBar(bar) }
	}

	return app.Run(cmd.Context(), window, opts, cmd.OutOrStdout())
}
