package main

import (
	"context"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Afrawles/jiradigest/internal/report"
)

func newSpinner(description string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	_ = bar.RenderBlank()
	return bar
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}

// progressSource ticks the spinner once per remote call.
type progressSource struct {
	report.IssueSource
	bar *progressbar.ProgressBar
}

func withProgress(src report.IssueSource, bar *progressbar.ProgressBar) report.IssueSource {
	return &progressSource{IssueSource: src, bar: bar}
}

func (p *progressSource) FetchUpdatedIssues(ctx context.Context, window report.TimeWindow) []report.Issue {
	defer p.tick()
	return p.IssueSource.FetchUpdatedIssues(ctx, window)
}

func (p *progressSource) FetchComments(ctx context.Context, issueKey string) []report.Comment {
	defer p.tick()
	return p.IssueSource.FetchComments(ctx, issueKey)
}

func (p *progressSource) FetchReadyIssues(ctx context.Context, assignee string) []report.ReadyIssue {
	defer p.tick()
	return p.IssueSource.FetchReadyIssues(ctx, assignee)
}

func (p *progressSource) tick() {
	_ = p.bar.Add(1)
}
