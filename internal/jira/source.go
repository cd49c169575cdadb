package jira

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Afrawles/jiradigest/internal/config"
	"github.com/Afrawles/jiradigest/internal/report"
)

const jqlTimeLayout = "2006-01-02 15:04"

// Source adapts the Jira REST API to report.IssueSource. Every call that
// fails is logged and degrades to an empty result.
type Source struct {
	Client      *Client
	ProjectKey  string
	ReadyStatus string
	MaxResults  int
	log         *zap.SugaredLogger
}

var _ report.IssueSource = (*Source)(nil)

func NewSource(cfg config.JiraConfig, log *zap.SugaredLogger) *Source {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Source{
		Client:      NewClient(cfg, log),
		ProjectKey:  cfg.ProjectKey,
		ReadyStatus: cfg.ReadyStatus,
		MaxResults:  cfg.MaxResults,
		log:         log,
	}
}

func (s *Source) FetchUpdatedIssues(ctx context.Context, window report.TimeWindow) []report.Issue {
	params := SearchParams{
		JQL:        UpdatedJQL(s.ProjectKey, window),
		Fields:     []string{"summary", "assignee"},
		Expand:     []string{"changelog"},
		MaxResults: s.MaxResults,
	}

	resp, err := s.Client.Search(ctx, params)
	if err != nil {
		s.log.Errorw("failed to fetch updated issues", "project", s.ProjectKey, "error", err)
		return nil
	}

	s.log.Infof("Found %d issues", len(resp.Issues))
	if resp.Total > len(resp.Issues) {
		s.log.Debugw("search result truncated", "total", resp.Total, "returned", len(resp.Issues))
	}

	issues := make([]report.Issue, 0, len(resp.Issues))
	for _, wire := range resp.Issues {
		issues = append(issues, s.toIssue(wire))
	}
	return issues
}

func (s *Source) FetchComments(ctx context.Context, issueKey string) []report.Comment {
	resp, err := s.Client.Comments(ctx, issueKey)
	if err != nil {
		s.log.Errorw("failed to fetch comments", "issue", issueKey, "error", err)
		return nil
	}

	comments := make([]report.Comment, 0, len(resp.Comments))
	for _, wire := range resp.Comments {
		created, err := ParseTime(wire.Created)
		if err != nil {
			s.log.Debugw("skipping comment with bad timestamp", "issue", issueKey, "comment", wire.ID, "error", err)
			continue
		}
		author := ""
		if wire.Author != nil {
			author = wire.Author.DisplayName
		}
		comments = append(comments, report.Comment{
			Created: created,
			Author:  author,
			Body:    FlattenADF(wire.Body),
		})
	}
	return comments
}

func (s *Source) FetchReadyIssues(ctx context.Context, assignee string) []report.ReadyIssue {
	params := SearchParams{
		JQL:        ReadyJQL(assignee, s.ReadyStatus),
		Fields:     []string{"summary"},
		MaxResults: s.MaxResults,
	}

	resp, err := s.Client.Search(ctx, params)
	if err != nil {
		s.log.Errorw("failed to fetch ready issues", "assignee", assignee, "error", err)
		return nil
	}

	ready := make([]report.ReadyIssue, 0, len(resp.Issues))
	for _, wire := range resp.Issues {
		ready = append(ready, report.ReadyIssue{Key: wire.Key, Summary: summaryOrDefault(wire.Fields.Summary)})
	}
	return ready
}

func (s *Source) toIssue(wire Issue) report.Issue {
	issue := report.Issue{
		Key:      wire.Key,
		Assignee: report.UnassignedLabel,
		Summary:  summaryOrDefault(wire.Fields.Summary),
	}
	if wire.Fields.Assignee != nil && wire.Fields.Assignee.DisplayName != "" {
		issue.Assignee = wire.Fields.Assignee.DisplayName
	}
	if wire.Changelog == nil {
		return issue
	}

	for _, h := range wire.Changelog.Histories {
		created, err := ParseTime(h.Created)
		if err != nil {
			s.log.Debugw("skipping history entry with bad timestamp", "issue", wire.Key, "error", err)
			continue
		}
		entry := report.HistoryEntry{Created: created}
		for _, item := range h.Items {
			entry.Items = append(entry.Items, report.ChangeItem{
				Field: item.Field,
				From:  item.FromString,
				To:    item.ToString,
			})
		}
		issue.Changelog = append(issue.Changelog, entry)
	}
	return issue
}

func summaryOrDefault(summary string) string {
	if strings.TrimSpace(summary) == "" {
		return report.NoSummaryLabel
	}
	return summary
}

// ParseTime parses a Jira REST timestamp such as 2024-01-01T10:15:00.000+0000.
func ParseTime(value string) (time.Time, error) {
	t, err := time.Parse(report.JiraTimeLayout, value)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.Parse(time.RFC3339, value); err2 == nil {
		return t2, nil
	}
	return time.Time{}, err
}

// UpdatedJQL selects the project's issues updated inside the window. Jira
// applies the profile time zone to these literals, so the result is only an
// approximation of the window and callers filter again by exact timestamp.
func UpdatedJQL(projectKey string, window report.TimeWindow) string {
	return fmt.Sprintf(`project = %s AND updated >= %s AND updated <= %s ORDER BY updated ASC`,
		quoteJQL(projectKey),
		quoteJQL(window.Start.Format(jqlTimeLayout)),
		quoteJQL(window.End.Format(jqlTimeLayout)),
	)
}

func ReadyJQL(assignee, status string) string {
	return fmt.Sprintf(`assignee = %s AND status = %s`, quoteJQL(assignee), quoteJQL(status))
}

func quoteJQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
