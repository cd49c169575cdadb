package report

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

type Generator struct {
	Source IssueSource
	Logger *zap.SugaredLogger
	// UpNext enables the per-assignee ready-for-development lookup.
	UpNext bool
}

func NewGenerator(source IssueSource, logger *zap.SugaredLogger, upNext bool) *Generator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Generator{Source: source, Logger: logger, UpNext: upNext}
}

// BuildUpdates merges the in-window status changes and comments of one issue.
// A nil result means the issue had no activity inside the window.
func (g *Generator) BuildUpdates(ctx context.Context, issue Issue, window TimeWindow) []Update {
	var updates []Update

	for _, entry := range issue.Changelog {
		if !window.Contains(entry.Created) {
			continue
		}
		for _, item := range entry.Items {
			if item.Field != "status" {
				continue
			}
			updates = append(updates, Update{
				Timestamp: entry.Created,
				Kind:      KindStatus,
				Content:   fmt.Sprintf("%s -> %s", item.From, item.To),
			})
		}
	}

	for _, c := range g.Source.FetchComments(ctx, issue.Key) {
		if !window.Contains(c.Created) {
			continue
		}
		updates = append(updates, Update{
			Timestamp: c.Created,
			Kind:      KindComment,
			Author:    c.Author,
			Content:   c.Body,
		})
	}

	if len(updates) == 0 {
		return nil
	}

	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].Timestamp.Before(updates[j].Timestamp)
	})
	return updates
}

// Generate fetches the issues of the window and groups the ones with activity
// by assignee. Groups are sorted by name; issues keep fetch order.
func (g *Generator) Generate(ctx context.Context, window TimeWindow) Digest {
	issues := g.Source.FetchUpdatedIssues(ctx, window)

	byAssignee := make(map[string]*AssigneeGroup)
	var names []string

	for _, issue := range issues {
		if err := ctx.Err(); err != nil {
			g.Logger.Warnw("report generation interrupted", "error", err)
			break
		}

		updates := g.BuildUpdates(ctx, issue, window)
		if updates == nil {
			g.Logger.Debugw("no in-window activity", "issue", issue.Key)
			continue
		}

		name := issue.Assignee
		if name == "" {
			name = UnassignedLabel
		}
		group, ok := byAssignee[name]
		if !ok {
			group = &AssigneeGroup{Name: name}
			byAssignee[name] = group
			names = append(names, name)
		}
		group.Issues = append(group.Issues, IssueUpdates{Issue: issue, Updates: updates})
	}

	sort.Strings(names)

	// names is deduplicated, so each assignee is looked up at most once.
	digest := Digest{Window: window, Groups: make([]AssigneeGroup, 0, len(names))}
	for _, name := range names {
		group := byAssignee[name]
		if g.UpNext && name != UnassignedLabel {
			group.Ready = g.Source.FetchReadyIssues(ctx, name)
		}
		digest.Groups = append(digest.Groups, *group)
	}

	return digest
}

type AssigneeStats struct {
	Issues   int
	Statuses int
	Comments int
	Ready    int
}

type Stats struct {
	Issues     int
	Statuses   int
	Comments   int
	Ready      int
	ByAssignee map[string]AssigneeStats
}

// Statistics generates summary counts for a digest
func (g *Generator) Statistics(d Digest) Stats {
	stats := Stats{ByAssignee: make(map[string]AssigneeStats, len(d.Groups))}

	for _, group := range d.Groups {
		var a AssigneeStats
		a.Issues = len(group.Issues)
		a.Ready = len(group.Ready)
		for _, iu := range group.Issues {
			for _, u := range iu.Updates {
				switch u.Kind {
				case KindStatus:
					a.Statuses++
				case KindComment:
					a.Comments++
				}
			}
		}
		stats.ByAssignee[group.Name] = a
		stats.Issues += a.Issues
		stats.Statuses += a.Statuses
		stats.Comments += a.Comments
		stats.Ready += a.Ready
	}

	return stats
}
