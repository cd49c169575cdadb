package report

import (
	"context"
	"time"
)

const (
	UnassignedLabel = "Unassigned"
	NoSummaryLabel  = "(no summary)"
)

type Issue struct {
	Key       string
	Assignee  string
	Summary   string
	Changelog []HistoryEntry `json:"-"`
}

type HistoryEntry struct {
	Created time.Time
	Items   []ChangeItem
}

type ChangeItem struct {
	Field string
	From  string
	To    string
}

// Comment carries an already flattened plain-text body.
type Comment struct {
	Created time.Time
	Author  string
	Body    string
}

type ReadyIssue struct {
	Key     string
	Summary string
}

type UpdateKind int

const (
	KindStatus UpdateKind = iota
	KindComment
)

func (k UpdateKind) String() string {
	switch k {
	case KindStatus:
		return "STATUS"
	case KindComment:
		return "COMMENT"
	default:
		return "UNKNOWN"
	}
}

func (k UpdateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Update struct {
	Timestamp time.Time
	Kind      UpdateKind
	Author    string `json:",omitempty"`
	Content   string
}

type IssueUpdates struct {
	Issue   Issue
	Updates []Update
}

type AssigneeGroup struct {
	Name   string
	Issues []IssueUpdates
	Ready  []ReadyIssue
}

type Digest struct {
	Window TimeWindow
	Groups []AssigneeGroup
}

// IssueSource is the remote side of the report. Implementations log their own
// failures and return an empty result instead of an error.
type IssueSource interface {
	FetchUpdatedIssues(ctx context.Context, window TimeWindow) []Issue
	FetchComments(ctx context.Context, issueKey string) []Comment
	FetchReadyIssues(ctx context.Context, assignee string) []ReadyIssue
}
