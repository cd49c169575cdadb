package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRender_NoGroups(t *testing.T) {
	assert.Equal(t, "No updates found in the specified time window.\n", Render(Digest{}, RenderOptions{}))
}

func TestRender_SingleUpdateInline(t *testing.T) {
	d := Digest{Groups: []AssigneeGroup{{
		Name: "Bob",
		Issues: []IssueUpdates{{
			Issue:   Issue{Key: "IR-1", Summary: "Fix login"},
			Updates: []Update{{Timestamp: at(10, 15, 0), Kind: KindStatus, Content: "To Do -> In Progress"}},
		}},
	}}}

	assert.Equal(t, "Bob:\nIR-1 - Fix login: To Do -> In Progress\n", Render(d, RenderOptions{}))
}

func TestRender_MultipleUpdatesBulleted(t *testing.T) {
	d := Digest{Groups: []AssigneeGroup{
		{
			Name: "Alice",
			Issues: []IssueUpdates{
				{
					Issue: Issue{Key: "IR-2", Summary: "Crash on save"},
					Updates: []Update{
						{Timestamp: at(10, 1, 0), Kind: KindStatus, Content: "In Progress -> Done"},
						{Timestamp: at(10, 2, 0), Kind: KindComment, Author: "Bob", Content: "looks good"},
					},
				},
				{
					Issue:   Issue{Key: "IR-3", Summary: "Docs"},
					Updates: []Update{{Timestamp: at(10, 3, 0), Kind: KindComment, Author: "Ann", Content: "typo"}},
				},
			},
			Ready: []ReadyIssue{{Key: "IR-9", Summary: "Next thing"}},
		},
		{
			Name: "Bob",
			Issues: []IssueUpdates{{
				Issue:   Issue{Key: "IR-4", Summary: "Other"},
				Updates: []Update{{Timestamp: at(10, 4, 0), Kind: KindStatus, Content: "A -> B"}},
			}},
		},
	}}

	want := strings.Join([]string{
		"Alice:",
		"IR-2 - Crash on save:",
		"  - In Progress -> Done",
		"  - looks good",
		"",
		"IR-3 - Docs: typo",
		"",
		"Up next:",
		"  - IR-9 - Next thing",
		"",
		"Bob:",
		"IR-4 - Other: A -> B",
		"",
	}, "\n")

	assert.Equal(t, want, Render(d, RenderOptions{}))
}

func TestRender_Debug(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC)
	d := Digest{Groups: []AssigneeGroup{{
		Name: "Bob",
		Issues: []IssueUpdates{{
			Issue: Issue{Key: "IR-1", Summary: "Fix login"},
			Updates: []Update{
				{Timestamp: ts, Kind: KindStatus, Content: "To Do -> In Progress"},
				{Timestamp: ts.Add(time.Minute), Kind: KindComment, Author: "Alice", Content: "on it"},
			},
		}},
	}}}

	out := Render(d, RenderOptions{Debug: true, BrowseURL: "https://example.atlassian.net/"})

	assert.Contains(t, out, "https://example.atlassian.net/browse/IR-1 - Fix login:\n")
	assert.Contains(t, out, "  - [2024-01-01T10:15:00.000+0000] STATUS: To Do -> In Progress\n")
	assert.Contains(t, out, "  - [2024-01-01T10:16:00.000+0000] COMMENT by Alice: on it\n")
}

func TestRender_NonDebugHidesMetadata(t *testing.T) {
	d := Digest{Groups: []AssigneeGroup{{
		Name: "Bob",
		Issues: []IssueUpdates{{
			Issue:   Issue{Key: "IR-1", Summary: "s"},
			Updates: []Update{{Timestamp: at(10, 0, 0), Kind: KindComment, Author: "Alice", Content: "hello"}},
		}},
	}}}

	out := Render(d, RenderOptions{BrowseURL: "https://example.atlassian.net"})

	assert.Equal(t, "Bob:\nIR-1 - s: hello\n", out)
}
