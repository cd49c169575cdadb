package report

import (
	"fmt"
	"strings"
)

const NoUpdatesMessage = "No updates found in the specified time window."

// JiraTimeLayout is the timestamp layout used by the Jira REST API.
const JiraTimeLayout = "2006-01-02T15:04:05.000-0700"

type RenderOptions struct {
	Debug bool
	// BrowseURL is the tracker base URL; debug output links issues as BrowseURL/browse/KEY.
	BrowseURL string
}

// Render produces the plain-text digest.
func Render(d Digest, opts RenderOptions) string {
	if len(d.Groups) == 0 {
		return NoUpdatesMessage + "\n"
	}

	var b strings.Builder
	for gi, group := range d.Groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", group.Name)

		for ii, iu := range group.Issues {
			if ii > 0 {
				b.WriteString("\n")
			}
			ref := issueRef(iu.Issue.Key, opts)
			if len(iu.Updates) == 1 {
				fmt.Fprintf(&b, "%s - %s: %s\n", ref, iu.Issue.Summary, updateLine(iu.Updates[0], opts.Debug))
				continue
			}
			fmt.Fprintf(&b, "%s - %s:\n", ref, iu.Issue.Summary)
			for _, u := range iu.Updates {
				fmt.Fprintf(&b, "  - %s\n", updateLine(u, opts.Debug))
			}
		}

		if len(group.Ready) > 0 {
			b.WriteString("\nUp next:\n")
			for _, r := range group.Ready {
				fmt.Fprintf(&b, "  - %s - %s\n", issueRef(r.Key, opts), r.Summary)
			}
		}
	}

	return b.String()
}

func issueRef(key string, opts RenderOptions) string {
	if !opts.Debug || opts.BrowseURL == "" {
		return key
	}
	return strings.TrimRight(opts.BrowseURL, "/") + "/browse/" + key
}

func updateLine(u Update, debug bool) string {
	if !debug {
		return u.Content
	}
	ts := u.Timestamp.Format(JiraTimeLayout)
	if u.Kind == KindComment {
		return fmt.Sprintf("[%s] %s by %s: %s", ts, u.Kind, u.Author, u.Content)
	}
	return fmt.Sprintf("[%s] %s: %s", ts, u.Kind, u.Content)
}
