package jira

import "encoding/json"

type SearchParams struct {
	JQL        string
	Fields     []string
	Expand     []string
	MaxResults int
}

type SearchResponse struct {
	Total  int     `json:"total"`
	Issues []Issue `json:"issues"`
}

type Issue struct {
	Key       string     `json:"key"`
	Fields    Fields     `json:"fields"`
	Changelog *Changelog `json:"changelog,omitempty"`
}

type Fields struct {
	Summary  string `json:"summary"`
	Assignee *User  `json:"assignee"`
}

type User struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

type Changelog struct {
	Histories []History `json:"histories"`
}

type History struct {
	Created string        `json:"created"`
	Items   []HistoryItem `json:"items"`
}

type HistoryItem struct {
	Field      string `json:"field"`
	FromString string `json:"fromString"`
	ToString   string `json:"toString"`
}

type CommentsResponse struct {
	Total    int       `json:"total"`
	Comments []Comment `json:"comments"`
}

type Comment struct {
	ID      string          `json:"id"`
	Created string          `json:"created"`
	Author  *User           `json:"author"`
	Body    json.RawMessage `json:"body"`
}
