package jira

import (
	"encoding/json"
	"strings"
)

const ComplexContent = "[Complex content]"

type adfNode struct {
	Type    string     `json:"type"`
	Text    *string    `json:"text"`
	Content *[]adfNode `json:"content"`
}

// FlattenADF concatenates the text nodes of every paragraph block in an
// Atlassian Document Format body. Other block types are skipped. A body that
// does not have the document -> paragraph -> text shape yields ComplexContent.
func FlattenADF(body json.RawMessage) string {
	var doc adfNode
	if err := json.Unmarshal(body, &doc); err != nil || doc.Content == nil {
		return ComplexContent
	}

	var b strings.Builder
	for _, block := range *doc.Content {
		if block.Type == "" {
			return ComplexContent
		}
		if block.Type != "paragraph" {
			continue
		}
		if block.Content == nil {
			return ComplexContent
		}
		for _, node := range *block.Content {
			if node.Type == "" {
				return ComplexContent
			}
			if node.Type != "text" {
				continue
			}
			if node.Text == nil {
				return ComplexContent
			}
			b.WriteString(*node.Text)
		}
	}
	return b.String()
}
