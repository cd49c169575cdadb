package jira

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenADF(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "paragraph with two text nodes",
			body: `{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"foo"},{"type":"text","text":"bar"}]}]}`,
			want: "foobar",
		},
		{
			name: "several paragraphs are concatenated",
			body: `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"a"}]},{"type":"paragraph","content":[{"type":"text","text":"b"}]}]}`,
			want: "ab",
		},
		{
			name: "non paragraph blocks and non text nodes are skipped",
			body: `{"type":"doc","content":[{"type":"codeBlock","content":[{"type":"text","text":"x := 1"}]},{"type":"paragraph","content":[{"type":"mention","attrs":{"text":"@ann"}},{"type":"text","text":"hi"}]}]}`,
			want: "hi",
		},
		{
			name: "empty document",
			body: `{"type":"doc","content":[]}`,
			want: "",
		},
		{
			name: "plain string body",
			body: `"just text"`,
			want: ComplexContent,
		},
		{
			name: "missing content",
			body: `{"type":"doc"}`,
			want: ComplexContent,
		},
		{
			name: "null body",
			body: `null`,
			want: ComplexContent,
		},
		{
			name: "paragraph without content",
			body: `{"type":"doc","content":[{"type":"paragraph"}]}`,
			want: ComplexContent,
		},
		{
			name: "text node without text",
			body: `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text"}]}]}`,
			want: ComplexContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenADF(json.RawMessage(tt.body)))
		})
	}
}

func TestFlattenADF_EmptyRaw(t *testing.T) {
	assert.Equal(t, ComplexContent, FlattenADF(nil))
}

func TestFlattenADF_UntypedNodes(t *testing.T) {
	assert.Equal(t, ComplexContent, FlattenADF(json.RawMessage(`{"content":[{"content":[{"text":"x"}]}]}`)))
	assert.Equal(t, ComplexContent, FlattenADF(json.RawMessage(`{"type":"doc","content":[{"type":"paragraph","content":[{"text":"x"}]}]}`)))
}
