// internal/notion/properties_test.go
package notion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Text Extraction Tests
// ==========================

func TestProperty_Text(t *testing.T) {
	number := 5678.0

	tests := []struct {
		name     string
		prop     Property
		expected string
	}{
		{
			name: "typed title",
			prop: Property{
				Type:  "title",
				Title: []RichText{{PlainText: "260226-153045-김민수-5678"}},
			},
			expected: "260226-153045-김민수-5678",
		},
		{
			name: "typed rich text",
			prop: Property{
				Type:     "rich_text",
				RichText: []RichText{{PlainText: "010-1234-5678"}},
			},
			expected: "010-1234-5678",
		},
		{
			name: "typed number",
			prop: Property{
				Type:   "number",
				Number: &number,
			},
			expected: "5678",
		},
		{
			name: "untyped falls back to title arm",
			prop: Property{
				Title: []RichText{{Text: &TextContent{Content: "fallback title"}}},
			},
			expected: "fallback title",
		},
		{
			name: "untyped falls back to rich text arm",
			prop: Property{
				RichText: []RichText{{PlainText: "fallback text"}},
			},
			expected: "fallback text",
		},
		{
			name: "multiple fragments joined",
			prop: Property{
				Type: "rich_text",
				RichText: []RichText{
					{PlainText: "서울특별시 "},
					{PlainText: "강남구"},
				},
			},
			expected: "서울특별시 강남구",
		},
		{
			name: "fragment without plain text uses content",
			prop: Property{
				Type:     "rich_text",
				RichText: []RichText{{Text: &TextContent{Content: "no plain text"}}},
			},
			expected: "no plain text",
		},
		{
			name:     "empty property",
			prop:     Property{},
			expected: "",
		},
		{
			name: "whitespace trimmed",
			prop: Property{
				Type:     "rich_text",
				RichText: []RichText{{PlainText: "  padded  "}},
			},
			expected: "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.prop.Text())
		})
	}
}

// ==========================
// Option Extraction Tests
// ==========================

func TestProperty_OptionName(t *testing.T) {
	tests := []struct {
		name     string
		prop     Property
		expected string
	}{
		{
			name:     "status column",
			prop:     Property{Type: "status", Status: &Option{Name: "배송중"}},
			expected: "배송중",
		},
		{
			name:     "select column",
			prop:     Property{Type: "select", Select: &Option{Name: "처리완료"}},
			expected: "처리완료",
		},
		{
			name:     "status preferred over select",
			prop:     Property{Status: &Option{Name: "접수"}, Select: &Option{Name: "other"}},
			expected: "접수",
		},
		{
			name:     "empty status falls through to select",
			prop:     Property{Status: &Option{}, Select: &Option{Name: "selected"}},
			expected: "selected",
		},
		{
			name:     "no option set",
			prop:     Property{Type: "rich_text"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.prop.OptionName())
		})
	}
}

// ==========================
// Serialization Tests
// ==========================

func TestNewTitle_WireFormat(t *testing.T) {
	data, err := json.Marshal(NewTitle("260226-153045-김민수-5678"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":[{"text":{"content":"260226-153045-김민수-5678"}}]}`, string(data))
}

func TestNewStatus_WireFormat(t *testing.T) {
	data, err := json.Marshal(NewStatus("접수"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":{"name":"접수"}}`, string(data))
}
