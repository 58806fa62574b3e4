package notion

import (
	"strconv"
	"strings"
)

// Property is the tagged union a page property deserializes to. Exactly one
// arm is populated, identified by Type when the API supplies it.
type Property struct {
	Type     string     `json:"type,omitempty"`
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Number   *float64   `json:"number,omitempty"`
	Select   *Option    `json:"select,omitempty"`
	Status   *Option    `json:"status,omitempty"`
}

type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

type Option struct {
	Name string `json:"name"`
}

// NewTitle builds a writable title property.
func NewTitle(content string) Property {
	return Property{
		Title: []RichText{{Text: &TextContent{Content: content}}},
	}
}

// NewRichText builds a writable rich_text property.
func NewRichText(content string) Property {
	return Property{
		RichText: []RichText{{Text: &TextContent{Content: content}}},
	}
}

// NewStatus builds a writable status property.
func NewStatus(name string) Property {
	return Property{
		Status: &Option{Name: name},
	}
}

// Text reads the property's textual value regardless of which text-like arm
// it resolved to. Databases occasionally migrate a column between title,
// rich_text and number, so readers must not assume one shape.
func (p Property) Text() string {
	switch p.Type {
	case "title":
		return joinRichText(p.Title)
	case "rich_text":
		return joinRichText(p.RichText)
	case "number":
		return numberString(p.Number)
	}

	if s := joinRichText(p.Title); s != "" {
		return s
	}
	if s := joinRichText(p.RichText); s != "" {
		return s
	}
	return numberString(p.Number)
}

// OptionName reads the selected option regardless of whether the column is a
// status or a select property.
func (p Property) OptionName() string {
	if p.Status != nil && p.Status.Name != "" {
		return p.Status.Name
	}
	if p.Select != nil {
		return p.Select.Name
	}
	return ""
}

func joinRichText(parts []RichText) string {
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	for _, rt := range parts {
		if rt.PlainText != "" {
			b.WriteString(rt.PlainText)
		} else if rt.Text != nil {
			b.WriteString(rt.Text.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

func numberString(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}
