package dashboard

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DescriptionRenderer turns a stored panel description into HTML.
type DescriptionRenderer interface {
	RenderDescription(text string) (string, error)
}

// MarkdownDescriptions renders descriptions as Markdown and sanitizes the
// result with a user-generated-content policy. Stored metadata is untouched.
type MarkdownDescriptions struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewMarkdownDescriptions builds the default description renderer.
func NewMarkdownDescriptions() *MarkdownDescriptions {
	return &MarkdownDescriptions{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   bluemonday.UGCPolicy(),
	}
}

// RenderDescription satisfies DescriptionRenderer. Blank input yields "".
func (m *MarkdownDescriptions) RenderDescription(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(m.policy.SanitizeBytes(buf.Bytes()))), nil
}
