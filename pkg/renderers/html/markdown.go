package html

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown renders TextBlock content. Card text is untrusted, so the
// converted HTML always passes through the sanitiser.
type markdown struct {
	converter goldmark.Markdown
	policy    *bluemonday.Policy
}

func newMarkdown(policy *bluemonday.Policy) *markdown {
	if policy == nil {
		policy = bluemonday.UGCPolicy()
		policy.RequireNoReferrerOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
	}
	return &markdown{
		converter: goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify)),
		policy:    policy,
	}
}

func (m *markdown) render(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.converter.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(m.policy.Sanitize(buf.String())), nil
}
