// Package render turns post markdown into sanitised HTML.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

type Options struct {
	// AllowRawHTML passes HTML embedded in the markdown through to the
	// sanitiser instead of dropping it.
	AllowRawHTML bool
}

// Markdown renders GitHub-flavoured markdown and sanitises the result with
// a user-generated-content policy.
type Markdown struct {
	md      goldmark.Markdown
	policy  *bluemonday.Policy
	options Options
}

func NewMarkdown(opts Options) *Markdown {
	rendererOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if opts.AllowRawHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")

	return &Markdown{md: goldmark.New(rendererOpts...), policy: policy, options: opts}
}

// Fingerprint identifies the rendering pipeline, so that output produced
// under different options can be told apart.
func (m *Markdown) Fingerprint() string {
	return fmt.Sprintf("goldmark+gfm;bluemonday-ugc;raw_html=%t", m.options.AllowRawHTML)
}

func (m *Markdown) Render(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(m.policy.SanitizeBytes(buf.Bytes())), nil
}
