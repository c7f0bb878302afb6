package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	m := NewMarkdown(Options{})

	out, err := m.Render("## Setting Up\n\nRun `node server.js`.\n\n```bash\nnvm use --lts\n```\n")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<h2 id="setting-up">Setting Up</h2>`)
	assert.Contains(t, html, "<code>node server.js</code>")
	assert.Contains(t, html, `<code class="language-bash">`)
}

func TestRenderTables(t *testing.T) {
	m := NewMarkdown(Options{})

	out, err := m.Render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<table>")
	assert.Contains(t, string(out), "<td>1</td>")
}

func TestRawHTML(t *testing.T) {
	src := "hello <em>there</em>\n\n<script>alert(1)</script>\n"

	out, err := NewMarkdown(Options{}).Render(src)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<em>")
	assert.NotContains(t, string(out), "<script>")

	out, err = NewMarkdown(Options{AllowRawHTML: true}).Render(src)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<em>there</em>")
	assert.NotContains(t, string(out), "<script>")
}

func TestFingerprint(t *testing.T) {
	plain := NewMarkdown(Options{}).Fingerprint()
	assert.Equal(t, plain, NewMarkdown(Options{}).Fingerprint())
	assert.NotEqual(t, plain, NewMarkdown(Options{AllowRawHTML: true}).Fingerprint())
}
