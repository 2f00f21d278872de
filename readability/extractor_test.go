package readability_test

import (
	"testing"

	"github.com/startuppulse/harvest/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("")

	require.Error(t, err)
}

func TestExtractor_ExtractsTitleAndBody(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Acme Secures $30M Series B</title></head>
<body>
<article>
<p>Acme today announced a thirty million dollar Series B round led by Example Ventures.</p>
<p>The company plans to expand its engineering team and enter the European market.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Acme Secures $30M Series B", result.Title)
	assert.Contains(t, result.Text, "Series B round led by Example Ventures")
	assert.Contains(t, result.Text, "European market")
}

func TestExtractor_ReturnsPlainText(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<p>Funding details with a <a href="https://example.com">source link</a> and <strong>bold terms</strong>.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.NotContains(t, result.Text, "<")
	assert.Contains(t, result.Text, "source link")
	assert.Contains(t, result.Text, "bold terms")
}

func TestExtractor_RemovesNavigationAndFooter(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/news">News Nav Link</a></nav>
<article><p>This is the main press release content that should be preserved in the output.</p></article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "main press release content")
	assert.NotContains(t, result.Text, "Home Nav Link")
	assert.NotContains(t, result.Text, "Footer copyright text")
}
