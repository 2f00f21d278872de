package harvest_test

import (
	"testing"

	"github.com/startuppulse/harvest"
	"github.com/stretchr/testify/assert"
)

func TestCleanHTML(t *testing.T) {
	t.Parallel()

	t.Run("strips tags and decodes entities", func(t *testing.T) {
		t.Parallel()

		in := `<div><b>Acme</b> raised &amp; closed a &quot;$5M&quot; round &#39;today&#39;&nbsp;&lt;fast&gt;</div>`
		assert.Equal(t, `Acme raised & closed a "$5M" round 'today' <fast>`, harvest.CleanHTML(in))
	})

	t.Run("removes script and style blocks with their content", func(t *testing.T) {
		t.Parallel()

		in := `before<SCRIPT type="text/javascript">var x = "<p>";</SCRIPT>middle<style>p { color: red }</style>after`
		assert.Equal(t, "beforemiddleafter", harvest.CleanHTML(in))
	})

	t.Run("removes comments", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "ab", harvest.CleanHTML("a<!-- hidden\nstuff -->b"))
	})

	t.Run("converts paragraphs and breaks before stripping", func(t *testing.T) {
		t.Parallel()

		in := `<p>first</p><p class="lead">second</p><p>line one<br/>line two</p>`
		assert.Equal(t, "first\n\nsecond\n\nline one\nline two", harvest.CleanHTML(in))
	})

	t.Run("collapses whitespace runs", func(t *testing.T) {
		t.Parallel()

		in := "a  \t b\n\n\n\n\nc"
		assert.Equal(t, "a b\n\nc", harvest.CleanHTML(in))
	})

	t.Run("unwraps CDATA payloads", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Show HN: Foo", harvest.CleanHTML("<![CDATA[Show HN: Foo]]>"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			`<p>Acme raised &amp; closed</p><br><b>a $5M round</b>`,
			"   plain   text   with \t tabs  ",
			`<div><script>ignored()</script>kept</div>`,
			"<![CDATA[wrapped   content]]>",
			"",
		}
		for _, in := range inputs {
			once := harvest.CleanHTML(in)
			assert.Equal(t, once, harvest.CleanHTML(once), "input %q", in)
		}
	})

	t.Run("decodes entity-encoded markup without stripping it", func(t *testing.T) {
		t.Parallel()

		// Entities are decoded after tag stripping, so markup hidden
		// behind entities comes out as literal tags. A second pass
		// strips them; idempotence covers real markup, not text that
		// decodes into markup.
		in := `&lt;b&gt;bold&lt;/b&gt;`
		once := harvest.CleanHTML(in)
		assert.Equal(t, "<b>bold</b>", once)
		assert.Equal(t, "bold", harvest.CleanHTML(once))
	})

	t.Run("never panics on malformed markup", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"<p>unclosed",
			"<script>never closed",
			"text ]]> stray markers <![CDATA[",
			"<<<>>><img src=",
		}
		for _, in := range inputs {
			assert.NotPanics(t, func() { harvest.CleanHTML(in) }, "input %q", in)
		}
	})
}

func TestStripCDATA(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Show HN: Foo", harvest.StripCDATA("<![CDATA[Show HN: Foo]]>"))
	assert.Equal(t, "no markers", harvest.StripCDATA("no markers"))
	assert.Equal(t, "partial", harvest.StripCDATA("[CDATA[partial]]>"))
	assert.Equal(t, "", harvest.StripCDATA(""))
}

func TestExtractImageSrc(t *testing.T) {
	t.Parallel()

	t.Run("finds img src", func(t *testing.T) {
		t.Parallel()

		html := `<p>intro</p><img class="wp-image" src="https://cdn.example.com/a.jpg" alt="">`
		assert.Equal(t, "https://cdn.example.com/a.jpg", harvest.ExtractImageSrc(html))
	})

	t.Run("falls back to bare src attribute", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://x.test/b.png", harvest.ExtractImageSrc(`<media src="https://x.test/b.png">`))
	})

	t.Run("empty when absent", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, harvest.ExtractImageSrc("<p>no images here</p>"))
	})
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", harvest.CollapseWhitespace("  a \n b\t\tc "))
	assert.Equal(t, "", harvest.CollapseWhitespace("   "))
}
