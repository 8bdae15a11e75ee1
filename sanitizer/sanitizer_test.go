package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDiscardsUnsafeContent(t *testing.T) {
	s := New()

	cases := []struct {
		name   string
		input  string
		leaked string
	}{
		{"script", `<p>before</p><script>alert("PAYLOAD")</script><p>after</p>`, "PAYLOAD"},
		{"style", `<style>body { color: PAYLOAD; }</style><p>ok</p>`, "PAYLOAD"},
		{"form", `<form><input value="x"><label>PAYLOAD</label></form><p>ok</p>`, "PAYLOAD"},
		{"iframe", `<iframe src="https://evil.example">PAYLOAD</iframe><p>ok</p>`, "PAYLOAD"},
		{"svg", `<svg><text>PAYLOAD</text></svg><p>ok</p>`, "PAYLOAD"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := s.Sanitize(c.input)
			assert.NotContains(t, out, c.leaked)
			assert.Contains(t, out, "<p>")
		})
	}
}

func TestSanitizeUnwrapsUnknownTags(t *testing.T) {
	s := New()

	out := s.Sanitize(`<section><figure><p>kept text</p></figure></section>`)
	assert.Equal(t, `<p>kept text</p>`, out)
}

func TestSanitizeStripsDisallowedAttributes(t *testing.T) {
	s := New()

	out := s.Sanitize(`<p class="fancy" id="intro" data-track="yes">hello</p>`)
	assert.Equal(t, `<p id="intro">hello</p>`, out)

	out = s.Sanitize(`<a href="https://example.com/a" onclick="steal()">link</a>`)
	assert.Equal(t, `<a href="https://example.com/a">link</a>`, out)
}

func TestSanitizeIdempotent(t *testing.T) {
	s := New()

	input := `<article><h2 style="color:red">Title</h2><script>nope()</script>` +
		`<p class="x">body <unknown>wrapped</unknown></p><hr><pre>code</pre></article>`

	once := s.Sanitize(input)
	twice := s.Sanitize(once)
	assert.Equal(t, once, twice, "sanitizing sanitized output must be a no-op")
}

func TestSanitizeEmptyInput(t *testing.T) {
	s := New()
	assert.Equal(t, "", s.Sanitize(""))
}
