package sanitizer

import "github.com/microcosm-cc/bluemonday"

// Tags and attributes Kindle-class e-readers render reliably.
var (
	allowedTags = []string{
		"p", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "a", "strong", "em", "b", "i",
		"blockquote", "pre", "code", "br", "hr", "div", "span",
	}
	allowedAttrs = []string{"href", "src", "alt", "title", "id"}

	// Dropped together with their contents, not just unwrapped.
	discardedTags = []string{"script", "style", "svg", "button", "form", "iframe", "noscript"}
)

// Sanitizer restricts arbitrary HTML to the e-reader allow-list. Disallowed
// tags outside the discard set are unwrapped: the tag goes away, its children
// stay in place. Output is stable under re-sanitization.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedTags...)
	p.AllowAttrs(allowedAttrs...).Globally()
	p.SkipElementsContent(discardedTags...)
	return &Sanitizer{policy: p}
}

func (s *Sanitizer) Sanitize(input string) string {
	if input == "" {
		return ""
	}
	return s.policy.Sanitize(input)
}
