package digest

import (
	"fmt"
	"html"
	"strings"

	"kindledigest/types"
)

const htmlStyle = `body { font-family: serif; line-height: 1.6; margin: 20px; }
.summary { background: #f5f5f5; padding: 10px; margin: 10px 0; border-left: 3px solid #333; }
.full-text { margin-top: 15px; }
a { color: #0066cc; }`

// BuildHTML renders the digest as a single self-contained document: embedded
// style block, a table of contents linking to per-article anchors, then one
// section per article. Anchors are sequential (article1, article2, ...),
// unique within the document and stable only for this document.
func BuildHTML(d *types.Digest) []byte {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<html><head><meta charset="utf-8"><title>%s - %s</title>`,
		html.EscapeString(d.Title), d.Date.Format("2006-01-02")))
	sb.WriteString("\n<style>\n" + htmlStyle + "\n</style>\n</head><body>\n")
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(d.Title)))
	sb.WriteString(fmt.Sprintf("<p><em>%s</em></p>\n", d.Date.Format("January 2, 2006")))

	if d.Overview != "" {
		sb.WriteString(fmt.Sprintf(`<div class="summary"><p><strong>Today's Overview:</strong> %s</p></div>`+"\n",
			html.EscapeString(d.Overview)))
	}

	sb.WriteString("<h2>Table of Contents</h2>\n<ol>\n")
	for i, e := range d.Entries {
		sb.WriteString(fmt.Sprintf(`<li><a href="#article%d">%s</a></li>`+"\n", i+1, html.EscapeString(e.Title)))
	}
	sb.WriteString("</ol>\n")

	for i, e := range d.Entries {
		sb.WriteString("<hr>\n")
		sb.WriteString(fmt.Sprintf(`<div class="article" id="article%d">`+"\n", i+1))
		sb.WriteString(fmt.Sprintf("<h2>%s</h2>\n", html.EscapeString(e.Title)))
		sb.WriteString(fmt.Sprintf("<p><strong>Source:</strong> %s</p>\n", html.EscapeString(e.Source)))
		if e.Summary != "" {
			sb.WriteString(fmt.Sprintf(`<div class="summary"><p><strong>AI Summary:</strong> %s</p></div>`+"\n",
				html.EscapeString(e.Summary)))
		}
		sb.WriteString(fmt.Sprintf(`<p><a href="%s">View online</a></p>`+"\n", html.EscapeString(e.Link)))
		sb.WriteString(`<div class="full-text">` + "\n<h3>Full Article</h3>\n")
		sb.WriteString(e.SanitizedContent)
		sb.WriteString("\n</div>\n</div>\n")
	}

	sb.WriteString("</body></html>\n")
	return []byte(sb.String())
}
