package digest

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	epub "github.com/bmaupin/go-epub"

	"kindledigest/types"
)

// cover image picked up by convention when present next to the output.
var coverNames = []string{"cover.jpg", "cover.jpeg"}

// BuildEPUB assembles the digest as an EPUB package and writes it to path:
// an introduction chapter carrying the run overview and article count, then
// one navigation-registered chapter per article in selection order. A cover
// image is attached when one of the conventional files exists in dir.
func BuildEPUB(d *types.Digest, dir, path string) error {
	book := epub.NewEpub(fmt.Sprintf("%s - %s", d.Title, d.Date.Format("2006-01-02")))
	book.SetAuthor("kindledigest")

	if cover := findCover(dir); cover != "" {
		img, err := book.AddImage(cover, filepath.Base(cover))
		if err == nil {
			book.SetCover(img, "")
		}
	}

	if _, err := book.AddSection(introBody(d), "Introduction", "intro.xhtml", ""); err != nil {
		return fmt.Errorf("digest: failed to add introduction: %w", err)
	}

	for i, e := range d.Entries {
		name := fmt.Sprintf("article%d.xhtml", i+1)
		if _, err := book.AddSection(chapterBody(e), e.Title, name, ""); err != nil {
			return fmt.Errorf("digest: failed to add chapter %q: %w", e.Title, err)
		}
	}

	if err := book.Write(path); err != nil {
		return fmt.Errorf("digest: failed to write epub: %w", err)
	}
	return nil
}

func findCover(dir string) string {
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func introBody(d *types.Digest) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(d.Title)))
	sb.WriteString(fmt.Sprintf("<p><em>%s</em></p>", d.Date.Format("January 2, 2006")))
	sb.WriteString(fmt.Sprintf("<p>%d articles in this edition.</p>", len(d.Entries)))
	if d.Overview != "" {
		sb.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(d.Overview)))
	}
	return sb.String()
}

func chapterBody(e *types.Entry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(e.Title)))
	sb.WriteString(fmt.Sprintf("<p><strong>Source:</strong> %s</p>", html.EscapeString(e.Source)))
	if e.Summary != "" {
		sb.WriteString(fmt.Sprintf("<p><strong>AI Summary:</strong> %s</p>", html.EscapeString(e.Summary)))
	}
	sb.WriteString(fmt.Sprintf(`<p><a href="%s">View online</a></p>`, html.EscapeString(e.Link)))
	sb.WriteString(e.SanitizedContent)
	return sb.String()
}
