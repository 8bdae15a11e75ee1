package digest

import (
	"strings"
	"testing"
	"time"

	"kindledigest/types"
)

func sampleDigest() *types.Digest {
	return &types.Digest{
		Title: "AI Research Digest",
		Date:  time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		Entries: []*types.Entry{
			{
				Title:            "First Article",
				Link:             "https://example.com/1",
				Source:           "Example Research",
				Summary:          "Summary one.",
				SanitizedContent: "<p>Body one</p>",
			},
			{
				Title:            "Second Article",
				Link:             "https://example.com/2",
				Source:           "Example Research",
				Summary:          "Summary two.",
				SanitizedContent: "<p>Body two</p>",
			},
		},
	}
}

func TestBuildHTMLStructure(t *testing.T) {
	out := string(BuildHTML(sampleDigest()))

	if got := strings.Count(out, `<a href="#article`); got != 2 {
		t.Fatalf("table of contents has %d items; want 2", got)
	}
	if got := strings.Count(out, `id="article`); got != 2 {
		t.Fatalf("document has %d anchored sections; want 2", got)
	}
	for _, anchor := range []string{`href="#article1"`, `href="#article2"`, `id="article1"`, `id="article2"`} {
		if !strings.Contains(out, anchor) {
			t.Fatalf("missing anchor %q", anchor)
		}
	}

	// Sections follow input order.
	first := strings.Index(out, `id="article1"`)
	second := strings.Index(out, `id="article2"`)
	if first > second {
		t.Fatal("sections are out of input order")
	}

	for _, want := range []string{"First Article", "Second Article", "Summary one.", "<p>Body one</p>", "View online", "Example Research"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output is missing %q", want)
		}
	}
}

func TestBuildHTMLEscapesMetadata(t *testing.T) {
	d := sampleDigest()
	d.Entries[0].Title = `Attention <is> "All"`
	out := string(BuildHTML(d))

	if strings.Contains(out, "<is>") {
		t.Fatal("entry title was not escaped")
	}
	if !strings.Contains(out, "Attention &lt;is&gt;") {
		t.Fatal("escaped title missing from output")
	}
}

func TestBuildHTMLOverview(t *testing.T) {
	d := sampleDigest()
	d.Overview = "Today everything is about attention."
	out := string(BuildHTML(d))

	if !strings.Contains(out, "Today everything is about attention.") {
		t.Fatal("digest-level overview missing from output")
	}

	d.Overview = ""
	out = string(BuildHTML(d))
	if strings.Contains(out, "Today's Overview") {
		t.Fatal("overview block rendered without an overview")
	}
}
