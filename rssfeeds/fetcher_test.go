package rssfeeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"kindledigest/types"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
<title>Example Research</title>
<item>
  <guid>tag:example.com,2024:1</guid>
  <title>First Article</title>
  <link>https://example.com/1</link>
  <description>Short description one</description>
  <pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Second Article</title>
  <link>https://example.com/2</link>
  <content:encoded><![CDATA[<p>Full content two</p>]]></content:encoded>
</item>
</channel>
</rss>`

func newFeedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchAllSkipsFailingFeed(t *testing.T) {
	bad := newFeedServer(t, http.StatusInternalServerError, "boom")
	good := newFeedServer(t, http.StatusOK, feedXML)

	f := NewFetcher(zap.NewNop())
	entries := f.FetchAll(context.Background(), []string{bad.URL, good.URL})

	if len(entries) != 2 {
		t.Fatalf("got %d entries; want 2 from the healthy feed", len(entries))
	}
	for _, e := range entries {
		if e.Source != "Example Research" {
			t.Fatalf("entry %q has source %q; want %q", e.Title, e.Source, "Example Research")
		}
	}
}

func TestEntryMapping(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK, feedXML)

	fixedNow := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	f := NewFetcher(zap.NewNop())
	f.now = func() time.Time { return fixedNow }

	entries := f.FetchAll(context.Background(), []string{srv.URL})
	if len(entries) != 2 {
		t.Fatalf("got %d entries; want 2", len(entries))
	}

	first, second := entries[0], entries[1]

	if first.ID != "tag:example.com,2024:1" {
		t.Errorf("first.ID = %q; want the feed GUID", first.ID)
	}
	if first.RawContent != "Short description one" {
		t.Errorf("first.RawContent = %q; want the description", first.RawContent)
	}
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("first.PublishedAt = %v; want %v", first.PublishedAt, want)
	}

	if second.ID != types.GenerateID("https://example.com/2") {
		t.Errorf("second.ID = %q; want hash of the link", second.ID)
	}
	if second.RawContent != "<p>Full content two</p>" {
		t.Errorf("second.RawContent = %q; want the content field", second.RawContent)
	}
	if !second.PublishedAt.Equal(fixedNow) {
		t.Errorf("second.PublishedAt = %v; want the current time default %v", second.PublishedAt, fixedNow)
	}
}

func TestLoadSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.txt")
	body := "https://example.com/a.xml\n\n  https://example.com/b.xml  \n\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources error: %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://example.com/a.xml" || urls[1] != "https://example.com/b.xml" {
		t.Fatalf("LoadSources = %v; want the two trimmed URLs", urls)
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing feed list")
	}
}
