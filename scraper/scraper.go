package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
)

const (
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	requestTimeout = 15 * time.Second

	// Extractions at or below this length are treated as failures; the
	// caller substitutes the feed-native content instead.
	minContentLen = 200
)

// Elements stripped from the document before any extraction attempt.
const noiseSelector = "script, style, nav, header, footer, aside, iframe, noscript"

// Block-level descendants collected from the matched container.
const blockSelector = "p, h1, h2, h3, h4, ul, ol, blockquote, pre"

// Built-in container hints, overridable through the selector config file.
var (
	DefaultClassHints = []string{"post-content", "article-content", "entry-content", "content", "post", "article-body"}
	DefaultIDHints    = []string{"content", "main-content", "article", "post"}
)

// candidate pairs a name with a lookup that returns the main content
// container, or nil when the page does not match. Candidates are tried in
// order and the first structural match wins.
type candidate struct {
	name string
	find func(doc *goquery.Document) *goquery.Selection
}

// Scraper fetches article pages and heuristically extracts their main
// content block.
type Scraper struct {
	client     *http.Client
	logger     *zap.Logger
	candidates []candidate
}

func New(logger *zap.Logger, classHints, idHints []string) *Scraper {
	if len(classHints) == 0 {
		classHints = DefaultClassHints
	}
	if len(idHints) == 0 {
		idHints = DefaultIDHints
	}
	return &Scraper{
		client: &http.Client{Timeout: requestTimeout},
		logger: logger,
		candidates: []candidate{
			{name: "article", find: tagCandidate("article")},
			{name: "main", find: tagCandidate("main")},
			{name: "div-class", find: divCandidate("class", classHints)},
			{name: "div-id", find: divCandidate("id", idHints)},
		},
	}
}

// Scrape fetches pageURL and extracts the main content HTML. It never
// returns an error: any network, parse, or extraction failure yields an
// empty string plus a logged diagnostic, and the caller falls back to the
// feed-native content.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) string {
	body, err := s.fetch(ctx, pageURL)
	if err != nil {
		s.logger.Warn("scrape failed", zap.String("url", pageURL), zap.Error(err))
		return ""
	}

	if content := s.extract(bytes.NewReader(body)); content != "" {
		return content
	}

	// The structural candidates came up empty; let readability take a
	// swing at the whole document before giving up.
	parsed, _ := url.Parse(pageURL)
	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		s.logger.Warn("readability extraction failed", zap.String("url", pageURL), zap.Error(err))
		return ""
	}
	if len(article.Content) <= minContentLen {
		s.logger.Debug("extracted content too short", zap.String("url", pageURL), zap.Int("length", len(article.Content)))
		return ""
	}
	return article.Content
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// extract runs the candidate chain over the fetched document. The first
// matching container is final: a match whose collected blocks fall at or
// below the minimum length is an extraction failure, not a reason to probe
// the remaining candidates.
func (s *Scraper) extract(r io.Reader) string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		s.logger.Warn("failed to parse page", zap.Error(err))
		return ""
	}
	doc.Find(noiseSelector).Remove()

	for _, c := range s.candidates {
		container := c.find(doc)
		if container == nil || container.Length() == 0 {
			continue
		}
		content := collectBlocks(container)
		if len(content) <= minContentLen {
			s.logger.Debug("matched container too short", zap.String("candidate", c.name), zap.Int("length", len(content)))
			return ""
		}
		s.logger.Debug("content extracted", zap.String("candidate", c.name), zap.Int("length", len(content)))
		return content
	}
	return ""
}

// collectBlocks serializes the container's block-level descendants in
// document order, newline-separated.
func collectBlocks(container *goquery.Selection) string {
	var blocks []string
	container.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		markup, err := goquery.OuterHtml(sel)
		if err != nil {
			return
		}
		blocks = append(blocks, strings.TrimSpace(markup))
	})
	return strings.Join(blocks, "\n")
}

func tagCandidate(tag string) func(*goquery.Document) *goquery.Selection {
	return func(doc *goquery.Document) *goquery.Selection {
		if sel := doc.Find(tag).First(); sel.Length() > 0 {
			return sel
		}
		return nil
	}
}

// divCandidate matches the first div whose attribute value contains any of
// the hints, case-insensitive containment rather than exact match.
func divCandidate(attr string, hints []string) func(*goquery.Document) *goquery.Selection {
	return func(doc *goquery.Document) *goquery.Selection {
		var match *goquery.Selection
		doc.Find("div").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			val := strings.ToLower(sel.AttrOr(attr, ""))
			if val == "" {
				return true
			}
			for _, hint := range hints {
				if strings.Contains(val, hint) {
					match = sel
					return false
				}
			}
			return true
		})
		return match
	}
}
