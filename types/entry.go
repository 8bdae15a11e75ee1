package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Entry represents a single article selected from an RSS/Atom feed, carrying
// the feed-native text plus whatever enrichment later pipeline stages add.
type Entry struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Link             string    `json:"link"`
	PublishedAt      time.Time `json:"published_at"`
	RawContent       string    `json:"raw_content"`
	ScrapedContent   string    `json:"scraped_content,omitempty"`
	SanitizedContent string    `json:"sanitized_content,omitempty"`
	Summary          string    `json:"summary,omitempty"`
	Source           string    `json:"source"`
}

// Content returns the best available body for the entry: the scraped full
// text when extraction produced one, otherwise the feed-native text.
func (e *Entry) Content() string {
	if e.ScrapedContent != "" {
		return e.ScrapedContent
	}
	return e.RawContent
}

// Digest is the compiled output of one run.
type Digest struct {
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Overview string    `json:"overview,omitempty"`
	Entries  []*Entry  `json:"entries"`
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
