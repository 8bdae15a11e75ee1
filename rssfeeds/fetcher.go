package rssfeeds

import (
	"context"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"kindledigest/types"
)

// Fetcher retrieves and parses RSS/Atom feeds into entries.
type Fetcher struct {
	parser *gofeed.Parser
	logger *zap.Logger
	now    func() time.Time
}

func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{
		parser: gofeed.NewParser(),
		logger: logger,
		now:    time.Now,
	}
}

// FetchAll retrieves every feed in list order and returns the combined
// entries, feed-internal order preserved. A feed that fails to fetch or
// parse is skipped with a diagnostic; the remaining feeds still contribute.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []*types.Entry {
	var entries []*types.Entry
	for _, u := range urls {
		feed, err := f.parser.ParseURLWithContext(u, ctx)
		if err != nil {
			f.logger.Warn("skipping feed", zap.String("url", u), zap.Error(err))
			continue
		}
		for _, item := range feed.Items {
			entries = append(entries, f.entryFromItem(feed, item))
		}
		f.logger.Info("fetched feed", zap.String("url", u), zap.Int("items", len(feed.Items)))
	}
	return entries
}

func (f *Fetcher) entryFromItem(feed *gofeed.Feed, item *gofeed.Item) *types.Entry {
	// Use GUID if available, otherwise generate from URL
	id := item.GUID
	if id == "" && item.Link != "" {
		id = types.GenerateID(item.Link)
	}

	// Entries without any publish timestamp default to the current time,
	// so they always pass a relative cutoff regardless of true age.
	publishedAt := f.now()
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		publishedAt = *item.UpdatedParsed
	}

	// Feed-native body: summary/description first, full content second.
	raw := item.Description
	if raw == "" {
		raw = item.Content
	}

	return &types.Entry{
		ID:          id,
		Title:       item.Title,
		Link:        item.Link,
		PublishedAt: publishedAt,
		RawContent:  raw,
		Source:      feed.Title,
	}
}
