package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kindledigest/config"
	"kindledigest/deduplication"
	"kindledigest/digest"
	"kindledigest/mailer"
	"kindledigest/rssfeeds"
	"kindledigest/sanitizer"
	"kindledigest/scraper"
	"kindledigest/summarizer"
	"kindledigest/types"
)

const (
	summaryModeArticle = "article"
	summaryModeDigest  = "digest"
)

var (
	feedsPath    string
	statePath    string
	selectorPath string
	outputDir    string
	format       string
	summaryMode  string
	useWindow    bool
	noEmail      bool
)

var rootCmd = &cobra.Command{
	Use:          "kindledigest",
	Short:        "Compile today's AI/ML research feeds into a digest and send it to a Kindle",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&feedsPath, "feeds", config.DefaultFeedsPath, "path to the feed URL list, one per line")
	rootCmd.Flags().StringVar(&statePath, "state", config.DefaultStatePath, "path to the sent-items store")
	rootCmd.Flags().StringVar(&selectorPath, "selectors", config.DefaultSelectorsPath, "optional scraper selector overrides")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory for the generated digest artifact")
	rootCmd.Flags().StringVar(&format, "format", string(digest.FormatAuto), "digest format: auto, epub or html")
	rootCmd.Flags().StringVar(&summaryMode, "summary-mode", summaryModeArticle, "summarize each article or the whole digest: article or digest")
	rootCmd.Flags().BoolVar(&useWindow, "window", false, "select by fixed UTC time window instead of the sent-items store")
	rootCmd.Flags().BoolVar(&noEmail, "no-email", false, "skip delivery and keep the artifact on disk")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if summaryMode != summaryModeArticle && summaryMode != summaryModeDigest {
		return fmt.Errorf("unknown summary mode %q", summaryMode)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sources, err := rssfeeds.LoadSources(feedsPath)
	if err != nil {
		return err
	}

	selectors, err := config.LoadSelectors(selectorPath)
	if err != nil {
		return err
	}
	var classHints, idHints []string
	if selectors != nil {
		classHints, idHints = selectors.ClassHints, selectors.IDHints
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now()

	entries := rssfeeds.NewFetcher(logger).FetchAll(ctx, sources)
	logger.Info("fetched feeds", zap.Int("sources", len(sources)), zap.Int("entries", len(entries)))

	var store *deduplication.SentStore
	if useWindow {
		entries = deduplication.FilterWindow(entries, now)
	} else {
		store, err = deduplication.LoadSentStore(statePath)
		if err != nil {
			return err
		}
		entries = deduplication.FilterSent(entries, store, now)
	}
	logger.Info("selected entries", zap.Int("count", len(entries)))

	if len(entries) == 0 {
		fmt.Println("No new articles")
		return nil
	}

	scr := scraper.New(logger, classHints, idHints)
	san := sanitizer.New()
	summ := summarizer.New(cfg.CohereAPIKey, cfg.CohereModel, cfg.CohereBaseURL, logger)

	for _, e := range entries {
		e.ScrapedContent = scr.Scrape(ctx, e.Link)
		e.SanitizedContent = san.Sanitize(e.Content())
		if summaryMode == summaryModeArticle {
			e.Summary = summ.SummarizeArticle(ctx, e)
		}
	}

	d := &types.Digest{Title: "AI Research Digest", Date: now, Entries: entries}
	if summaryMode == summaryModeDigest {
		d.Overview = summ.SummarizeDigest(ctx, entries)
	}

	path, err := digest.Build(d, outputDir, digest.Format(format), logger)
	if err != nil {
		return err
	}
	logger.Info("digest written", zap.String("path", path))

	if !noEmail {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		subject := fmt.Sprintf("%s - %s", d.Title, now.Format("2006-01-02"))
		m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.KindleEmail)
		if err := m.Send(subject, path, data); err != nil {
			return err
		}
	}

	// The store is persisted only after the digest made it out, so a failed
	// delivery never marks its entries as sent.
	if store != nil {
		if err := store.Save(); err != nil {
			return err
		}
	}

	if noEmail {
		fmt.Printf("Digest with %d articles written to %s\n", len(entries), path)
	} else {
		fmt.Printf("Sent %d articles to %s\n", len(entries), cfg.KindleEmail)
	}
	return nil
}
