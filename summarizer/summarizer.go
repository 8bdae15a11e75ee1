package summarizer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"go.uber.org/zap"

	"kindledigest/types"
)

// Unavailable is substituted whenever the remote call fails. Summarization
// never blocks the pipeline; a failed call degrades the digest, not the run.
const Unavailable = "Summary unavailable"

const (
	articleContentLimit = 3000
	batchContentLimit   = 2000
	diagnosticLimit     = 200

	requestTimeout = 60 * time.Second
)

// Summarizer produces natural-language summaries through the Cohere chat
// endpoint. One attempt per call; no retry, no backoff.
type Summarizer struct {
	client *cohereclient.Client
	model  string
	logger *zap.Logger
}

func New(apiKey, model, baseURL string, logger *zap.Logger) *Summarizer {
	// Force HTTP/1.1; the endpoint intermittently resets HTTP/2 streams.
	httpClient := &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}

	var client *cohereclient.Client
	if baseURL != "" {
		client = cohereclient.NewClient(
			cohereclient.WithToken(apiKey),
			cohereclient.WithHTTPClient(httpClient),
			cohereclient.WithBaseURL(baseURL),
		)
	} else {
		client = cohereclient.NewClient(
			cohereclient.WithToken(apiKey),
			cohereclient.WithHTTPClient(httpClient),
		)
	}

	return &Summarizer{
		client: client,
		model:  model,
		logger: logger,
	}
}

// SummarizeArticle produces a short editorial summary for one entry from its
// title and the first 3000 characters of its content.
func (s *Summarizer) SummarizeArticle(ctx context.Context, entry *types.Entry) string {
	prompt := articlePrompt(entry.Title, truncate(entry.Content(), articleContentLimit))
	text, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("article summary failed",
			zap.String("title", entry.Title),
			zap.String("error", truncate(err.Error(), diagnosticLimit)))
		return Unavailable
	}
	return text
}

// SummarizeDigest produces one batch-level summary describing themes across
// all included entries.
func (s *Summarizer) SummarizeDigest(ctx context.Context, entries []*types.Entry) string {
	text, err := s.generate(ctx, digestPrompt(entries))
	if err != nil {
		s.logger.Warn("digest summary failed",
			zap.Int("entries", len(entries)),
			zap.String("error", truncate(err.Error(), diagnosticLimit)))
		return Unavailable
	}
	return text
}

func (s *Summarizer) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   cohere.String(s.model),
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}

func articlePrompt(title, content string) string {
	return fmt.Sprintf(`Analyze this AI/ML research article and provide a concise summary that captures:
1. The core innovation or finding
2. Why it matters (practical implications or theoretical significance)
3. Any notable limitations or caveats

Title: %s

Content: %s

Provide a clear, engaging summary in 3-4 sentences that would help a technical reader decide if they should read the full article.`, title, content)
}

func digestPrompt(entries []*types.Entry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Below are %d AI/ML research articles collected for today's digest.\n\n", len(entries)))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("Title: %s\nSource: %s\nContent: %s\n\n", e.Title, e.Source, truncate(e.Content(), batchContentLimit)))
	}
	sb.WriteString(`Write a digest introduction that covers:
1. The themes running across these articles
2. The most significant findings
3. Connections between the articles

Keep it to one or two paragraphs aimed at a technical reader.`)
	return sb.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
