package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel         = "command-r-08-2024"
	DefaultFeedsPath     = "feeds.txt"
	DefaultStatePath     = "sent_items.json"
	DefaultSelectorsPath = "selectors.yaml"
)

// Config carries the secrets and endpoints read from the environment. Every
// required value is checked before the pipeline touches the network.
type Config struct {
	CohereAPIKey  string
	CohereModel   string
	CohereBaseURL string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	KindleEmail   string
}

// Load reads .env when present (non-fatal if missing), then the process
// environment. Missing required variables abort the run before any network
// activity.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		CohereAPIKey:  os.Getenv("COHERE_API_KEY"),
		CohereModel:   os.Getenv("COHERE_MODEL"),
		CohereBaseURL: os.Getenv("COHERE_BASE_URL"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		KindleEmail:   os.Getenv("KINDLE_EMAIL"),
	}
	if cfg.CohereModel == "" {
		cfg.CohereModel = DefaultModel
	}

	required := []struct {
		name, value string
	}{
		{"COHERE_API_KEY", cfg.CohereAPIKey},
		{"SMTP_HOST", cfg.SMTPHost},
		{"SMTP_PORT", os.Getenv("SMTP_PORT")},
		{"SMTP_USER", cfg.SMTPUser},
		{"SMTP_PASSWORD", cfg.SMTPPassword},
		{"KINDLE_EMAIL", cfg.KindleEmail},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SMTP_PORT")))
	if err != nil {
		return nil, fmt.Errorf("config: SMTP_PORT must be numeric: %w", err)
	}
	cfg.SMTPPort = port

	return cfg, nil
}

// Selectors overrides the scraper's heuristic content-container hints. The
// candidate chain is a heuristic, not a protocol, so it stays editable
// without a rebuild.
type Selectors struct {
	ClassHints []string `yaml:"class_hints"`
	IDHints    []string `yaml:"id_hints"`
}

// LoadSelectors reads the optional selector override file. A missing file is
// not an error; the scraper falls back to its built-in hints.
func LoadSelectors(path string) (*Selectors, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var sel Selectors
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return &sel, nil
}
