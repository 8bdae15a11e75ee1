package rssfeeds

import (
	"fmt"
	"os"
	"strings"
)

// LoadSources reads the feed URL list: one URL per line, blank lines skipped.
// A missing or unreadable file is a configuration error and aborts the run.
func LoadSources(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rssfeeds: failed to read feed list %s: %w", path, err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
