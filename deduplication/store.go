package deduplication

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// SentStore tracks which entry IDs have already been delivered, mapping each
// ID to the RFC 3339 timestamp at which it was processed. The store is loaded
// once at run start, marked in memory while entries are selected, and
// rewritten in full at run end. Old IDs are never pruned.
type SentStore struct {
	path  string
	items map[string]string
}

// LoadSentStore reads the store file. A missing file yields an empty store.
func LoadSentStore(path string) (*SentStore, error) {
	s := &SentStore{path: path, items: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("deduplication: failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		return nil, fmt.Errorf("deduplication: failed to parse %s: %w", path, err)
	}
	return s, nil
}

func (s *SentStore) Contains(id string) bool {
	_, ok := s.items[id]
	return ok
}

func (s *SentStore) MarkSent(id string, at time.Time) {
	s.items[id] = at.UTC().Format(time.RFC3339)
}

func (s *SentStore) Len() int {
	return len(s.items)
}

// Save rewrites the store file in full, replacing the previous contents.
func (s *SentStore) Save() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("deduplication: failed to encode store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("deduplication: failed to write %s: %w", s.path, err)
	}
	return nil
}
