// Package checkpoint persists the set of processed record keys so
// interrupted runs resume where they stopped.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"kotoba/internal/logging"
)

type fileFormat struct {
	Processed []string `json:"processed"`
	Input     string   `json:"input"`
}

// Checkpoint tracks which records a run has already enriched. A missing or
// unreadable file starts empty; losing a checkpoint only costs cache-served
// re-enrichment, never data.
type Checkpoint struct {
	path   string
	logger *slog.Logger

	mu        sync.Mutex
	input     string
	processed map[string]bool
}

// Load opens the checkpoint at path, tolerating a missing or corrupt file.
func Load(path string, logger *slog.Logger) *Checkpoint {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "checkpoint")

	c := &Checkpoint{
		path:      path,
		logger:    logger,
		processed: make(map[string]bool),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("failed to read checkpoint, starting fresh",
				logging.Error(err),
				logging.String(logging.FieldImpact, "already-enriched records will be reprocessed from cache"))
		}
		return c
	}

	var payload fileFormat
	if err := json.Unmarshal(data, &payload); err != nil {
		logger.Warn("failed to parse checkpoint, starting fresh", logging.Error(err))
		return c
	}

	c.input = payload.Input
	for _, key := range payload.Processed {
		c.processed[key] = true
	}
	return c
}

// Done reports whether key was already processed.
func (c *Checkpoint) Done(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processed[key]
}

// Count returns the number of processed keys.
func (c *Checkpoint) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.processed)
}

// Mark records key as processed and persists the checkpoint.
func (c *Checkpoint) Mark(key, input string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.processed[key] = true
	c.input = input
	return c.save()
}

// Clear deletes the checkpoint file and forgets all keys.
func (c *Checkpoint) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.processed = make(map[string]bool)
	c.input = ""
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove checkpoint: %w", err)
	}
	return nil
}

// save writes the checkpoint atomically: temp file in the same directory,
// then rename.
func (c *Checkpoint) save() error {
	keys := make([]string, 0, len(c.processed))
	for key := range c.processed {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	data, err := json.MarshalIndent(fileFormat{Processed: keys, Input: c.input}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("ensure checkpoint directory: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize checkpoint: %w", err)
	}
	return nil
}
