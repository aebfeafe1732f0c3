// Package file persists machine records as JSON files in a directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GNINE11/ProjAutomata-TC/pkg/registry"
)

// Store implements registry.Store on the local filesystem. Each machine
// lives in its own <id>.json file under BasePath.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".automata/machines".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".automata", "machines")
	}
	return &Store{BasePath: basePath}
}

// Save persists the record to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it
// to the destination.
func (s *Store) Save(ctx context.Context, id string, rec *registry.Record) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure machine directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, id+".json")

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	// The temp file lives in the same directory so the rename stays on one
	// filesystem, which is what makes it atomic.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+id+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()    // Ensure closed
		_ = os.Remove(tmpPath) // Remove if still present (not renamed)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Close before rename, Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if the destination exists, so clear it
	// first. The delete+rename window is acceptable next to the risk of a
	// partially written file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing machine file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}

	return nil
}

// Load retrieves the record from its JSON file.
func (s *Store) Load(ctx context.Context, id string) (*registry.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}

	data, err := os.ReadFile(filepath.Join(s.BasePath, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, registry.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read machine file: %w", err)
	}

	var rec registry.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal machine record: %w", err)
	}

	return &rec, nil
}

// Delete removes the machine file. Unknown identifiers are not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	err := os.Remove(filepath.Join(s.BasePath, id+".json"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete machine file: %w", err)
	}

	return nil
}

// List returns every stored identifier.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}

	sort.Strings(ids) // Deterministic order
	return ids, nil
}
