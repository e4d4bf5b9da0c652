package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// SnapshotFormat is the JSON structure for cache snapshot export/import.
// Snapshots let a bot process restart with a warm resolution cache.
type SnapshotFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []SnapshotEntry   `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// SnapshotEntry is a single cached resolution.
type SnapshotEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Exporter writes cache snapshots.
type Exporter struct {
	cache StringCache
}

// NewExporter creates a snapshot exporter for the given cache.
func NewExporter(cache StringCache) *Exporter {
	return &Exporter{cache: cache}
}

// Export writes the cache contents as JSON.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) error {
	entries, err := e.allEntries()
	if err != nil {
		return fmt.Errorf("reading cache entries: %w", err)
	}

	snapshot := SnapshotFormat{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    entries,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ExportToFile writes the snapshot to a file.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return e.Export(f, metadata)
}

func (e *Exporter) allEntries() ([]SnapshotEntry, error) {
	mem, ok := e.cache.(*Memory)
	if !ok {
		return nil, fmt.Errorf("cache type %T does not support export", e.cache)
	}

	data := mem.Entries()
	entries := make([]SnapshotEntry, 0, len(data))
	for key, value := range data {
		entries = append(entries, SnapshotEntry{Key: key, Value: value})
	}
	return entries, nil
}

// Importer loads cache snapshots.
type Importer struct {
	cache StringCache
}

// NewImporter creates a snapshot importer for the given cache.
func NewImporter(cache StringCache) *Importer {
	return &Importer{cache: cache}
}

// Import reads a JSON snapshot and loads its entries into the cache.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var snapshot SnapshotFormat
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	result := &ImportResult{
		Version:  snapshot.Version,
		Metadata: snapshot.Metadata,
	}

	for _, entry := range snapshot.Entries {
		if err := i.cache.Set(entry.Key, entry.Value); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ImportFromFile loads a snapshot from a file.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(f)
}

// ImportResult contains statistics about a snapshot import.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Failed   int
}
