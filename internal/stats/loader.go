// Package stats reads and writes the stats.json document the visualizers are
// fed from.
package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// DefaultPath is where the collector writes and the viewer reads.
const DefaultPath = "Assets/Stats/stats.json"

// ErrDataUnavailable wraps every failure to produce a document.
var ErrDataUnavailable = errors.New("stats data unavailable")

// Load reads the document at path. Comments and trailing commas are
// tolerated.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a stats document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, fmt.Errorf("%w: empty document", ErrDataUnavailable)
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return Document{}, fmt.Errorf("%w: parsing stats: %w", ErrDataUnavailable, err)
	}
	return doc, nil
}

// Decode reads a whole document from r.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	return Parse(data)
}

// Save writes doc to path as indented JSON, creating parent directories.
// The file is replaced atomically so a watcher never reads half a document.
func Save(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create stats directory: %w", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".stats-*.json")
	if err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write stats: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write stats: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}
