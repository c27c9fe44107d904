package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/study-scribe/internal/media"
	"github.com/nguyentantai21042004/study-scribe/internal/model"
)

const timestampLayout = "20060102_150405"

// Store persists transcript records as JSON files in one directory.
// There is no update or delete: every save gets its own file.
type Store struct {
	dir string
	now func() time.Time
}

// New creates a Store writing into dir.
func New(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// DefaultFilename returns transcript_<stem>_<timestamp>_<id8>.json for rec.
func (s *Store) DefaultFilename(rec *model.TranscriptRecord) string {
	source := rec.OriginalFile
	if source == "" {
		source = "unknown"
	}
	stem, _ := media.SplitName(source)
	return fmt.Sprintf("transcript_%s_%s_%s.json",
		stem, s.now().Format(timestampLayout), rec.ID.String()[:8])
}

// Save writes rec as indented UTF-8 JSON and returns the file path. An empty
// filename selects DefaultFilename. An existing file with the same name is
// overwritten.
func (s *Store) Save(rec *model.TranscriptRecord, filename string) (string, error) {
	if filename == "" {
		filename = s.DefaultFilename(rec)
	}
	path := filepath.Join(s.dir, filepath.Base(filename))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("encode transcript: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write transcript %s: %w", path, err)
	}
	return path, nil
}

// Load reads a record previously written by Save.
func Load(path string) (*model.TranscriptRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var rec model.TranscriptRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}
