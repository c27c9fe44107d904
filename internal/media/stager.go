package media

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lukechampine.com/blake3"
)

const (
	uploadPrefix    = "upload_"
	timestampLayout = "20060102_150405"
	hashPrefixLen   = 8
	maxNameAttempts = 1000
)

// Stager copies upload payloads into a working directory under unique names.
type Stager struct {
	dir string
	now func() time.Time
}

// NewStager creates a Stager writing into dir.
func NewStager(dir string) *Stager {
	return &Stager{dir: dir, now: time.Now}
}

// Stage writes r to upload_<stem>_<timestamp>_<hash8><ext> in the staging dir
// and returns the path. hash8 is a BLAKE3 prefix of the payload. An existing
// file is never overwritten: a -N counter is appended until a name is free.
func (s *Stager) Stage(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	part, err := os.CreateTemp(s.dir, ".staging-*.part")
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	partPath := part.Name()
	defer os.Remove(partPath)

	h := blake3.New(32, nil)
	if _, err := io.Copy(io.MultiWriter(part, h), r); err != nil {
		part.Close()
		return "", fmt.Errorf("write staging file: %w", err)
	}
	if err := part.Close(); err != nil {
		return "", fmt.Errorf("close staging file: %w", err)
	}

	stem, ext := SplitName(originalName)
	base := fmt.Sprintf("%s%s_%s_%s",
		uploadPrefix, stem, s.now().Format(timestampLayout),
		hex.EncodeToString(h.Sum(nil))[:hashPrefixLen])

	for i := 0; i < maxNameAttempts; i++ {
		name := base + ext
		if i > 0 {
			name = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		dst := filepath.Join(s.dir, name)

		err := os.Link(partPath, dst)
		if err == nil {
			return dst, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("claim staged name %s: %w", name, err)
		}
	}

	return "", fmt.Errorf("no free staged name for %s", originalName)
}

// SplitName returns the sanitized stem and lower-cased extension of an
// uploaded filename. Directory components, including Windows ones, are dropped.
func SplitName(originalName string) (stem, ext string) {
	name := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	ext = Ext(name)
	stem = strings.TrimSuffix(name, filepath.Ext(name))
	stem = strings.TrimSpace(stem)
	if stem == "" || stem == "." || stem == ".." || stem == "/" {
		stem = "file"
	}
	return stem, ext
}
