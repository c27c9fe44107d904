package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaKind classifies an upload by extension.
type MediaKind string

const (
	MediaVideo       MediaKind = "video"
	MediaAudio       MediaKind = "audio"
	MediaUnsupported MediaKind = "unsupported"
)

// LanguageAutoDetected is reported when the transcription backend gives no language.
const LanguageAutoDetected = "auto-detected"

// TranscriptRecord is the persisted result of one transcription pass.
// Records are immutable once built.
type TranscriptRecord struct {
	ID           uuid.UUID `json:"id"`
	Text         string    `json:"text"`
	Language     string    `json:"language"`
	Duration     *float64  `json:"duration"`
	WordCount    int       `json:"word_count"`
	ProcessedAt  time.Time `json:"processed_at"`
	SourceFile   string    `json:"source_file,omitempty"`
	OriginalFile string    `json:"original_file"`
	Model        string    `json:"model"`
	MediaType    MediaKind `json:"media_type"`
}

// RecordInput carries the fields a caller supplies; the rest are derived.
type RecordInput struct {
	Text         string
	Duration     *float64
	SourceFile   string
	OriginalFile string
	Model        string
	MediaType    MediaKind
}

// NewTranscriptRecord stamps a fresh id and creation time and derives word_count.
func NewTranscriptRecord(in RecordInput) *TranscriptRecord {
	return &TranscriptRecord{
		ID:           uuid.New(),
		Text:         in.Text,
		Language:     LanguageAutoDetected,
		Duration:     in.Duration,
		WordCount:    CountWords(in.Text),
		ProcessedAt:  time.Now(),
		SourceFile:   in.SourceFile,
		OriginalFile: in.OriginalFile,
		Model:        in.Model,
		MediaType:    in.MediaType,
	}
}

// CountWords returns the number of whitespace separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
