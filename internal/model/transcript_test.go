package model

import (
	"testing"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", " \n\t ", 0},
		{"single", "hello", 1},
		{"mixed separators", "one  two\nthree\tfour", 4},
		{"non ascii", "xin chào các bạn", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.text); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewTranscriptRecord(t *testing.T) {
	rec := NewTranscriptRecord(RecordInput{
		Text:         "the mitochondria is the powerhouse",
		SourceFile:   "lecture_audio.mp3",
		OriginalFile: "lecture.mp4",
		Model:        "gemini-flash-latest",
		MediaType:    MediaVideo,
	})

	if rec.WordCount != CountWords(rec.Text) {
		t.Errorf("WordCount = %d, want %d", rec.WordCount, CountWords(rec.Text))
	}
	if rec.Language != LanguageAutoDetected {
		t.Errorf("Language = %q", rec.Language)
	}
	if rec.Duration != nil {
		t.Errorf("Duration = %v, want nil", *rec.Duration)
	}
	if rec.ProcessedAt.IsZero() {
		t.Error("ProcessedAt not set")
	}

	other := NewTranscriptRecord(RecordInput{Text: "x"})
	if rec.ID == other.ID {
		t.Error("records share an id")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{59.9, "00:59"},
		{61, "01:01"},
		{3600, "01:00:00"},
		{3725.5, "01:02:05"},
		{-4, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
