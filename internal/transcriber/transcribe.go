package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/study-scribe/internal/llm"
	"github.com/nguyentantai21042004/study-scribe/internal/media"
)

const transcribePrompt = `Please transcribe this audio file accurately.
Provide a clean, well-formatted transcript with proper punctuation.
Do not add any commentary, just the transcription.`

// Transcribe reads the whole audio file and submits it with the transcription
// prompt as one request. Large files are not split.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (*Transcription, error) {
	mimeType, ok := media.MimeType(audioPath)
	if !ok {
		return nil, fmt.Errorf("no audio mime type for %s", filepath.Base(audioPath))
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	t.logger.Info(ctx, "Transcribing %s (%s, %d bytes) with %s",
		filepath.Base(audioPath), mimeType, len(audio), t.generator.Model())

	resp, err := t.generator.Generate(ctx, llm.Text(transcribePrompt), llm.Blob(audio, mimeType))
	if err != nil {
		t.logger.Error(ctx, "Transcription error for %s: %v", filepath.Base(audioPath), err)
		return nil, fmt.Errorf("transcribe %s: %w", filepath.Base(audioPath), err)
	}

	text := strings.TrimSpace(resp.Text)
	t.logger.Info(ctx, "Transcription complete: %d characters", len(text))

	return &Transcription{Text: text, Model: resp.Model}, nil
}
