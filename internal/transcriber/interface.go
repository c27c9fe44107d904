package transcriber

import "context"

// Transcription is the text returned for one audio file.
type Transcription struct {
	Text  string
	Model string
}

// Transcriber turns an audio file into text with the remote AI capability.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Transcription, error)
}
