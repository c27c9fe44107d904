package llm

import "context"

// Part is one ordered element of a request: either text or an inline blob.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// Text returns a text part.
func Text(s string) Part {
	return Part{Text: s}
}

// Blob returns an inline binary part such as an audio payload.
func Blob(data []byte, mimeType string) Part {
	return Part{Data: data, MIMEType: mimeType}
}

// Response is the generated text and the model that produced it.
type Response struct {
	Text  string
	Model string
}

// Generator is the remote AI capability: one ordered request of text and
// optional binary parts yields one text response.
type Generator interface {
	Generate(ctx context.Context, parts ...Part) (*Response, error)
	Model() string
}
