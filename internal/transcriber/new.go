package transcriber

import (
	"github.com/nguyentantai21042004/study-scribe/internal/llm"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
)

type implTranscriber struct {
	generator llm.Generator
	logger    logger.Logger
}

// New creates a Transcriber on top of generator.
func New(generator llm.Generator, log logger.Logger) Transcriber {
	return &implTranscriber{
		generator: generator,
		logger:    log,
	}
}
