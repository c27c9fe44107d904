package summarizer

import (
	"time"

	"github.com/nguyentantai21042004/study-scribe/internal/llm"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
)

type implSummarizer struct {
	generator llm.Generator
	logger    logger.Logger
	now       func() time.Time
}

// New creates a Summarizer backed by generator.
func New(generator llm.Generator, log logger.Logger) Summarizer {
	return &implSummarizer{
		generator: generator,
		logger:    log,
		now:       time.Now,
	}
}
