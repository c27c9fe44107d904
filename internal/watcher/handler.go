package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"github.com/nguyentantai21042004/study-scribe/internal/model"
	"github.com/nguyentantai21042004/study-scribe/internal/processor"
)

// RecordSaver persists a finished transcript.
type RecordSaver interface {
	Save(rec *model.TranscriptRecord, filename string) (string, error)
}

// NewPipelineHandler processes an inbox file, saves the transcript and removes
// the source file. On failure the source stays in the inbox.
func NewPipelineHandler(proc processor.Processor, saver RecordSaver, log logger.Logger) EventHandler {
	return func(ctx context.Context, filePath string) error {
		rec, err := proc.Process(ctx, processor.Request{
			Path:         filePath,
			OriginalName: filepath.Base(filePath),
		})
		if err != nil {
			return fmt.Errorf("process: %w", err)
		}

		out, err := saver.Save(rec, "")
		if err != nil {
			return fmt.Errorf("save transcript: %w", err)
		}

		if err := os.Remove(filePath); err != nil {
			log.Warn(ctx, "Failed to remove processed inbox file %s: %v", filePath, err)
		}

		log.Info(ctx, "[DONE] %s -> %s", filepath.Base(filePath), out)
		return nil
	}
}
