package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/study-scribe/internal/media"
	"github.com/nguyentantai21042004/study-scribe/internal/model"
)

// Process classifies the staged file and runs the matching pipeline. Video is
// converted to audio first; the extracted audio never outlives the call.
func (p *implProcessor) Process(ctx context.Context, req Request) (*model.TranscriptRecord, error) {
	if req.OriginalName == "" {
		req.OriginalName = filepath.Base(req.Path)
	}

	kind := p.classifier.Classify(req.OriginalName)
	if kind == model.MediaUnsupported {
		return nil, fmt.Errorf("%w: %q", media.ErrUnsupportedMedia, media.Ext(req.OriginalName))
	}

	if err := p.sem.acquire(ctx); err != nil {
		return nil, err
	}
	defer p.sem.release()

	startTime := time.Now()
	p.logger.Info(ctx, "Processing %s file: %s", kind, req.OriginalName)

	var (
		rec *model.TranscriptRecord
		err error
	)
	switch kind {
	case model.MediaVideo:
		rec, err = p.processVideo(ctx, req)
	default:
		rec, err = p.transcribeAudio(ctx, req.Path, req.OriginalName, model.MediaAudio)
	}
	if err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "Processing completed: %s (%d words, %s)",
		req.OriginalName, rec.WordCount, time.Since(startTime).Round(time.Millisecond))
	return rec, nil
}

func (p *implProcessor) processVideo(ctx context.Context, req Request) (*model.TranscriptRecord, error) {
	audioPath := p.audioPathFor(req.Path)
	defer media.Cleanup(ctx, p.logger, audioPath)

	if err := p.extractAudio(ctx, req.Path, audioPath); err != nil {
		return nil, err
	}

	return p.transcribeAudio(ctx, audioPath, req.OriginalName, model.MediaVideo)
}

func (p *implProcessor) transcribeAudio(ctx context.Context, audioPath, originalName string, kind model.MediaKind) (*model.TranscriptRecord, error) {
	duration := p.durationOf(ctx, audioPath)

	t, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	return model.NewTranscriptRecord(model.RecordInput{
		Text:         t.Text,
		Duration:     duration,
		SourceFile:   filepath.Base(audioPath),
		OriginalFile: originalName,
		Model:        t.Model,
		MediaType:    kind,
	}), nil
}
