package api

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/study-scribe/internal/media"
	"github.com/nguyentantai21042004/study-scribe/internal/model"
	"github.com/nguyentantai21042004/study-scribe/internal/processor"
	"github.com/nguyentantai21042004/study-scribe/internal/session"
	"github.com/nguyentantai21042004/study-scribe/internal/summarizer"
)

// ingest validates, stages, transcribes and persists one upload, then appends
// it to the session. The session is untouched unless every step succeeds.
func (h *Handler) ingest(ctx context.Context, sess *session.Session, fh *multipart.FileHeader) (session.Entry, error) {
	if err := h.validateUpload(fh); err != nil {
		return session.Entry{}, err
	}

	if err := sess.TryBegin(); err != nil {
		return session.Entry{}, err
	}
	defer sess.End()

	src, err := fh.Open()
	if err != nil {
		return session.Entry{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	staged, err := h.stager.Stage(ctx, fh.Filename, src)
	if err != nil {
		return session.Entry{}, fmt.Errorf("stage upload: %w", err)
	}
	defer media.Cleanup(ctx, h.logger, staged)

	h.logger.Info(ctx, "Uploaded %s (%.1f MB) staged as %s", fh.Filename, float64(fh.Size)/(1<<20), filepath.Base(staged))

	rec, err := h.processor.Process(ctx, processor.Request{Path: staged, OriginalName: filepath.Base(fh.Filename)})
	if err != nil {
		return session.Entry{}, err
	}

	out, err := h.store.Save(rec, "")
	if err != nil {
		return session.Entry{}, fmt.Errorf("save transcript: %w", err)
	}
	h.logger.Info(ctx, "Transcript %s saved to %s", rec.ID, out)

	return sess.Append(rec, filepath.Base(out)), nil
}

// validateUpload enforces the size limit and the supported extensions before
// anything touches disk.
func (h *Handler) validateUpload(fh *multipart.FileHeader) error {
	if limit := h.cfg.MaxFileSizeBytes(); fh.Size > limit {
		return fmt.Errorf("%w: %s is %.1f MB, the limit is %d MB",
			media.ErrFileTooLarge, fh.Filename, float64(fh.Size)/(1<<20), h.cfg.Upload.MaxFileSizeMB)
	}
	if h.classifier.Classify(fh.Filename) == model.MediaUnsupported {
		return fmt.Errorf("%w: %q", media.ErrUnsupportedMedia, media.Ext(fh.Filename))
	}
	return nil
}

// summarize generates a summary for one entry of the session and attaches it.
// A failed call leaves any earlier summary in place.
func (h *Handler) summarize(ctx context.Context, sess *session.Session, rawID, rawStyle string) (session.Entry, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return session.Entry{}, errInvalidID
	}

	entry, err := sess.Get(id)
	if err != nil {
		return session.Entry{}, err
	}

	if err := sess.TryBegin(); err != nil {
		return session.Entry{}, err
	}
	defer sess.End()

	style := summarizer.ParseStyle(rawStyle)
	text, err := h.summarizer.Summarize(ctx, entry.Record.Text, style)
	if err != nil {
		return session.Entry{}, err
	}

	return sess.SetSummary(id, session.Summary{
		Style:     string(style),
		Text:      text,
		CreatedAt: time.Now(),
	})
}

func (h *Handler) entry(sess *session.Session, rawID string) (session.Entry, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return session.Entry{}, errInvalidID
	}
	return sess.Get(id)
}
