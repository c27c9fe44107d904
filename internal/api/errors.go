package api

import (
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/study-scribe/internal/llm"
	"github.com/nguyentantai21042004/study-scribe/internal/media"
	"github.com/nguyentantai21042004/study-scribe/internal/processor"
	"github.com/nguyentantai21042004/study-scribe/internal/session"
)

var (
	errMissingFile = errors.New("file is required")
	errInvalidID   = errors.New("invalid transcript id")
	errNoSummary   = errors.New("no summary generated for this transcript yet")
)

type failureInfo struct {
	status    int
	message   string
	remote    bool
	transient bool
}

// classifyError maps a pipeline error to an HTTP status. Validation problems
// are 4xx, ffmpeg failures 422, remote model failures 502 and anything else
// is a local failure.
func classifyError(err error) failureInfo {
	var (
		lerr   *llm.Error
		maxErr *http.MaxBytesError
	)

	switch {
	case errors.Is(err, media.ErrFileTooLarge), errors.As(err, &maxErr):
		return failureInfo{status: http.StatusRequestEntityTooLarge, message: err.Error()}
	case errors.Is(err, media.ErrUnsupportedMedia),
		errors.Is(err, errMissingFile),
		errors.Is(err, errInvalidID):
		return failureInfo{status: http.StatusBadRequest, message: err.Error()}
	case errors.Is(err, session.ErrNotFound), errors.Is(err, errNoSummary):
		return failureInfo{status: http.StatusNotFound, message: err.Error()}
	case errors.Is(err, session.ErrBusy):
		return failureInfo{status: http.StatusConflict, message: err.Error()}
	case errors.Is(err, processor.ErrExtractAudio):
		return failureInfo{status: http.StatusUnprocessableEntity, message: err.Error()}
	case errors.As(err, &lerr):
		return failureInfo{
			status:    http.StatusBadGateway,
			message:   err.Error(),
			remote:    true,
			transient: lerr.Transient,
		}
	default:
		return failureInfo{status: http.StatusInternalServerError, message: err.Error()}
	}
}
