package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type summaryRequest struct {
	Style string `json:"style"`
}

// createTranscript handles POST /api/v1/transcripts
func (h *Handler) createTranscript(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		failureFrom(c, uploadError(err))
		return
	}

	entry, err := h.ingest(c.Request.Context(), currentSession(c), fh)
	if err != nil {
		c.Error(err)
		failureFrom(c, err)
		return
	}

	success(c, http.StatusCreated, entry)
}

// listTranscripts handles GET /api/v1/transcripts
func (h *Handler) listTranscripts(c *gin.Context) {
	entries := currentSession(c).List()
	success(c, http.StatusOK, gin.H{
		"items": entries,
		"count": len(entries),
	})
}

// getTranscript handles GET /api/v1/transcripts/:id
func (h *Handler) getTranscript(c *gin.Context) {
	entry, err := h.entry(currentSession(c), c.Param("id"))
	if err != nil {
		failureFrom(c, err)
		return
	}
	success(c, http.StatusOK, entry)
}

// createSummary handles POST /api/v1/transcripts/:id/summary
func (h *Handler) createSummary(c *gin.Context) {
	var req summaryRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			failure(c, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	entry, err := h.summarize(c.Request.Context(), currentSession(c), c.Param("id"), req.Style)
	if err != nil {
		c.Error(err)
		failureFrom(c, err)
		return
	}

	success(c, http.StatusOK, entry)
}

// uploadError turns a multipart parse failure into a classifiable error.
func uploadError(err error) error {
	if errors.Is(err, http.ErrMissingFile) {
		return errMissingFile
	}
	return fmt.Errorf("read upload: %w", err)
}
