package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/study-scribe/internal/media"
	"github.com/nguyentantai21042004/study-scribe/internal/session"
	"github.com/nguyentantai21042004/study-scribe/internal/summarizer"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// downloadTranscriptText handles GET /api/v1/transcripts/:id/transcript.txt
func (h *Handler) downloadTranscriptText(c *gin.Context) {
	entry, err := h.entry(currentSession(c), c.Param("id"))
	if err != nil {
		failureFrom(c, err)
		return
	}

	c.Header("Content-Disposition", attachment(downloadName(entry, "transcript", ".txt")))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(entry.Record.Text))
}

// downloadTranscriptDocx handles GET /api/v1/transcripts/:id/transcript.docx
func (h *Handler) downloadTranscriptDocx(c *gin.Context) {
	entry, err := h.entry(currentSession(c), c.Param("id"))
	if err != nil {
		failureFrom(c, err)
		return
	}

	h.sendDocx(c, downloadName(entry, "transcript", ".docx"), func(path string) error {
		return summarizer.ExportTranscriptDocx(entry.Record.OriginalFile, entry.Record.Text, path)
	})
}

// downloadSummaryDocx handles GET /api/v1/transcripts/:id/summary.docx
func (h *Handler) downloadSummaryDocx(c *gin.Context) {
	entry, err := h.entry(currentSession(c), c.Param("id"))
	if err != nil {
		failureFrom(c, err)
		return
	}
	if entry.Summary == nil {
		failureFrom(c, errNoSummary)
		return
	}

	title := fmt.Sprintf("%s (%s)", entry.Record.OriginalFile, summarizer.Style(entry.Summary.Style).Label())
	h.sendDocx(c, downloadName(entry, "summary", ".docx"), func(path string) error {
		return summarizer.ExportMarkdownDocx(title, entry.Summary.Text, path)
	})
}

// sendDocx renders into a temp file, streams it and removes it.
func (h *Handler) sendDocx(c *gin.Context, name string, render func(path string) error) {
	ctx := c.Request.Context()

	f, err := os.CreateTemp(h.cfg.Paths.Temp, "download-*.docx")
	if err != nil {
		failureFrom(c, fmt.Errorf("create docx: %w", err))
		return
	}
	path := f.Name()
	f.Close()
	defer media.Cleanup(ctx, h.logger, path)

	if err := render(path); err != nil {
		c.Error(err)
		failureFrom(c, fmt.Errorf("render docx: %w", err))
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		failureFrom(c, fmt.Errorf("read docx: %w", err))
		return
	}

	c.Header("Content-Disposition", attachment(name))
	c.Data(http.StatusOK, docxContentType, data)
}

// downloadName is <original-stem>_<kind><ext>.
func downloadName(entry session.Entry, kind, ext string) string {
	stem, _ := media.SplitName(entry.Record.OriginalFile)
	return stem + "_" + kind + ext
}

func attachment(name string) string {
	name = strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(filepath.Base(name))
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, name, url.PathEscape(name))
}
