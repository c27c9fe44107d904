package api

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/study-scribe/internal/model"
	"github.com/nguyentantai21042004/study-scribe/internal/session"
	"github.com/nguyentantai21042004/study-scribe/internal/summarizer"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"duration": func(d *float64) string {
		if d == nil {
			return "unknown"
		}
		return model.FormatDuration(*d)
	},
	"styleLabel": func(s string) string {
		return summarizer.Style(s).Label()
	},
}

type pageData struct {
	Entries       []session.Entry
	VideoFormats  string
	AudioFormats  string
	MaxFileSizeMB int
	Styles        []summarizer.Style
	Error         string
}

// index handles GET /
func (h *Handler) index(c *gin.Context) {
	h.renderPage(c, http.StatusOK, "")
}

// uploadForm handles POST /upload
func (h *Handler) uploadForm(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.renderError(c, uploadError(err))
		return
	}

	entry, err := h.ingest(c.Request.Context(), currentSession(c), fh)
	if err != nil {
		c.Error(err)
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/#t-"+entry.ID.String())
}

// summaryForm handles POST /transcripts/:id/summary
func (h *Handler) summaryForm(c *gin.Context) {
	entry, err := h.summarize(c.Request.Context(), currentSession(c), c.Param("id"), c.PostForm("style"))
	if err != nil {
		c.Error(err)
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/#t-"+entry.ID.String())
}

func (h *Handler) renderError(c *gin.Context, err error) {
	f := classifyError(err)
	msg := f.message
	if f.remote && f.transient {
		msg += " (temporary, try again shortly)"
	}
	h.renderPage(c, f.status, msg)
}

func (h *Handler) renderPage(c *gin.Context, status int, errMsg string) {
	c.HTML(status, "index.html", pageData{
		Entries:       currentSession(c).List(),
		VideoFormats:  strings.Join(h.classifier.VideoExtensions(), ", "),
		AudioFormats:  strings.Join(h.classifier.AudioExtensions(), ", "),
		MaxFileSizeMB: h.cfg.Upload.MaxFileSizeMB,
		Styles:        summarizer.Styles(),
		Error:         errMsg,
	})
}
