package api

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// uploadOverhead is the multipart framing allowed on top of the file limit.
const uploadOverhead = 1 << 20

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))
	r.MaxMultipartMemory = 32 << 20
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")))

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes adds the page, the JSON API and the health check to r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	web := r.Group("/", h.sessionMiddleware())
	{
		web.GET("/", h.index)
		web.POST("/upload", h.limitBody(), h.uploadForm)
		web.POST("/transcripts/:id/summary", h.summaryForm)
	}

	v1 := r.Group("/api/v1", h.sessionMiddleware())
	{
		v1.POST("/transcripts", h.limitBody(), h.createTranscript)
		v1.GET("/transcripts", h.listTranscripts)
		v1.GET("/transcripts/:id", h.getTranscript)
		v1.POST("/transcripts/:id/summary", h.createSummary)
		v1.GET("/transcripts/:id/transcript.txt", h.downloadTranscriptText)
		v1.GET("/transcripts/:id/transcript.docx", h.downloadTranscriptDocx)
		v1.GET("/transcripts/:id/summary.docx", h.downloadSummaryDocx)
	}
}

// limitBody caps the request body so an oversized upload fails while reading
// instead of filling the disk.
func (h *Handler) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxFileSizeBytes()+uploadOverhead)
		c.Next()
	}
}

func (h *Handler) health(c *gin.Context) {
	success(c, http.StatusOK, gin.H{
		"status":  "ok",
		"service": "study-scribe",
	})
}
