package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"github.com/nguyentantai21042004/study-scribe/internal/session"
)

const (
	requestIDHeader = "X-Request-ID"
	sessionHeader   = "X-Session-ID"
	sessionCookie   = "scribe_session"
	sessionKey      = "session"
)

// requestLogger tags the request context with a request id and logs one line
// per request once it completes.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start).Milliseconds()

		switch {
		case len(c.Errors) > 0:
			log.Error(ctx, "%s %s -> %d (%dms, ip=%s): %s",
				c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP(), c.Errors.String())
		case status >= http.StatusInternalServerError:
			log.Error(ctx, "%s %s -> %d (%dms, ip=%s)", c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		case status >= http.StatusBadRequest:
			log.Warn(ctx, "%s %s -> %d (%dms, ip=%s)", c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		default:
			log.Info(ctx, "%s %s -> %d (%dms, ip=%s)", c.Request.Method, c.Request.URL.Path, status, latency, c.ClientIP())
		}
	}
}

// sessionMiddleware resolves the caller's session from the cookie, or the
// X-Session-ID header for API clients, and refreshes the cookie.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = c.GetHeader(sessionHeader)
		}

		s := h.sessions.Get(id)

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, s.ID.String(), int(h.cfg.Server.SessionTTL.Seconds()), "/", "", false, true)
		c.Header(sessionHeader, s.ID.String())

		c.Set(sessionKey, s)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
