package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/pkg/response"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler turns errors handlers pushed with c.Error into a single 500 envelope.
func ErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(response.RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).WithError(c.Errors.Last().Err).Error("request failed")
		response.Error[any](c, http.StatusInternalServerError, internalErrorMessage, nil)
	}
}

// Recovery converts panics into the same 500 envelope.
func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(response.RequestIDKey),
			"path":       c.Request.URL.Path,
			"panic":      fmt.Sprint(recovered),
		}).Error("panic recovered")
		response.Error[any](c, http.StatusInternalServerError, internalErrorMessage, nil)
	})
}

// SecurityHeaders lets the Google sign-in popup talk back to the opener.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cross-Origin-Opener-Policy", "same-origin-allow-popups")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}

// NoStore marks API responses as uncacheable; they carry tokens and personal data.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
