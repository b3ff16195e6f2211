package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
)

// Context keys set by the auth and real-ip middleware.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	ctxRealIP    = "real_ip"
)

func clientIP(c *gin.Context) string {
	if ip := c.GetString(ctxRealIP); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{IP: clientIP(c), UserAgent: c.GetHeader("User-Agent")}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseDate accepts RFC 3339 timestamps and plain calendar dates. Blank input yields nil.
func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			t = t.UTC()
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// dateFields parses each named raw date, collecting per-field errors.
func dateFields(raw map[string]string) (map[string]*time.Time, map[string]string) {
	out := make(map[string]*time.Time, len(raw))
	var bad map[string]string
	for field, v := range raw {
		t, err := parseDate(v)
		if err != nil {
			if bad == nil {
				bad = map[string]string{}
			}
			bad[field] = "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"
			continue
		}
		out[field] = t
	}
	return out, bad
}
