package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/pkg/helpers"
	"github.com/nexcruit/ats-backend/pkg/response"
)

// SessionValidator confirms the token's session id is still the user's active session.
type SessionValidator interface {
	ValidateSession(ctx context.Context, userID, sid string) (*application.Session, error)
}

// Auth validates the access token and ensures the session it names is still active.
// It sets userID and userEmail in the Gin context on success.
func Auth(sessions SessionValidator, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AccessToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		sess, err := sessions.ValidateSession(c.Request.Context(), claims.UserID, claims.SessionID)
		if err != nil {
			if errors.Is(err, application.ErrUnauthorized) {
				response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
				return
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		email := sess.Email
		if email == "" {
			email = claims.Email
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, email)
		c.Next()
	}
}
