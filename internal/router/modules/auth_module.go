package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nexcruit/ats-backend/internal/interface/http"
	"github.com/nexcruit/ats-backend/internal/interface/middleware"
)

// AuthModule registers the public sign-up and sign-in routes under /auth.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Account *handlers.UserHandler
	Guard   Guard
}

func NewAuthModule(h *handlers.AuthHandler, account *handlers.UserHandler, g Guard) *AuthModule {
	return &AuthModule{Handler: h, Account: account, Guard: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := m.Guard.Limit(10, middleware.KeyByIP("login"))
	signupLimiter := m.Guard.Limit(10, middleware.KeyByIP("register"))
	confirmLimiter := m.Guard.Limit(30, middleware.KeyByIPAndPath())
	resetInitLimiter := m.Guard.Limit(5, middleware.KeyByIPAndPath())
	refreshLimiter := m.Guard.Limit(60, middleware.KeyByIP("refresh"))

	auth := rg.Group("/auth")
	auth.POST("/register", signupLimiter, m.Handler.Register)
	auth.GET("/verify-link", confirmLimiter, m.Handler.VerifyLink)
	auth.POST("/verify-otp", confirmLimiter, m.Handler.VerifyOTP)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	auth.POST("/google", loginLimiter, m.Handler.Google)
	auth.POST("/google-onetap", loginLimiter, m.Handler.Google)
	auth.POST("/forgot-password", resetInitLimiter, m.Handler.ForgotPassword)
	auth.POST("/reset-password", confirmLimiter, m.Handler.ResetPassword)

	// The change link is opened from the new mailbox, possibly without a session.
	auth.GET("/verify-email-change", confirmLimiter, m.Account.VerifyEmailChangeLink)
	auth.POST("/verify-email-change-otp", confirmLimiter, m.Account.VerifyEmailChangeOTP)
}
