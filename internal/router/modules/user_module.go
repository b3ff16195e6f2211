package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nexcruit/ats-backend/internal/interface/http"
)

// AccountModule registers the signed-in user's own routes under /auth.
type AccountModule struct {
	Auth    *handlers.AuthHandler
	Handler *handlers.UserHandler
	Guard   Guard
}

func NewAccountModule(auth *handlers.AuthHandler, h *handlers.UserHandler, g Guard) *AccountModule {
	return &AccountModule{Auth: auth, Handler: h, Guard: g}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	me := m.Guard.Protected(rg, "/auth")
	{
		me.POST("/logout", m.Auth.Logout)
		me.GET("/profile", m.Handler.GetProfile)
		me.PUT("/update-profile", m.Handler.UpdateProfile)
		me.POST("/set-password", m.Handler.SetPassword)
		me.POST("/request-email-change", m.Handler.RequestEmailChange)
	}
}
