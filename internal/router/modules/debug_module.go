package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexcruit/ats-backend/internal/interface/middleware"
)

// DebugModule exposes expvar counters (emails, reminders, parsed resumes).
type DebugModule struct {
	Guard Guard
}

func NewDebugModule(g Guard) *DebugModule { return &DebugModule{Guard: g} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Guard.Redis, 120, time.Minute, middleware.KeyByIP("debug"), middleware.AnyAllow(middleware.AllowPrivateIP(), m.Guard.Bypass))
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
