package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nexcruit/ats-backend/internal/interface/http"
	"github.com/nexcruit/ats-backend/internal/interface/middleware"
)

type StatsModule struct {
	Handler *handlers.StatsHandler
	Guard   Guard
}

func (m *StatsModule) Register(rg *gin.RouterGroup) {
	m.Guard.Protected(rg, "/stats").GET("", m.Handler.Get)
	// exports build a whole workbook in memory
	m.Guard.Protected(rg, "/exports").GET("/candidates", m.Guard.Limit(10, middleware.KeyByUserID("export")), m.Handler.ExportCandidates)
}
