package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nexcruit/ats-backend/internal/interface/http"
)

type InterviewModule struct {
	Handler *handlers.InterviewHandler
	Guard   Guard
}

func (m *InterviewModule) Register(rg *gin.RouterGroup) {
	g := m.Guard.Protected(rg, "/interviews")
	{
		g.POST("", m.Handler.Schedule)
		g.GET("", m.Handler.List)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
