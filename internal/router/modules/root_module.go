package modules

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	handlers "github.com/nexcruit/ats-backend/internal/interface/http"
)

// RootModule registers routes that live outside /api.
type RootModule struct {
	Health    *handlers.HealthHandler
	UploadDir string // served under /uploads when non-empty
	Swagger   bool
}

func (m *RootModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Health.Healthz)
	if m.UploadDir != "" {
		rg.Static("/uploads", m.UploadDir)
	}
	if m.Swagger {
		rg.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
