package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nexcruit/ats-backend/internal/interface/middleware"
)

// Guard carries what modules need to protect routes: the session check and the
// Redis client behind rate limits. A nil Redis disables limiting.
type Guard struct {
	Redis *redis.Client
	Auth  gin.HandlerFunc
	// Bypass exempts trusted clients from every limit; nil exempts nobody.
	Bypass middleware.AllowFunc
}

func (g Guard) Limit(perMinute int, key middleware.KeyFunc) gin.HandlerFunc {
	return middleware.RateLimit(g.Redis, perMinute, time.Minute, key, g.Bypass)
}

// Protected returns a group under path that requires a session and applies the per-user limit.
func (g Guard) Protected(rg *gin.RouterGroup, path string) *gin.RouterGroup {
	return rg.Group(path, g.Auth, g.Limit(300, middleware.KeyByUserID("api")))
}
