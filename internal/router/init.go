package router

import (
	"context"

	"github.com/nexcruit/ats-backend/internal/container"
	handlers "github.com/nexcruit/ats-backend/internal/interface/http"
	"github.com/nexcruit/ats-backend/internal/interface/middleware"
	"github.com/nexcruit/ats-backend/internal/router/modules"
)

// InitModules builds the handlers from the container and registers every module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	guard := modules.Guard{
		Redis: c.Infra.Redis,
		Auth:  middleware.Auth(c.Auth, c.JWT),
	}
	if cidrs := cfg.RateLimitAllowCIDRs(); len(cidrs) > 0 {
		guard.Bypass = middleware.AllowCIDRs(cidrs...)
	}

	authH := handlers.NewAuthHandler(c.Auth, cfg.CookieDomain, cfg.CookieSecure, c.Logger)
	userH := handlers.NewUserHandler(c.Auth)
	offerH := handlers.NewOfferHandler(c.Offers)
	feedbackH := &handlers.FeedbackHandler{
		Comments:       c.Comments,
		Sections:       c.Sections,
		Assessments:    c.Assessments,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}

	r.Add(modules.NewAuthModule(authH, userH, guard))
	r.Add(modules.NewAccountModule(authH, userH, guard))
	r.Add(&modules.CandidateModule{
		Candidates: handlers.NewCandidateHandler(c.Candidates, cfg.MaxUploadBytes),
		Letters:    handlers.NewLetterHandler(c.Letters),
		Offers:     offerH,
		Feedback:   feedbackH,
		Guard:      guard,
	})
	r.Add(&modules.InterviewModule{Handler: handlers.NewInterviewHandler(c.Interviews), Guard: guard})
	r.Add(&modules.DocumentModule{
		Templates: handlers.NewTemplateHandler(c.Templates),
		Offers:    offerH,
		Feedback:  feedbackH,
		Guard:     guard,
	})
	r.Add(&modules.StatsModule{Handler: &handlers.StatsHandler{Stats: c.Stats, Export: c.Export}, Guard: guard})
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(guard))
	}

	root := &modules.RootModule{Health: healthHandler(c), Swagger: cfg.SwaggerEnabled}
	if c.LocalUploads() {
		root.UploadDir = cfg.UploadDir
	}
	r.AddRoot(root)
}

func healthHandler(c *container.Container) *handlers.HealthHandler {
	checks := map[string]handlers.Pinger{"mongo": c.Infra.Mongo.Ping}
	if c.Infra.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return c.Infra.Redis.Ping(ctx).Err() }
	}
	if c.Infra.Audit != nil {
		checks["audit"] = c.Infra.Audit.Ping
	}
	return &handlers.HealthHandler{Checks: checks}
}
