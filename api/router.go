package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rohitmenonhart-xhunter/starweb-p1/api/handler"
	"github.com/rohitmenonhart-xhunter/starweb-p1/api/middleware"
	"github.com/rohitmenonhart-xhunter/starweb-p1/cache"
	"github.com/rohitmenonhart-xhunter/starweb-p1/config"
)

// NewRouter creates a configured Gin engine with all routes and
// middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → RequestID
//	Routes:  Auth (if keys configured) → RateLimit
//
// Health is intentionally outside auth so monitoring probes always
// work.
func NewRouter(p handler.Pipeline, s handler.Solver, pr handler.PoolReporter, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())

	r.GET("/health", handler.Health(pr, startTime))

	protected := r.Group("")
	protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/analyze", handler.Analyze(p, cc, handler.WebhookSink{
		URL:    cfg.Webhook.URL,
		Secret: cfg.Webhook.Secret,
	}))
	protected.POST("/api/generate-solution", handler.GenerateSolution(s))
	protected.POST("/api/locate-issue", handler.LocateIssue())

	return r
}
