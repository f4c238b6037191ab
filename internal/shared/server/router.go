package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wastesort-backend/internal/classify"
	"wastesort-backend/internal/shared/metrics"
	"wastesort-backend/internal/shared/server/middleware"
	"wastesort-backend/internal/shared/server/respond"
	"wastesort-backend/internal/uploads"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Env             string
	CORSAllowOrigin []string
	Classify        *classify.Handler
	Uploads         *uploads.Handler
	ClassifyLimit   middleware.RateLimitRule
}

// NewRouter assembles the gin engine with middleware and routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(deps.CORSAllowOrigin))

	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "ok"})
	})
	if deps.Env != "production" {
		r.GET("/metrics", metrics.Handler())
	}

	limiter := middleware.NewRateLimiter(nil)
	rule := deps.ClassifyLimit
	if rule.Rate <= 0 {
		rule = middleware.RateLimitRule{Rate: 1, Burst: 5}
	}

	api := r.Group("/api/v1")
	{
		api.POST("/classifications", middleware.RateLimit(limiter, rule), deps.Classify.Classify)
		if deps.Uploads != nil {
			api.POST("/uploads", deps.Uploads.Upload)
			api.GET("/files/*key", deps.Uploads.Serve)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Route not found", nil)
	})

	return r
}
