package api

import (
	"context"
	stdhttp "net/http"

	intconfig "devcamper/internal/config"
	h "devcamper/internal/http/handlers"
	"devcamper/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Env       intconfig.Env
	Log       zerolog.Logger
	Bootcamps h.BootcampService
	Courses   h.CourseService
	// Registry receives the HTTP metrics; nil disables /metrics.
	Registry *prometheus.Registry
	Ping     func(ctx context.Context) error
}

func NewRouter(d Deps) *gin.Engine {
	h.RegisterValidation()

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		d.Log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.Use(middleware.RequestID(d.Log), middleware.Logger(), h.Recovery())
	if d.Registry != nil {
		r.Use(middleware.NewMetrics(d.Registry).Handler())
	}
	// ErrorHandler must wrap every middleware that reports through c.Error.
	r.Use(
		h.ErrorHandler(),
		middleware.CORS(d.Env.CORSAllowedOrigins),
		middleware.RateLimit(d.Env.RateLimitPerMinute, d.Env.RateLimitBurst),
		middleware.Timeout(d.Env.RequestTimeout),
	)

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, h.Envelope{Success: false, Error: "Route not found"})
	})

	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	system := h.SystemHandler{Ping: d.Ping, Routes: r.Routes}
	bootcamps := h.BootcampHandler{Service: d.Bootcamps}
	courses := h.CourseHandler{Service: d.Courses}

	write := writeGuard(d.Env.JWTSecret)

	api := r.Group("/api/v1")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)
		api.GET("/routes", system.ListRoutes)

		bc := api.Group("/bootcamps")
		bc.GET("", bootcamps.List)
		bc.POST("", append(write, bootcamps.Create)...)
		bc.GET("/radius/:zipcode/:distance", bootcamps.InRadius)
		bc.GET("/:id", bootcamps.Get)
		bc.PUT("/:id", append(write, bootcamps.Update)...)
		bc.DELETE("/:id", append(write, bootcamps.Delete)...)

		// nested courses share the bootcamp :id wildcard
		bc.GET("/:id/courses", courses.List)
		bc.POST("/:id/courses", append(write, courses.Create)...)

		cs := api.Group("/courses")
		cs.GET("", courses.List)
		cs.GET("/:id", courses.Get)
		cs.PUT("/:id", append(write, courses.Update)...)
		cs.DELETE("/:id", append(write, courses.Delete)...)
	}

	return r
}

// writeGuard protects mutating routes when a signing secret is configured.
func writeGuard(secret string) []gin.HandlerFunc {
	if secret == "" {
		return nil
	}
	return []gin.HandlerFunc{
		middleware.RequireAuth(secret),
		middleware.RequireRoles("publisher", "admin"),
	}
}
