package handlers

import (
	"context"
	"net/http"

	"devcamper/internal/domain"

	"github.com/gin-gonic/gin"
)

const dbUnavailable = "Database is not reachable"

type SystemHandler struct {
	// Ping checks the document store; nil reports the store as unchecked.
	Ping func(ctx context.Context) error
	// Routes lists the registered routes, usually gin.Engine.Routes.
	Routes func() gin.RoutesInfo
}

// GET /api/v1/health
func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
}

// GET /api/v1/db-check
func (h SystemHandler) DBCheck(c *gin.Context) {
	if h.Ping == nil {
		fail(c, domain.NewStatusError(http.StatusServiceUnavailable, dbUnavailable))
		return
	}
	if err := h.Ping(c.Request.Context()); err != nil {
		fail(c, domain.StatusError{Status: http.StatusServiceUnavailable, Msg: dbUnavailable, Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "database connection OK"})
}

// GET /api/v1/routes
func (h SystemHandler) ListRoutes(c *gin.Context) {
	if h.Routes == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []gin.H{}})
		return
	}
	routes := h.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(out), "data": out})
}
