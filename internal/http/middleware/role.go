package middleware

import (
	"net/http"
	"strings"

	"devcamper/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets through requests whose role (set by RequireAuth)
// is one of allowedRoles.
//
//	r.POST("/bootcamps", RequireAuth(secret), RequireRoles("publisher", "admin"), handler)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(userRoleKey)
		if role == "" {
			abortWith(c, domain.NewStatusError(http.StatusUnauthorized, "Not authorized to access this route"))
			return
		}

		if _, ok := allowed[strings.ToLower(strings.TrimSpace(role))]; !ok {
			abortWith(c, domain.NewStatusError(http.StatusForbidden, "User role %s is not authorized to access this route", role))
			return
		}

		c.Next()
	}
}
