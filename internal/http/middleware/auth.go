package middleware

import (
	"net/http"
	"strings"

	"devcamper/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// Claims are the JWT claims accepted on protected routes.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth verifies an HS256 bearer token signed with secret and stores
// the subject and role on the context. Failures go to the error translator.
func RequireAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			abortWith(c, domain.NewStatusError(http.StatusUnauthorized, "Not authorized to access this route"))
			return
		}

		claims := &Claims{}
		tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !tok.Valid {
			abortWith(c, domain.StatusError{Status: http.StatusUnauthorized, Msg: "Not authorized to access this route", Err: err})
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Set(userRoleKey, claims.Role)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, if RequireAuth ran.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	id := c.GetString(userIDKey)
	if id == "" {
		return domain.RequestContext{}, false
	}
	return domain.RequestContext{UserID: id, Role: c.GetString(userRoleKey)}, true
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
