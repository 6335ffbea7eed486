package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cms-report-api/internal/models"
	appErrors "github.com/noah-isme/cms-report-api/pkg/errors"
	"github.com/noah-isme/cms-report-api/pkg/response"
)

// RequireRoles rejects requests whose session carries none of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[session.Role]; ok {
			c.Next()
			return
		}
		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
