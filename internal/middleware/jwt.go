package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cms-report-api/internal/models"
	appErrors "github.com/noah-isme/cms-report-api/pkg/errors"
	"github.com/noah-isme/cms-report-api/pkg/response"
)

// ContextSessionKey is the gin context key storing the caller's session.
const ContextSessionKey = "session"

type sessionParser interface {
	ParseSession(token string) (models.Session, error)
}

// JWT protects routes by requiring a valid bearer token.
func JWT(tokens sessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		session, err := tokens.ParseSession(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// SessionFromContext returns the session stored by JWT.
func SessionFromContext(c *gin.Context) (models.Session, bool) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := value.(models.Session)
	return session, ok
}
