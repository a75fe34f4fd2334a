package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/auth"
)

const SessionKey = "session"

// Authenticator resolves a bearer token to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Session, error)
}

// RequireSession rejects requests without a valid bearer token and stores
// the session in the Gin context. Only auth.ErrInvalidToken is answered
// with 401; any other failure means the session backend is unavailable.
func RequireSession(a Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		sess, err := a.Authenticate(c.Request.Context(), token)
		if errors.Is(err, auth.ErrInvalidToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		if err != nil {
			log.Error("Error authenticating session", zap.Error(err), zap.String("correlation_id", GetCorrelationID(c)))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to check session"})
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// GetSession retrieves the session stored by RequireSession.
func GetSession(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return auth.Session{}, false
	}
	sess, ok := v.(auth.Session)
	return sess, ok
}

func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
