package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maaz2022/ourtracker/internal/common"
	"github.com/maaz2022/ourtracker/internal/server/auth"
	"github.com/maaz2022/ourtracker/internal/server/services"
)

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// accessToken reads "Authorization: Bearer <token>" or the session cookie.
func accessToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if v, err := c.Cookie(common.SessionCookieName); err == nil {
		return v
	}
	return ""
}

// sessionMiddleware attaches the caller's session to the request context
// when a valid access token is present. Invalid tokens are ignored here.
func (s *HTTPServer) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := s.authenticator.Authenticate(token)
		if err != nil {
			s.logger.Warn(c.Request.Context(), "ignoring invalid access token", "err", err)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), claims))
		c.Next()
	}
}

func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.SessionFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": services.ErrUnauthenticated.Error()})
			return
		}
		c.Next()
	}
}
