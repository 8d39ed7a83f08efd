package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jejakkarbon/plantid/internal/identity"
)

const identityKey = "plantid/identity"

// requireAuth validates the bearer token on every request and stores the
// resulting identity for the handler. Nothing is cached between requests.
func (s *Server) requireAuth(c *gin.Context) {
	token, err := identity.ParseBearer(c.GetHeader("Authorization"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": true, "message": "Unauthorized"})
		return
	}

	ident, err := s.identity.Verify(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, identity.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Expired authorization token"})
			return
		}
		s.logger.Debug("rejected request", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": true, "message": "Unauthorized"})
		return
	}

	c.Set(identityKey, ident)
	c.Next()
}

// identityFrom returns the identity stored by requireAuth. Only valid on
// routes behind the auth group.
func identityFrom(c *gin.Context) identity.Identity {
	return c.MustGet(identityKey).(identity.Identity)
}
