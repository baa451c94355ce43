package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"taskhub/internal/model"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const userContextKey = "currentUser"

// AuthMiddleware authenticates every request from its Authorization
// header. A missing or garbled header is 401; a token that fails
// verification (or a deactivated account) is 403; a store failure is
// 500. The resolved user is stored in the gin context.
func AuthMiddleware(identity *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Access token required", ""))
			return
		}
		user, err := identity.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrUserInactive) {
				c.AbortWithStatusJSON(http.StatusForbidden, model.NewErrorResponse("Invalid or expired token", ""))
				return
			}
			logrus.WithError(err).Error("authentication failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, model.NewErrorResponse("Server error", ""))
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware, or
// nil on an unauthenticated route.
func CurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(userContextKey); exists {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// RequestTimeout bounds every downstream store and provider call by the
// configured deadline so an unreachable dependency fails the request
// instead of hanging it.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(authz string) (string, bool) {
	parts := strings.Fields(authz)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
