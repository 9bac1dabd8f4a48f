package auth

import (
	"errors"
	"net/http"

	"realty-marketplace/internal/models"
	"realty-marketplace/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

// RequireAuth rejects requests without a valid bearer token and places
// the authenticated Actor in the request context.
func RequireAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := svc.Parse(c.GetHeader("Authorization"))
		if errors.Is(err, jwt.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(actorKey, policy.Actor{ID: claims.Subject, Role: models.Role(claims.Role)})
		c.Next()
	}
}

// OptionalAuth resolves a valid token to its Actor and treats
// everything else as anonymous. Public read endpoints use this so the
// owner-visibility rule applies when a signed-in agent browses.
func OptionalAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			if claims, err := svc.Parse(header); err == nil {
				c.Set(actorKey, policy.Actor{ID: claims.Subject, Role: models.Role(claims.Role)})
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentActor(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// CurrentActor returns the request's actor, anonymous if none was set.
func CurrentActor(c *gin.Context) policy.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(policy.Actor); ok {
			return a
		}
	}
	return policy.Anonymous()
}
