package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emberdate/emberdate/internal/domain/entity"
	repo "github.com/emberdate/emberdate/internal/domain/repository"
	"github.com/emberdate/emberdate/pkg/helpers"
)

const (
	CtxUserKey   = "user"
	CtxUserIDKey = "userID"
)

// Auth validates the bearer token and re-resolves the user from the store by
// the token's email claim on every request. The full user record goes into
// the Gin context so handlers never reach for ambient session state.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Unauthorized"})
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Unauthorized"})
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), claims.Email)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Unauthorized"})
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the Gin context.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}
