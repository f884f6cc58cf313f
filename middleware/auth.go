package middleware

import (
	"context"
	"net/http"
	"strings"

	"stayfinder/models"
	"stayfinder/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// JWTAuthMiddleware verifies the bearer token and resolves the caller's role,
// consulting the auth cache before the user store. A nil cache disables caching.
func JWTAuthMiddleware(users UserLookup, cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthenticated(c, "No token, authorization denied")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			abortUnauthenticated(c, "Token is not valid")
			return
		}

		role, ok := cachedRole(c.Request.Context(), cache, userID)
		if !ok {
			u, err := users.GetByID(c.Request.Context(), userID)
			if err != nil {
				utils.GetLogger().Error("auth: user lookup failed", zap.String("userID", userID), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
				c.Abort()
				return
			}
			if u == nil {
				abortUnauthenticated(c, "Token is not valid")
				return
			}
			role = u.Role
			cacheRole(c.Request.Context(), cache, userID, role)
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: msg})
}

func cachedRole(ctx context.Context, cache *redis.Client, userID string) (models.Role, bool) {
	if cache == nil {
		return "", false
	}
	val, err := cache.Get(ctx, utils.AuthCachePrefix+userID).Result()
	if err != nil || val == "" {
		return "", false
	}
	return models.Role(val), true
}

func cacheRole(ctx context.Context, cache *redis.Client, userID string, role models.Role) {
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, utils.AuthCachePrefix+userID, string(role), utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("auth: cache write failed", zap.String("userID", userID), zap.Error(err))
	}
}

// UserID returns the authenticated caller set by JWTAuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// Role returns the authenticated caller's role.
func Role(c *gin.Context) models.Role {
	if v, ok := c.Get(ContextRole); ok {
		if r, ok := v.(models.Role); ok {
			return r
		}
	}
	return ""
}
