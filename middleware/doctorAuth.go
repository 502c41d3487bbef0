package middleware

import (
	"net/http"
	"strings"

	doctorRepo "medilink/database/repository/doctor"
	"medilink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// JWTAuthDoctorMiddleware validates a doctor bearer token. The token must
// verify and its hash must still be the one stored on the doctor record, so a
// revoked token dies immediately. The hash check is served from the auth
// cache when possible; Mongo is only hit on a cache miss, and the result is
// cached under the doctor's ID for subsequent requests.
func JWTAuthDoctorMiddleware(repo doctorRepo.DoctorRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		doctorID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		computedHash := utils.HashToken(tokenString)

		cacheKey := utils.AuthCachePrefix + doctorID
		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					// The stored token rotated since this one was issued.
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set("doctorID", doctorID)
				c.Next()
				return
			}
			if err != redis.Nil {
				utils.GetLogger().Warn("auth cache lookup failed, falling back to store",
					zap.Error(err))
			}
		}

		doctor, err := repo.GetByTokenHash(ctx, computedHash)
		if err != nil || doctor == nil || doctor.ID != doctorID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or doctor not found"})
			return
		}

		if authCache != nil {
			if err := authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("auth cache store failed", zap.Error(err))
			}
		}

		c.Set("doctorID", doctor.ID)
		c.Next()
	}
}
