package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gymunity/backend/auth"
	"github.com/gymunity/backend/model"
	"github.com/gymunity/backend/utils"
	"gorm.io/gorm"
)

const userKey = "current_user"

// RequestId tags every request/response pair with a unique id for log
// correlation. An id supplied by the caller is passed through.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader("X-Request-Id")
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Set("request_id", requestId)
		c.Writer.Header().Set("X-Request-Id", requestId)
		c.Next()
	}
}

// JWT fetches the bearer credential from the Authorization header, verifies
// it and loads the matching user onto the request context. It aborts with
// 401 on a missing, malformed or expired token, or when the user no longer
// exists.
func JWT(db *gorm.DB, cfg auth.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid auth scheme"})
			return
		}

		claims, err := auth.ParseToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token payload"})
			return
		}

		var user model.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "User not found"})
			return
		}

		c.Set(userKey, &user)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user holds one of the
// given roles. Must run after JWT.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !utils.ContainsString(roles, user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Insufficient role"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by the JWT middleware, or nil for an
// unauthenticated request.
func CurrentUser(c *gin.Context) *model.User {
	if value, ok := c.Get(userKey); ok {
		if user, ok := value.(*model.User); ok {
			return user
		}
	}
	return nil
}
