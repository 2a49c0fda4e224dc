package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/utils"
)

// AuthMiddleware checks the bearer token and, when roles are given,
// enforces them. The secret is injected once at wiring time.
func AuthMiddleware(secret string, requiredRoles ...entity.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": "missing or invalid token"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("userType", claims.UserType)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if entity.UserType(claims.UserType) == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.JSON(http.StatusForbidden, gin.H{"error": true, "message": "forbidden"})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
