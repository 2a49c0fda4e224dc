package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/entity"
)

// CurrentUserID returns the authenticated user id, 0 if absent.
func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

// CurrentUserType returns the authenticated role, "" if absent.
func CurrentUserType(c *gin.Context) entity.UserType {
	if v, ok := c.Get("userType"); ok {
		if s, ok := v.(string); ok {
			return entity.UserType(s)
		}
		if t, ok := v.(entity.UserType); ok {
			return t
		}
	}
	return ""
}
