// Package resp owns the wire envelope. Success responses nest the payload
// under a named key next to success:true; every error goes out as
// {error:true, message}. Error translates the apperr taxonomy and is the
// single place unexpected failures are converted to a generic 500.
package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/januaraliosada/super-delivery/pkg/apperr"
	"github.com/januaraliosada/super-delivery/pkg/logging"
)

func OK(c *gin.Context, key string, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, key: data})
}

func OKMessage(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func Created(c *gin.Context, key string, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, key: data})
}

func CreatedMessage(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusCreated, body)
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": message})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": true, "message": message})
}

// Translator maps service errors to the HTTP envelope. Debug controls
// whether unexpected error detail leaks to the client.
type Translator struct {
	Log   logging.Logger
	Debug bool
}

func (t *Translator) Error(c *gin.Context, err error) {
	if e := apperr.As(err); e != nil && e.Kind != apperr.KindInternal {
		c.JSON(e.HTTPStatus(), gin.H{"error": true, "message": e.Message})
		return
	}

	t.Log.Error("unexpected error", err, map[string]any{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	})
	message := "An internal server error occurred. Please try again later."
	if t.Debug {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": message})
}
