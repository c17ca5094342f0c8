// Package apierr writes the JSON error body shared by handlers and middleware.
package apierr

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Body struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func New(c *gin.Context, status int, message string, fields map[string]string) Body {
	return Body{
		Timestamp:        time.Now().UTC(),
		Status:           status,
		Error:            http.StatusText(status),
		Message:          message,
		Path:             c.Request.URL.Path,
		ValidationErrors: fields,
	}
}

func Write(c *gin.Context, status int, message string, fields map[string]string) {
	c.JSON(status, New(c, status, message, fields))
}

func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, New(c, status, message, nil))
}
