package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"projectmanager/internal/http/apierr"
	"projectmanager/internal/logger"
	"projectmanager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const unexpectedMessage = "Unexpected error occurred"

// respondError maps a service error to its status. Unknown errors are logged
// and answered with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		apierr.Write(c, http.StatusUnauthorized, "Unauthenticated", nil)
	case errors.Is(err, service.ErrForbidden):
		apierr.Write(c, http.StatusForbidden, "Access denied", nil)
	case errors.Is(err, service.ErrUserNotFound):
		apierr.Write(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, service.ErrProjectNotFound):
		apierr.Write(c, http.StatusNotFound, "Project not found", nil)
	case errors.Is(err, service.ErrTaskNotFound):
		apierr.Write(c, http.StatusNotFound, "Task not found", nil)
	case errors.Is(err, service.ErrEmailTaken):
		apierr.Write(c, http.StatusBadRequest, "Email already used", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		apierr.Write(c, http.StatusBadRequest, "Invalid credentials", nil)
	case errors.Is(err, service.ErrPasswordTooLong):
		// max=72 counts runes, the hasher counts bytes
		respondValidation(c, "Validation failed", map[string]string{"password": "size must be at most 72 bytes"})
	default:
		logger.WithContext(c.Request.Context()).Error("request failed", "error", err, "path", c.Request.URL.Path)
		apierr.Write(c, http.StatusInternalServerError, unexpectedMessage, nil)
	}
}

func respondValidation(c *gin.Context, message string, fields map[string]string) {
	apierr.Write(c, http.StatusBadRequest, message, fields)
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondValidation(c, "Malformed request body", nil)
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	respondValidation(c, "Validation failed", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "max":
		return fmt.Sprintf("size must be at most %s", fe.Param())
	case "isodate":
		return "must be a date in yyyy-MM-dd format"
	default:
		return "is invalid"
	}
}
