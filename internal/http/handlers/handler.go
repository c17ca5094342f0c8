package handlers

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"projectmanager/internal/domain"
	"projectmanager/internal/http/middleware"
	"projectmanager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	Auth     *service.AuthService
	Identity *service.IdentityResolver
	Projects *service.ProjectService
	Tasks    *service.TaskService
	Progress *service.ProgressService
}

func NewHandler(auth *service.AuthService, identity *service.IdentityResolver, projects *service.ProjectService, tasks *service.TaskService, progress *service.ProgressService) *Handler {
	registerValidators()
	return &Handler{
		Auth:     auth,
		Identity: identity,
		Projects: projects,
		Tasks:    tasks,
		Progress: progress,
	}
}

var validatorOnce sync.Once

// registerValidators adds the notblank and isodate rules and reports fields by
// their JSON name.
func registerValidators() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("isodate", isoDate)
	})
}

// isoDate accepts a yyyy-MM-dd date or a blank string.
func isoDate(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}

// currentUserID resolves the caller; on failure the error response is already written.
func (h *Handler) currentUserID(c *gin.Context) (int64, bool) {
	subject, _ := middleware.Subject(c)
	id, err := h.Identity.CurrentUserID(c.Request.Context(), subject)
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	return id, true
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondValidation(c, "Invalid path parameter", map[string]string{name: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
