package httpserver

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"handcrafted-haven/internal/domain"
	usersvc "handcrafted-haven/internal/service/user"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, usersvc.ErrInvalidCredentials), errors.Is(err, usersvc.ErrInvalidToken):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func (h *handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Printf("http: %s %s error=%v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// bindJSON decodes the body into req and runs its binding tags. On failure it
// writes a 400 naming the first offending json field.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		badRequest(c, fieldMessage(fields[0]))
		return false
	}
	badRequest(c, "invalid request body")
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	}
	return fe.Field() + " is invalid"
}

var jsonFieldNames sync.Once

// useJSONFieldNames makes validation errors report json keys instead of Go field names.
func useJSONFieldNames() {
	jsonFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
