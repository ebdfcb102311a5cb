package handlers

import (
	"errors"
	"io"

	"devcamper/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool               `json:"success"`
	Count      *int               `json:"count,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	Data       any                `json:"data,omitempty"`
	Error      any                `json:"error,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func respondList(c *gin.Context, status int, count int, data any) {
	c.JSON(status, Envelope{Success: true, Count: &count, Data: data})
}

// fail hands err to the error translator; handlers never write error bodies.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// bindJSON decodes and validates the body into dst. Validation failures come
// back as a domain.ValidationError listing every violated field.
func bindJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return domain.NewValidationError("Request body is required")
	}
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return domain.ValidationError{Messages: validationMessages(verrs), Err: err}
	case errors.Is(err, io.EOF):
		return domain.ValidationError{Messages: []string{"Request body is required"}, Err: err}
	default:
		return domain.ValidationError{Messages: []string{"Invalid request body"}, Err: err}
	}
}
