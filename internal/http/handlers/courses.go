package handlers

import (
	"context"
	"net/http"
	"net/url"

	"devcamper/internal/domain/models"
	"devcamper/internal/services"

	"github.com/gin-gonic/gin"
)

type CourseService interface {
	List(ctx context.Context, values url.Values) (services.ListResult, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]models.Course, error)
	Get(ctx context.Context, id string) (services.CourseDetail, error)
	Create(ctx context.Context, bootcampID string, p models.CoursePayload) (models.Course, error)
	Update(ctx context.Context, id string, patch models.CoursePatch) (models.Course, error)
	Delete(ctx context.Context, id string) error
}

type CourseHandler struct {
	Service CourseService
}

// GET /api/v1/courses
// GET /api/v1/bootcamps/:id/courses
func (h CourseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if bootcampID := c.Param("id"); bootcampID != "" {
		list, err := h.Service.ListByBootcamp(ctx, bootcampID)
		if err != nil {
			fail(c, err)
			return
		}
		respondList(c, http.StatusOK, len(list), list)
		return
	}

	res, err := h.Service.List(ctx, c.Request.URL.Query())
	if err != nil {
		fail(c, err)
		return
	}
	count := res.Count
	c.JSON(http.StatusOK, Envelope{
		Success:    true,
		Count:      &count,
		Pagination: &res.Pagination,
		Data:       res.Data,
	})
}

// GET /api/v1/courses/:id
func (h CourseHandler) Get(c *gin.Context) {
	course, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusOK, course)
}

// POST /api/v1/bootcamps/:id/courses
func (h CourseHandler) Create(c *gin.Context) {
	var p models.CoursePayload
	if err := bindJSON(c, &p); err != nil {
		fail(c, err)
		return
	}
	course, err := h.Service.Create(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusCreated, course)
}

// PUT /api/v1/courses/:id
func (h CourseHandler) Update(c *gin.Context) {
	var patch models.CoursePatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, err)
		return
	}
	course, err := h.Service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusOK, course)
}

// DELETE /api/v1/courses/:id
func (h CourseHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}
