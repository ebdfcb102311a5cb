package handlers

import (
	"context"
	"net/http"
	"net/url"

	"devcamper/internal/domain/models"
	"devcamper/internal/services"

	"github.com/gin-gonic/gin"
)

// BootcampService is what the bootcamp routes need from the service layer.
type BootcampService interface {
	List(ctx context.Context, values url.Values) (services.ListResult, error)
	Get(ctx context.Context, id string) (models.Bootcamp, error)
	Create(ctx context.Context, p models.BootcampPayload) (models.Bootcamp, error)
	Update(ctx context.Context, id string, patch models.BootcampPatch) (models.Bootcamp, error)
	Delete(ctx context.Context, id string) error
	InRadius(ctx context.Context, zipcode, distance string) ([]models.Bootcamp, error)
}

type BootcampHandler struct {
	Service BootcampService
}

// GET /api/v1/bootcamps?averageCost[lte]=1000&select=name&sort=-name&page=2&limit=10
func (h BootcampHandler) List(c *gin.Context) {
	res, err := h.Service.List(c.Request.Context(), c.Request.URL.Query())
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

// GET /api/v1/bootcamps/:id
func (h BootcampHandler) Get(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusOK, b)
}

// POST /api/v1/bootcamps
func (h BootcampHandler) Create(c *gin.Context) {
	var p models.BootcampPayload
	if err := bindJSON(c, &p); err != nil {
		fail(c, err)
		return
	}
	b, err := h.Service.Create(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusCreated, b)
}

// PUT /api/v1/bootcamps/:id
func (h BootcampHandler) Update(c *gin.Context) {
	var patch models.BootcampPatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, err)
		return
	}
	b, err := h.Service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusOK, b)
}

// DELETE /api/v1/bootcamps/:id
func (h BootcampHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{})
}

// GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h BootcampHandler) InRadius(c *gin.Context) {
	list, err := h.Service.InRadius(c.Request.Context(), c.Param("zipcode"), c.Param("distance"))
	if err != nil {
		fail(c, err)
		return
	}
	respondList(c, http.StatusOK, len(list), list)
}
