package handler

import (
	"net/http"

	"bakecost/internal/apierror"
	"bakecost/internal/dto"
	"bakecost/internal/service"

	"github.com/gin-gonic/gin"
)

type PackagingHandler struct{ svc service.PackagingService }

func NewPackagingHandler(svc service.PackagingService) *PackagingHandler {
	return &PackagingHandler{svc: svc}
}

// Create godoc
// @Summary      Create a packaging unit
// @Tags         packaging
// @Accept       json
// @Produce      json
// @Param        body body dto.CreatePackagingRequest true "Packaging"
// @Success      201 {object} dto.PackagingResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/packaging [post]
func (h *PackagingHandler) Create(c *gin.Context) {
	var req dto.CreatePackagingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Get a packaging unit
// @Tags         packaging
// @Produce      json
// @Param        id path string true "Packaging UUID"
// @Success      200 {object} dto.PackagingResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/packaging/{id} [get]
func (h *PackagingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List packaging units
// @Tags         packaging
// @Produce      json
// @Param        name  query string false "Name substring filter"
// @Param        type  query string false "Exact type filter"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Page size (default 50)"
// @Success      200 {object} dto.PackagingListResponse
// @Router       /v1/packaging [get]
func (h *PackagingHandler) List(c *gin.Context) {
	var filter dto.PackagingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list packaging"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a packaging unit
// @Tags         packaging
// @Accept       json
// @Produce      json
// @Param        id   path string true "Packaging UUID"
// @Param        body body dto.UpdatePackagingRequest true "Fields to update"
// @Success      200 {object} dto.PackagingResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/packaging/{id} [put]
func (h *PackagingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdatePackagingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a packaging unit
// @Tags         packaging
// @Param        id path string true "Packaging UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/packaging/{id} [delete]
func (h *PackagingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
