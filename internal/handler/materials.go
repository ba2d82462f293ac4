package handler

import (
	"net/http"

	"bakecost/internal/apierror"
	"bakecost/internal/dto"
	"bakecost/internal/service"

	"github.com/gin-gonic/gin"
)

type MaterialsHandler struct{ svc service.MaterialService }

func NewMaterialsHandler(svc service.MaterialService) *MaterialsHandler {
	return &MaterialsHandler{svc: svc}
}

// Create godoc
// @Summary      Create a material
// @Description  Registers a raw material priced per gram. Name must be unique within its category.
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateMaterialRequest true "Material"
// @Success      201  {object} dto.MaterialResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/materials [post]
func (h *MaterialsHandler) Create(c *gin.Context) {
	var req dto.CreateMaterialRequest
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
// @Summary      Get a material
// @Tags         materials
// @Produce      json
// @Param        id path string true "Material UUID"
// @Success      200 {object} dto.MaterialResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/materials/{id} [get]
func (h *MaterialsHandler) Get(c *gin.Context) {
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
// @Summary      List materials
// @Tags         materials
// @Produce      json
// @Param        name     query string false "Name substring filter"
// @Param        category query string false "Exact category filter"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Page size (default 50)"
// @Success      200 {object} dto.MaterialListResponse
// @Router       /v1/materials [get]
func (h *MaterialsHandler) List(c *gin.Context) {
	var filter dto.MaterialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list materials"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a material
// @Description  Partial update. Price changes propagate to every derived recipe and product cost on their next read.
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id   path string true "Material UUID"
// @Param        body body dto.UpdateMaterialRequest true "Fields to update"
// @Success      200 {object} dto.MaterialResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/materials/{id} [put]
func (h *MaterialsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateMaterialRequest
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
// @Summary      Delete a material
// @Description  Removes the material and its nutrition facts. Recipes referencing it keep their rows; those rows contribute zero cost.
// @Tags         materials
// @Param        id path string true "Material UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/materials/{id} [delete]
func (h *MaterialsHandler) Delete(c *gin.Context) {
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
