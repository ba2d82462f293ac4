package handler

import (
	"net/http"

	"bakecost/internal/apierror"
	"bakecost/internal/dto"
	"bakecost/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NutritionHandler struct{ svc service.NutritionService }

func NewNutritionHandler(svc service.NutritionService) *NutritionHandler {
	return &NutritionHandler{svc: svc}
}

// Upsert godoc
// @Summary      Create or replace nutrition facts for a material
// @Description  One row per material. Writing facts for a material that already has them replaces the existing row.
// @Tags         nutrition
// @Accept       json
// @Produce      json
// @Param        body body dto.UpsertNutritionRequest true "Per-100g nutrition values"
// @Success      200 {object} dto.NutritionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/nutrition [put]
func (h *NutritionHandler) Upsert(c *gin.Context) {
	var req dto.UpsertNutritionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get nutrition facts for a material
// @Tags         nutrition
// @Produce      json
// @Param        materialId path string true "Material UUID"
// @Success      200 {object} dto.NutritionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/nutrition/{materialId} [get]
func (h *NutritionHandler) Get(c *gin.Context) {
	mid, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid material id"))
		return
	}
	resp, err := h.svc.GetByMaterialID(c.Request.Context(), mid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List all nutrition facts
// @Tags         nutrition
// @Produce      json
// @Success      200 {array} dto.NutritionResponse
// @Router       /v1/nutrition [get]
func (h *NutritionHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list nutrition facts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete nutrition facts for a material
// @Tags         nutrition
// @Param        materialId path string true "Material UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/nutrition/{materialId} [delete]
func (h *NutritionHandler) Delete(c *gin.Context) {
	mid, err := uuid.Parse(c.Param("materialId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid material id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), mid); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
