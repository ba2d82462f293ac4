package handler

import (
	"net/http"

	"bakecost/internal/apierror"
	"bakecost/internal/dto"
	"bakecost/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomProductsHandler struct {
	svc     service.CustomProductService
	costing service.CostingService
}

func NewCustomProductsHandler(svc service.CustomProductService, costing service.CostingService) *CustomProductsHandler {
	return &CustomProductsHandler{svc: svc, costing: costing}
}

// Create godoc
// @Summary      Create a custom product
// @Description  Creates a bundle of products plus packaging. Item costs use each product's adjusted cost (raw cost plus management fee).
// @Tags         custom-products
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateCustomProductRequest true "Custom product"
// @Success      201 {object} dto.CustomProductCostView
// @Failure      409 {object} apierror.APIError
// @Router       /v1/custom-products [post]
func (h *CustomProductsHandler) Create(c *gin.Context) {
	var req dto.CreateCustomProductRequest
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
// @Summary      Get a custom product with derived costs
// @Tags         custom-products
// @Produce      json
// @Param        id path string true "Custom product UUID"
// @Success      200 {object} dto.CustomProductCostView
// @Failure      404 {object} apierror.APIError
// @Router       /v1/custom-products/{id} [get]
func (h *CustomProductsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.costing.ResolveCustomProduct(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List custom products with derived costs
// @Tags         custom-products
// @Produce      json
// @Param        name     query string false "Name substring filter"
// @Param        category query string false "Exact category filter"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Page size (default 50)"
// @Success      200 {object} dto.CustomProductCostListResponse
// @Router       /v1/custom-products [get]
func (h *CustomProductsHandler) List(c *gin.Context) {
	var filter dto.CustomProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.costing.ResolveAllCustomProducts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list custom products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a custom product
// @Description  Partial update. Passing items or packaging replaces the full set.
// @Tags         custom-products
// @Accept       json
// @Produce      json
// @Param        id   path string true "Custom product UUID"
// @Param        body body dto.UpdateCustomProductRequest true "Fields to update"
// @Success      200 {object} dto.CustomProductCostView
// @Failure      404 {object} apierror.APIError
// @Router       /v1/custom-products/{id} [put]
func (h *CustomProductsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomProductRequest
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
// @Summary      Delete a custom product
// @Tags         custom-products
// @Param        id path string true "Custom product UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/custom-products/{id} [delete]
func (h *CustomProductsHandler) Delete(c *gin.Context) {
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
