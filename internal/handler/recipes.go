package handler

import (
	"net/http"

	"bakecost/internal/apierror"
	"bakecost/internal/dto"
	"bakecost/internal/service"

	"github.com/gin-gonic/gin"
)

// RecipesHandler splits reads and writes: writes go through RecipeService,
// reads through CostingService so every GET carries freshly derived costs.
type RecipesHandler struct {
	svc     service.RecipeService
	costing service.CostingService
}

func NewRecipesHandler(svc service.RecipeService, costing service.CostingService) *RecipesHandler {
	return &RecipesHandler{svc: svc, costing: costing}
}

// Create godoc
// @Summary      Create a recipe
// @Description  Creates a recipe with its ingredient rows. Returns the derived cost view.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateRecipeRequest true "Recipe"
// @Success      201 {object} dto.RecipeCostView
// @Failure      409 {object} apierror.APIError
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/recipes [post]
func (h *RecipesHandler) Create(c *gin.Context) {
	var req dto.CreateRecipeRequest
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
// @Summary      Get a recipe with derived costs
// @Description  Total, per-portion, and per-gram costs are recomputed from current material prices on every call.
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe UUID"
// @Success      200 {object} dto.RecipeCostView
// @Failure      404 {object} apierror.APIError
// @Router       /v1/recipes/{id} [get]
func (h *RecipesHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.costing.ResolveRecipe(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List recipes with derived costs
// @Tags         recipes
// @Produce      json
// @Param        name     query string false "Name substring filter"
// @Param        category query string false "Exact category filter"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Page size (default 50)"
// @Success      200 {object} dto.RecipeCostListResponse
// @Router       /v1/recipes [get]
func (h *RecipesHandler) List(c *gin.Context) {
	var filter dto.RecipeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.costing.ResolveAllRecipes(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list recipes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a recipe
// @Description  Partial update. Passing ingredients replaces the full ingredient set.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id   path string true "Recipe UUID"
// @Param        body body dto.UpdateRecipeRequest true "Fields to update"
// @Success      200 {object} dto.RecipeCostView
// @Failure      404 {object} apierror.APIError
// @Router       /v1/recipes/{id} [put]
func (h *RecipesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateRecipeRequest
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
// @Summary      Delete a recipe
// @Description  Removes the recipe and its ingredient rows. Products referencing it keep their link rows; those contribute zero cost.
// @Tags         recipes
// @Param        id path string true "Recipe UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/recipes/{id} [delete]
func (h *RecipesHandler) Delete(c *gin.Context) {
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
