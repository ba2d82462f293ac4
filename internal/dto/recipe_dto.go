package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RecipeIngredientInput struct {
	MaterialID    string          `json:"material_id"    validate:"required,uuid"`
	QuantityGrams decimal.Decimal `json:"quantity_grams"`
}

// TotalPortions and TotalWeightGrams must be positive on create/update —
// zero-portion or zero-weight recipes are rejected at write time so the
// costing division guards never fire for data created through the API.
type CreateRecipeRequest struct {
	Name             string                  `json:"name"               validate:"required,min=1,max=120"`
	Category         string                  `json:"category"           validate:"required,max=80"`
	TotalPortions    int                     `json:"total_portions"     validate:"required,min=1"`
	TotalWeightGrams decimal.Decimal         `json:"total_weight_grams" validate:"required,gt=0"`
	Ingredients      []RecipeIngredientInput `json:"ingredients"        validate:"dive"`
}

type UpdateRecipeRequest struct {
	Name             *string                 `json:"name"               validate:"omitempty,min=1,max=120"`
	Category         *string                 `json:"category"           validate:"omitempty,max=80"`
	TotalPortions    *int                    `json:"total_portions"     validate:"omitempty,min=1"`
	TotalWeightGrams *decimal.Decimal        `json:"total_weight_grams" validate:"omitempty,gt=0"`
	Ingredients      []RecipeIngredientInput `json:"ingredients"        validate:"omitempty,dive"`
}

type RecipeFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=500"`
}
