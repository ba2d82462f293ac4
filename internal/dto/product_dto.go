package dto

import "github.com/shopspring/decimal"

type ProductRecipeInput struct {
	RecipeID string          `json:"recipe_id" validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity"  validate:"gt=0"`
	Unit     string          `json:"unit"      validate:"required,oneof=portions grams"`
}

type PackagingLinkInput struct {
	PackagingID string `json:"packaging_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity"     validate:"min=1"`
}

type CreateProductRequest struct {
	Name             string               `json:"name"               validate:"required,min=1,max=120"`
	Category         string               `json:"category"           validate:"required,max=80"`
	SellingPrice     decimal.Decimal      `json:"selling_price"      validate:"min=0"`
	ManagementFeePct decimal.Decimal      `json:"management_fee_pct" validate:"min=0,max=100"`
	Recipes          []ProductRecipeInput `json:"recipes"            validate:"dive"`
	Packaging        []PackagingLinkInput `json:"packaging"          validate:"dive"`
}

type UpdateProductRequest struct {
	Name             *string              `json:"name"               validate:"omitempty,min=1,max=120"`
	Category         *string              `json:"category"           validate:"omitempty,max=80"`
	SellingPrice     *decimal.Decimal     `json:"selling_price"      validate:"omitempty,min=0"`
	ManagementFeePct *decimal.Decimal     `json:"management_fee_pct" validate:"omitempty,min=0,max=100"`
	Recipes          []ProductRecipeInput `json:"recipes"            validate:"omitempty,dive"`
	Packaging        []PackagingLinkInput `json:"packaging"          validate:"omitempty,dive"`
}

type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=500"`
}
