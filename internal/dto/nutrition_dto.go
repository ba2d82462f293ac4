package dto

import "github.com/shopspring/decimal"

// All values are per 100g of the material.
type UpsertNutritionRequest struct {
	MaterialID string          `json:"material_id" validate:"required,uuid"`
	Calories   decimal.Decimal `json:"calories"    validate:"min=0"`
	Protein    decimal.Decimal `json:"protein"     validate:"min=0"`
	Carbs      decimal.Decimal `json:"carbs"       validate:"min=0"`
	Fat        decimal.Decimal `json:"fat"         validate:"min=0"`
	Sugar      decimal.Decimal `json:"sugar"       validate:"min=0"`
	Sodium     decimal.Decimal `json:"sodium"      validate:"min=0"`
}

type NutritionResponse struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name,omitempty"`
	Calories     decimal.Decimal `json:"calories"`
	Protein      decimal.Decimal `json:"protein"`
	Carbs        decimal.Decimal `json:"carbs"`
	Fat          decimal.Decimal `json:"fat"`
	Sugar        decimal.Decimal `json:"sugar"`
	Sodium       decimal.Decimal `json:"sodium"`
}
