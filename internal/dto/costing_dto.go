package dto

import "github.com/shopspring/decimal"

// Cost views returned by the costing service. Every field is recomputed
// from current child state on each call — none of these values are stored.

type IngredientCostLine struct {
	MaterialID    string          `json:"material_id"`
	MaterialName  string          `json:"material_name"`
	QuantityGrams decimal.Decimal `json:"quantity_grams"`
	PricePerGram  decimal.Decimal `json:"price_per_gram"`
	Cost          decimal.Decimal `json:"cost"`
}

type RecipeCostView struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Category         string               `json:"category"`
	TotalPortions    int                  `json:"total_portions"`
	TotalWeightGrams decimal.Decimal      `json:"total_weight_grams"`
	Ingredients      []IngredientCostLine `json:"ingredients"`
	TotalCost        decimal.Decimal      `json:"total_cost"`
	CostPerPortion   decimal.Decimal      `json:"cost_per_portion"`
	CostPerGram      decimal.Decimal      `json:"cost_per_gram"`
}

type RecipeCostListResponse struct {
	Data  []RecipeCostView `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type RecipeCostLine struct {
	RecipeID   string          `json:"recipe_id"`
	RecipeName string          `json:"recipe_name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Cost       decimal.Decimal `json:"cost"`
}

type PackagingCostLine struct {
	PackagingID   string          `json:"packaging_id"`
	PackagingName string          `json:"packaging_name"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Cost          decimal.Decimal `json:"cost"`
}

type ProductCostView struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Category         string              `json:"category"`
	SellingPrice     decimal.Decimal     `json:"selling_price"`
	ManagementFeePct decimal.Decimal     `json:"management_fee_pct"`
	Recipes          []RecipeCostLine    `json:"recipes"`
	Packaging        []PackagingCostLine `json:"packaging"`
	RecipeCost       decimal.Decimal     `json:"recipe_cost"`
	PackagingCost    decimal.Decimal     `json:"packaging_cost"`
	TotalCost        decimal.Decimal     `json:"total_cost"`
	ManagementFee    decimal.Decimal     `json:"management_fee"`
	AdjustedCost     decimal.Decimal     `json:"adjusted_cost"`
	Profit           decimal.Decimal     `json:"profit"`
	ProfitMargin     decimal.Decimal     `json:"profit_margin"`
}

type ProductCostListResponse struct {
	Data  []ProductCostView `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type ProductItemCostLine struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	AdjustedCost decimal.Decimal `json:"adjusted_cost"`
	Cost         decimal.Decimal `json:"cost"`
}

type CustomProductCostView struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	Category         string                `json:"category"`
	SellingPrice     decimal.Decimal       `json:"selling_price"`
	ManagementFeePct decimal.Decimal       `json:"management_fee_pct"`
	Items            []ProductItemCostLine `json:"items"`
	Packaging        []PackagingCostLine   `json:"packaging"`
	ItemCost         decimal.Decimal       `json:"item_cost"`
	PackagingCost    decimal.Decimal       `json:"packaging_cost"`
	TotalCost        decimal.Decimal       `json:"total_cost"`
	ManagementFee    decimal.Decimal       `json:"management_fee"`
	AdjustedCost     decimal.Decimal       `json:"adjusted_cost"`
	Profit           decimal.Decimal       `json:"profit"`
	ProfitMargin     decimal.Decimal       `json:"profit_margin"`
}

type CustomProductCostListResponse struct {
	Data  []CustomProductCostView `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}
