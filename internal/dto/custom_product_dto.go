package dto

import "github.com/shopspring/decimal"

type CustomProductItemInput struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"gt=0"`
}

type CreateCustomProductRequest struct {
	Name             string                   `json:"name"               validate:"required,min=1,max=120"`
	Category         string                   `json:"category"           validate:"required,max=80"`
	SellingPrice     decimal.Decimal          `json:"selling_price"      validate:"min=0"`
	ManagementFeePct decimal.Decimal          `json:"management_fee_pct" validate:"min=0,max=100"`
	Items            []CustomProductItemInput `json:"items"              validate:"dive"`
	Packaging        []PackagingLinkInput     `json:"packaging"          validate:"dive"`
}

type UpdateCustomProductRequest struct {
	Name             *string                  `json:"name"               validate:"omitempty,min=1,max=120"`
	Category         *string                  `json:"category"           validate:"omitempty,max=80"`
	SellingPrice     *decimal.Decimal         `json:"selling_price"      validate:"omitempty,min=0"`
	ManagementFeePct *decimal.Decimal         `json:"management_fee_pct" validate:"omitempty,min=0,max=100"`
	Items            []CustomProductItemInput `json:"items"              validate:"omitempty,dive"`
	Packaging        []PackagingLinkInput     `json:"packaging"          validate:"omitempty,dive"`
}

type CustomProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=500"`
}
