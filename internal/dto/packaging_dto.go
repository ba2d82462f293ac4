package dto

import "github.com/shopspring/decimal"

type CreatePackagingRequest struct {
	Name     string          `json:"name"      validate:"required,min=1,max=120"`
	Type     string          `json:"type"      validate:"required,max=80"`
	UnitCost decimal.Decimal `json:"unit_cost" validate:"min=0"`
}

type UpdatePackagingRequest struct {
	Name     *string          `json:"name"      validate:"omitempty,min=1,max=120"`
	Type     *string          `json:"type"      validate:"omitempty,max=80"`
	UnitCost *decimal.Decimal `json:"unit_cost" validate:"omitempty,min=0"`
}

type PackagingFilter struct {
	Name  string `form:"name"`
	Type  string `form:"type"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type PackagingResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

type PackagingListResponse struct {
	Data  []PackagingResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
