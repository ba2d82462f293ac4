package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMaterialRequest struct {
	Name         string          `json:"name"           validate:"required,min=1,max=120"`
	Category     string          `json:"category"       validate:"required,max=80"`
	PricePerGram decimal.Decimal `json:"price_per_gram" validate:"min=0"`
}

type UpdateMaterialRequest struct {
	Name         *string          `json:"name"           validate:"omitempty,min=1,max=120"`
	Category     *string          `json:"category"       validate:"omitempty,max=80"`
	PricePerGram *decimal.Decimal `json:"price_per_gram" validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type MaterialFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MaterialResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	PricePerGram decimal.Decimal `json:"price_per_gram"`
}

type MaterialListResponse struct {
	Data  []MaterialResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
