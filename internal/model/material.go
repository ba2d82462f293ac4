package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a raw ingredient priced per gram — the leaf of the cost chain.
// Name is unique within a category, not globally.
type Material struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"uniqueIndex:idx_material_name_category;not null"`
	Category     string          `gorm:"uniqueIndex:idx_material_name_category;not null"`
	PricePerGram decimal.Decimal `gorm:"type:decimal(14,6);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Nutrition *NutritionFacts `gorm:"foreignKey:MaterialID"`
}
