package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe is a weighted combination of materials producing a fixed total
// weight and portion count. Costs are never stored — they are recomputed
// from the ingredient rows on every read.
type Recipe struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string          `gorm:"uniqueIndex;not null"`
	Category         string          `gorm:"index;not null"`
	TotalPortions    int             `gorm:"not null;default:1"`
	TotalWeightGrams decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient links a recipe to a material with a quantity in grams.
// Rows with quantity <= 0 may exist (soft invalidation) but never
// contribute to cost sums.
type RecipeIngredient struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipeID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	MaterialID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	QuantityGrams decimal.Decimal `gorm:"type:decimal(12,3);not null"`

	Material *Material `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
}
