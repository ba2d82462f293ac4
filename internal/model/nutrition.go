package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NutritionFacts holds per-100g nutrition values for a single material.
// Exactly one row per material; deleting the material deletes the row.
type NutritionFacts struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Calories   decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Protein    decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Carbs      decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Fat        decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Sugar      decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Sodium     decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Material *Material `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
}
