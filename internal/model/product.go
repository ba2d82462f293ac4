package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Units a ProductRecipe row can use to pick the recipe cost basis.
const (
	UnitPortions = "portions"
	UnitGrams    = "grams"
)

// Product is a sellable item composed of recipes and packaging, with a
// management-fee overhead and a selling price. All cost fields are derived
// at read time by the costing service.
type Product struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string          `gorm:"uniqueIndex;not null"`
	Category         string          `gorm:"index;not null"`
	SellingPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ManagementFeePct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Recipes   []ProductRecipe        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Packaging []ProductPackagingLink `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductRecipe selects which derived recipe cost basis a product uses:
// cost per portion or cost per gram, times Quantity.
type ProductRecipe struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID       `gorm:"type:uuid;index;not null"`
	RecipeID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit      string          `gorm:"not null;default:'portions'"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// ProductPackagingLink attaches a packaging unit to a product.
type ProductPackagingLink struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;index;not null"`
	PackagingID uuid.UUID `gorm:"type:uuid;index;not null"`
	Quantity    int       `gorm:"not null;default:1"`

	Packaging *Packaging `gorm:"foreignKey:PackagingID;constraint:OnDelete:CASCADE"`
}
