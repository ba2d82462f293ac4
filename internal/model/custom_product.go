package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomProduct is a sellable bundle of other products plus packaging.
// Its ingredient cost term uses each product's adjusted cost (raw cost plus
// management fee), not the raw cost.
type CustomProduct struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string          `gorm:"uniqueIndex;not null"`
	Category         string          `gorm:"index;not null"`
	SellingPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ManagementFeePct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Items     []CustomProductItem          `gorm:"foreignKey:CustomProductID;constraint:OnDelete:CASCADE"`
	Packaging []CustomProductPackagingLink `gorm:"foreignKey:CustomProductID;constraint:OnDelete:CASCADE"`
}

// CustomProductItem links a custom product to a fully-resolved product.
type CustomProductItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomProductID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(12,3);not null"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// CustomProductPackagingLink attaches a packaging unit to a custom product.
type CustomProductPackagingLink struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomProductID uuid.UUID `gorm:"type:uuid;index;not null"`
	PackagingID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Quantity        int       `gorm:"not null;default:1"`

	Packaging *Packaging `gorm:"foreignKey:PackagingID;constraint:OnDelete:CASCADE"`
}
