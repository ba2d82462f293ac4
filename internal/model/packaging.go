package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Packaging is a priced physical packaging unit — a cost leaf like Material.
type Packaging struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string          `gorm:"uniqueIndex;not null"`
	Type      string          `gorm:"index;not null"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
