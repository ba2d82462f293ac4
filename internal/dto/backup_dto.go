package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ─── Snapshot write shape ────────────────────────────────────────────────────
// Cross-entity references are encoded by natural name, never by id, so a
// snapshot can be restored into a database whose ids differ from the source.

type Snapshot struct {
	Timestamp   string         `json:"timestamp"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Data        SnapshotData   `json:"data"`
	Statistics  map[string]int `json:"statistics"`
}

type SnapshotData struct {
	Materials      []SnapshotMaterial      `json:"materials"`
	Recipes        []SnapshotRecipe        `json:"recipes"`
	Packaging      []SnapshotPackaging     `json:"packaging"`
	Products       []SnapshotProduct       `json:"products"`
	CustomProducts []SnapshotCustomProduct `json:"customProducts"`
	NutritionFacts []SnapshotNutrition     `json:"nutritionFacts"`
}

type SnapshotMaterial struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	PricePerGram decimal.Decimal `json:"pricePerGram"`
}

// Ingredients are "MaterialName:quantityGrams" pairs.
type SnapshotRecipe struct {
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	TotalPortions    int             `json:"totalPortions"`
	TotalWeightGrams decimal.Decimal `json:"totalWeightGrams"`
	Ingredients      []string        `json:"ingredients"`
}

type SnapshotPackaging struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	UnitCost decimal.Decimal `json:"unitCost"`
}

type SnapshotProductRecipe struct {
	Recipe   string          `json:"recipe"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

type SnapshotPackagingRef struct {
	Packaging string `json:"packaging"`
	Quantity  int    `json:"quantity"`
}

type SnapshotProduct struct {
	Name             string                  `json:"name"`
	Category         string                  `json:"category"`
	SellingPrice     decimal.Decimal         `json:"sellingPrice"`
	ManagementFeePct decimal.Decimal         `json:"managementFeePercentage"`
	Recipes          []SnapshotProductRecipe `json:"recipes"`
	Packaging        []SnapshotPackagingRef  `json:"packaging"`
}

type SnapshotProductItem struct {
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
}

type SnapshotCustomProduct struct {
	Name             string                 `json:"name"`
	Category         string                 `json:"category"`
	SellingPrice     decimal.Decimal        `json:"sellingPrice"`
	ManagementFeePct decimal.Decimal        `json:"managementFeePercentage"`
	Items            []SnapshotProductItem  `json:"items"`
	Packaging        []SnapshotPackagingRef `json:"packaging"`
}

type SnapshotNutrition struct {
	Material string          `json:"material"`
	Calories decimal.Decimal `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Carbs    decimal.Decimal `json:"carbs"`
	Fat      decimal.Decimal `json:"fat"`
	Sugar    decimal.Decimal `json:"sugar"`
	Sodium   decimal.Decimal `json:"sodium"`
}

// ─── Snapshot read shape ─────────────────────────────────────────────────────
// The restore pipeline keeps each record raw so a malformed record is a
// per-record skip, not a whole-snapshot parse failure.

type RawSnapshotData struct {
	Materials      []json.RawMessage `json:"materials"`
	Recipes        []json.RawMessage `json:"recipes"`
	Packaging      []json.RawMessage `json:"packaging"`
	Products       []json.RawMessage `json:"products"`
	CustomProducts []json.RawMessage `json:"customProducts"`
	NutritionFacts []json.RawMessage `json:"nutritionFacts"`
}

// ─── Results ─────────────────────────────────────────────────────────────────

type RestoreCount struct {
	Restored int `json:"restored"`
	Total    int `json:"total"`
}

type RestoreResult struct {
	Materials      RestoreCount `json:"materials"`
	Packaging      RestoreCount `json:"packaging"`
	Recipes        RestoreCount `json:"recipes"`
	NutritionFacts RestoreCount `json:"nutritionFacts"`
	Products       RestoreCount `json:"products"`
	CustomProducts RestoreCount `json:"customProducts"`
}

type RestoreResponse struct {
	Message  string        `json:"message"`
	Restored RestoreResult `json:"restored"`
}

type BackupResult struct {
	Path       string         `json:"path"`
	Timestamp  string         `json:"timestamp"`
	Statistics map[string]int `json:"statistics"`
}

type RestoreRequest struct {
	Path string `json:"path"`
}

// ─── Excel import ────────────────────────────────────────────────────────────

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
