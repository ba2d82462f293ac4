package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bakecost/internal/dto"
	"bakecost/internal/model"
	"bakecost/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrRestoreInProgress is returned when a restore is already running.
	// Restore matches records by name and does read-then-write per record,
	// so two concurrent restores can race into duplicates or lost updates.
	ErrRestoreInProgress = errors.New("a restore is already in progress")

	// ErrCorruptSnapshot is returned when the snapshot itself cannot be
	// parsed or has no data section. This is the only hard abort — it fires
	// before any write.
	ErrCorruptSnapshot = errors.New("snapshot is corrupt or missing its data section")
)

// RestoreService reinserts a snapshot into storage in strict dependency
// order (Materials → Packaging → Recipes → NutritionFacts → Products →
// CustomProducts), reconciling each record with any existing row that shares
// its natural name. Re-running the same snapshot converges to the same end
// state. Any cost fields the snapshot might carry are ignored — costs are
// always recomputed from restored rows on the next read.
type RestoreService interface {
	Restore(ctx context.Context, raw []byte) (*dto.RestoreResult, error)
}

type restoreService struct {
	materials      repository.MaterialRepository
	packaging      repository.PackagingRepository
	recipes        repository.RecipeRepository
	nutrition      repository.NutritionRepository
	products       repository.ProductRepository
	customProducts repository.CustomProductRepository

	mu sync.Mutex
}

func NewRestoreService(
	materials repository.MaterialRepository,
	packaging repository.PackagingRepository,
	recipes repository.RecipeRepository,
	nutrition repository.NutritionRepository,
	products repository.ProductRepository,
	customProducts repository.CustomProductRepository,
) RestoreService {
	return &restoreService{
		materials:      materials,
		packaging:      packaging,
		recipes:        recipes,
		nutrition:      nutrition,
		products:       products,
		customProducts: customProducts,
	}
}

// snapshotEnvelope covers the current wrapped shape; the legacy flat shape
// is the same six arrays directly at top level.
type snapshotEnvelope struct {
	Data *dto.RawSnapshotData `json:"data"`
}

func parseSnapshot(raw []byte) (*dto.RawSnapshotData, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if env.Data != nil {
		return env.Data, nil
	}

	// Legacy flat shape: entity arrays at top level, no data wrapper.
	var flat dto.RawSnapshotData
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if flat.Materials == nil && flat.Packaging == nil && flat.Recipes == nil &&
		flat.Products == nil && flat.CustomProducts == nil && flat.NutritionFacts == nil {
		return nil, ErrCorruptSnapshot
	}
	return &flat, nil
}

func (s *restoreService) Restore(ctx context.Context, raw []byte) (*dto.RestoreResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrRestoreInProgress
	}
	defer s.mu.Unlock()

	data, err := parseSnapshot(raw)
	if err != nil {
		return nil, err
	}

	// Name→id lookup maps, filled level by level. Later levels resolve
	// references strictly against what earlier levels restored.
	materialIDs := make(map[string]uuid.UUID)
	packagingIDs := make(map[string]uuid.UUID)
	recipeIDs := make(map[string]uuid.UUID)
	productIDs := make(map[string]uuid.UUID)

	result := &dto.RestoreResult{}
	result.Materials = s.restoreMaterials(ctx, data.Materials, materialIDs)
	result.Packaging = s.restorePackaging(ctx, data.Packaging, packagingIDs)
	result.Recipes = s.restoreRecipes(ctx, data.Recipes, materialIDs, recipeIDs)
	result.NutritionFacts = s.restoreNutrition(ctx, data.NutritionFacts, materialIDs)
	result.Products = s.restoreProducts(ctx, data.Products, recipeIDs, packagingIDs, productIDs)
	result.CustomProducts = s.restoreCustomProducts(ctx, data.CustomProducts, productIDs, packagingIDs)

	log.Info().
		Int("materials", result.Materials.Restored).
		Int("packaging", result.Packaging.Restored).
		Int("recipes", result.Recipes.Restored).
		Int("nutrition_facts", result.NutritionFacts.Restored).
		Int("products", result.Products.Restored).
		Int("custom_products", result.CustomProducts.Restored).
		Msg("restore: completed")
	return result, nil
}

// ── Materials ────────────────────────────────────────────────────────────────

func (s *restoreService) restoreMaterials(ctx context.Context, raws []json.RawMessage, ids map[string]uuid.UUID) dto.RestoreCount {
	count := dto.RestoreCount{Total: len(raws)}
	for _, raw := range raws {
		var rec dto.SnapshotMaterial
		if err := json.Unmarshal(raw, &rec); err != nil || rec.Name == "" {
			log.Warn().Err(err).Str("entity", "material").Msg("restore: malformed record skipped")
			continue
		}

		existing, err := s.materials.FindByName(ctx, rec.Name)
		switch {
		case err == nil:
			existing.Category = rec.Category
			existing.PricePerGram = rec.PricePerGram
			if err := s.materials.Update(ctx, existing); err != nil {
				log.Warn().Err(err).Str("entity", "material").Str("name", rec.Name).Msg("restore: update failed, record skipped")
				continue
			}
			ids[rec.Name] = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			m := &model.Material{Name: rec.Name, Category: rec.Category, PricePerGram: rec.PricePerGram}
			if err := s.materials.Create(ctx, m); err != nil {
				log.Warn().Err(err).Str("entity", "material").Str("name", rec.Name).Msg("restore: create failed, record skipped")
				continue
			}
			ids[rec.Name] = m.ID
		default:
			log.Warn().Err(err).Str("entity", "material").Str("name", rec.Name).Msg("restore: lookup failed, record skipped")
			continue
		}
		count.Restored++
	}
	return count
}

// ── Packaging ────────────────────────────────────────────────────────────────

func (s *restoreService) restorePackaging(ctx context.Context, raws []json.RawMessage, ids map[string]uuid.UUID) dto.RestoreCount {
	count := dto.RestoreCount{Total: len(raws)}
	for _, raw := range raws {
		var rec dto.SnapshotPackaging
		if err := json.Unmarshal(raw, &rec); err != nil || rec.Name == "" {
			log.Warn().Err(err).Str("entity", "packaging").Msg("restore: malformed record skipped")
			continue
		}

		existing, err := s.packaging.FindByName(ctx, rec.Name)
		switch {
		case err == nil:
			existing.Type = rec.Type
			existing.UnitCost = rec.UnitCost
			if err := s.packaging.Update(ctx, existing); err != nil {
				log.Warn().Err(err).Str("entity", "packaging").Str("name", rec.Name).Msg("restore: update failed, record skipped")
				continue
			}
			ids[rec.Name] = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			p := &model.Packaging{Name: rec.Name, Type: rec.Type, UnitCost: rec.UnitCost}
			if err := s.packaging.Create(ctx, p); err != nil {
				log.Warn().Err(err).Str("entity", "packaging").Str("name", rec.Name).Msg("restore: create failed, record skipped")
				continue
			}
			ids[rec.Name] = p.ID
		default:
			log.Warn().Err(err).Str("entity", "packaging").Str("name", rec.Name).Msg("restore: lookup failed, record skipped")
			continue
		}
		count.Restored++
	}
	return count
}

// ── Recipes ──────────────────────────────────────────────────────────────────

// parseIngredientRef splits a "MaterialName:quantityGrams" pair. Material
// names may themselves contain colons, so the split is on the last one.
func parseIngredientRef(ref string) (name string, qty decimal.Decimal, err error) {
	idx := strings.LastIndex(ref, ":")
	if idx <= 0 {
		return "", decimal.Zero, fmt.Errorf("malformed ingredient ref %q", ref)
	}
	qty, err = decimal.NewFromString(strings.TrimSpace(ref[idx+1:]))
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("malformed quantity in ingredient ref %q", ref)
	}
	return strings.TrimSpace(ref[:idx]), qty, nil
}

// resolveIngredientRows rewrites name-keyed ingredient refs into rows with
// material ids. Unresolvable or malformed refs are dropped one by one — the
// recipe itself still restores.
func resolveIngredientRows(recipeName string, refs []string, materialIDs map[string]uuid.UUID) []model.RecipeIngredient {
	rows := make([]model.RecipeIngredient, 0, len(refs))
	for _, ref := range refs {
		name, qty, err := parseIngredientRef(ref)
		if err != nil {
			log.Warn().Str("recipe", recipeName).Str("ref", ref).Msg("restore: malformed ingredient ref dropped")
			continue
		}
		mid, ok := materialIDs[name]
		if !ok {
			log.Warn().Str("recipe", recipeName).Str("material", name).Msg("restore: unresolved material ref dropped")
			continue
		}
		rows = append(rows, model.RecipeIngredient{MaterialID: mid, QuantityGrams: qty})
	}
	return rows
}

func (s *restoreService) restoreRecipes(ctx context.Context, raws []json.RawMessage, materialIDs, ids map[string]uuid.UUID) dto.RestoreCount {
	count := dto.RestoreCount{Total: len(raws)}
	for _, raw := range raws {
		var rec dto.SnapshotRecipe
		if err := json.Unmarshal(raw, &rec); err != nil || rec.Name == "" {
			log.Warn().Err(err).Str("entity", "recipe").Msg("restore: malformed record skipped")
			continue
		}
		if rec.TotalPortions < 1 || rec.TotalWeightGrams.Sign() <= 0 {
			log.Warn().Str("entity", "recipe").Str("name", rec.Name).Msg("restore: non-positive portions or weight, record skipped")
			continue
		}

		rows := resolveIngredientRows(rec.Name, rec.Ingredients, materialIDs)

		existing, err := s.recipes.FindByName(ctx, rec.Name)
		switch {
		case err == nil:
			existing.Category = rec.Category
			existing.TotalPortions = rec.TotalPortions
			existing.TotalWeightGrams = rec.TotalWeightGrams
			if err := s.recipes.Update(ctx, existing); err != nil {
				log.Warn().Err(err).Str("entity", "recipe").Str("name", rec.Name).Msg("restore: update failed, record skipped")
				continue
			}
			if err := s.recipes.ReplaceIngredients(ctx, existing.ID, rows); err != nil {
				log.Warn().Err(err).Str("entity", "recipe").Str("name", rec.Name).Msg("restore: ingredient replace failed, record skipped")
				continue
			}
			ids[rec.Name] = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			r := &model.Recipe{
				Name:             rec.Name,
				Category:         rec.Category,
				TotalPortions:    rec.TotalPortions,
				TotalWeightGrams: rec.TotalWeightGrams,
				Ingredients:      rows,
			}
			if err := s.recipes.Create(ctx, r); err != nil {
				log.Warn().Err(err).Str("entity", "recipe").Str("name", rec.Name).Msg("restore: create failed, record skipped")
				continue
			}
			ids[rec.Name] = r.ID
		default:
			log.Warn().Err(err).Str("entity", "recipe").Str("name", rec.Name).Msg("restore: lookup failed, record skipped")
			continue
		}
		count.Restored++
	}
	return count
}

// ── Nutrition facts ──────────────────────────────────────────────────────────

func (s *restoreService) restoreNutrition(ctx context.Context, raws []json.RawMessage, materialIDs map[string]uuid.UUID) dto.RestoreCount {
	count := dto.RestoreCount{Total: len(raws)}
	for _, raw := range raws {
		var rec dto.SnapshotNutrition
		if err := json.Unmarshal(raw, &rec); err != nil || rec.Material == "" {
			log.Warn().Err(err).Str("entity", "nutrition_facts").Msg("restore: malformed record skipped")
			continue
		}
		mid, ok := materialIDs[rec.Material]
		if !ok {
			// The owning material is the record's identity; without it there
			// is nothing to attach the row to.
			log.Warn().Str("entity", "nutrition_facts").Str("material", rec.Material).Msg("restore: unresolved material, record skipped")
			continue
		}

		n := &model.NutritionFacts{
			MaterialID: mid,
			Calories:   rec.Calories,
			Protein:    rec.Protein,
			Carbs:      rec.Carbs,
			Fat:        rec.Fat,
			Sugar:      rec.Sugar,
			Sodium:     rec.Sodium,
		}
		if err := s.nutrition.Upsert(ctx, n); err != nil {
			log.Warn().Err(err).Str("entity", "nutrition_facts").Str("material", rec.Material).Msg("restore: upsert failed, record skipped")
			continue
		}
		count.Restored++
	}
	return count
}

// ── Products ─────────────────────────────────────────────────────────────────

// resolveProductRecipeRows and resolveProductPackagingRows are the pure
// rewrite step: (snapshot record, lookup maps) → rows with foreign keys.

func resolveProductRecipeRows(productName string, refs []dto.SnapshotProductRecipe, recipeIDs map[string]uuid.UUID) []model.ProductRecipe {
	rows := make([]model.ProductRecipe, 0, len(refs))
	for _, ref := range refs {
		rid, ok := recipeIDs[ref.Recipe]
		if !ok {
			log.Warn().Str("product", productName).Str("recipe", ref.Recipe).Msg("restore: unresolved recipe ref dropped")
			continue
		}
		unit := ref.Unit
		if unit != model.UnitGrams {
			unit = model.UnitPortions
		}
		rows = append(rows, model.ProductRecipe{RecipeID: rid, Quantity: ref.Quantity, Unit: unit})
	}
	return rows
}

func resolvePackagingRefs(ownerName string, refs []dto.SnapshotPackagingRef, packagingIDs map[string]uuid.UUID) []uuidQuantity {
	rows := make([]uuidQuantity, 0, len(refs))
	for _, ref := range refs {
		pid, ok := packagingIDs[ref.Packaging]
		if !ok {
			log.Warn().Str("owner", ownerName).Str("packaging", ref.Packaging).Msg("restore: unresolved packaging ref dropped")
			continue
		}
		qty := ref.Quantity
		if qty < 1 {
			qty = 1
		}
		rows = append(rows, uuidQuantity{ID: pid, Quantity: qty})
	}
	return rows
}

type uuidQuantity struct {
	ID       uuid.UUID
	Quantity int
}

func (s *restoreService) restoreProducts(ctx context.Context, raws []json.RawMessage, recipeIDs, packagingIDs, ids map[string]uuid.UUID) dto.RestoreCount {
	count := dto.RestoreCount{Total: len(raws)}
	for _, raw := range raws {
		var rec dto.SnapshotProduct
		if err := json.Unmarshal(raw, &rec); err != nil || rec.Name == "" {
			log.Warn().Err(err).Str("entity", "product").Msg("restore: malformed record skipped")
			continue
		}

		recipeRows := resolveProductRecipeRows(rec.Name, rec.Recipes, recipeIDs)
		packagingRows := make([]model.ProductPackagingLink, 0, len(rec.Packaging))
		for _, pq := range resolvePackagingRefs(rec.Name, rec.Packaging, packagingIDs) {
			packagingRows = append(packagingRows, model.ProductPackagingLink{PackagingID: pq.ID, Quantity: pq.Quantity})
		}

		existing, err := s.products.FindByName(ctx, rec.Name)
		switch {
		case err == nil:
			existing.Category = rec.Category
			existing.SellingPrice = rec.SellingPrice
			existing.ManagementFeePct = rec.ManagementFeePct
			if err := s.products.Update(ctx, existing); err != nil {
				log.Warn().Err(err).Str("entity", "product").Str("name", rec.Name).Msg("restore: update failed, record skipped")
				continue
			}
			if err := s.products.ReplaceRecipes(ctx, existing.ID, recipeRows); err != nil {
				log.Warn().Err(err).Str("entity", "product").Str("name", rec.Name).Msg("restore: recipe replace failed, record skipped")
				continue
			}
			if err := s.products.ReplacePackaging(ctx, existing.ID, packagingRows); err != nil {
				log.Warn().Err(err).Str("entity", "product").Str("name", rec.Name).Msg("restore: packaging replace failed, record skipped")
				continue
			}
			ids[rec.Name] = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			p := &model.Product{
				Name:             rec.Name,
				Category:         rec.Category,
				SellingPrice:     rec.SellingPrice,
				ManagementFeePct: rec.ManagementFeePct,
				Recipes:          recipeRows,
				Packaging:        packagingRows,
			}
			if err := s.products.Create(ctx, p); err != nil {
				log.Warn().Err(err).Str("entity", "product").Str("name", rec.Name).Msg("restore: create failed, record skipped")
				continue
			}
			ids[rec.Name] = p.ID
		default:
			log.Warn().Err(err).Str("entity", "product").Str("name", rec.Name).Msg("restore: lookup failed, record skipped")
			continue
		}
		count.Restored++
	}
	return count
}

// ── Custom products ──────────────────────────────────────────────────────────

func (s *restoreService) restoreCustomProducts(ctx context.Context, raws []json.RawMessage, productIDs, packagingIDs map[string]uuid.UUID) dto.RestoreCount {
	count := dto.RestoreCount{Total: len(raws)}
	for _, raw := range raws {
		var rec dto.SnapshotCustomProduct
		if err := json.Unmarshal(raw, &rec); err != nil || rec.Name == "" {
			log.Warn().Err(err).Str("entity", "custom_product").Msg("restore: malformed record skipped")
			continue
		}

		itemRows := make([]model.CustomProductItem, 0, len(rec.Items))
		for _, item := range rec.Items {
			pid, ok := productIDs[item.Product]
			if !ok {
				log.Warn().Str("custom_product", rec.Name).Str("product", item.Product).Msg("restore: unresolved product ref dropped")
				continue
			}
			itemRows = append(itemRows, model.CustomProductItem{ProductID: pid, Quantity: item.Quantity})
		}
		packagingRows := make([]model.CustomProductPackagingLink, 0, len(rec.Packaging))
		for _, pq := range resolvePackagingRefs(rec.Name, rec.Packaging, packagingIDs) {
			packagingRows = append(packagingRows, model.CustomProductPackagingLink{PackagingID: pq.ID, Quantity: pq.Quantity})
		}

		existing, err := s.customProducts.FindByName(ctx, rec.Name)
		switch {
		case err == nil:
			existing.Category = rec.Category
			existing.SellingPrice = rec.SellingPrice
			existing.ManagementFeePct = rec.ManagementFeePct
			if err := s.customProducts.Update(ctx, existing); err != nil {
				log.Warn().Err(err).Str("entity", "custom_product").Str("name", rec.Name).Msg("restore: update failed, record skipped")
				continue
			}
			if err := s.customProducts.ReplaceItems(ctx, existing.ID, itemRows); err != nil {
				log.Warn().Err(err).Str("entity", "custom_product").Str("name", rec.Name).Msg("restore: item replace failed, record skipped")
				continue
			}
			if err := s.customProducts.ReplacePackaging(ctx, existing.ID, packagingRows); err != nil {
				log.Warn().Err(err).Str("entity", "custom_product").Str("name", rec.Name).Msg("restore: packaging replace failed, record skipped")
				continue
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			cp := &model.CustomProduct{
				Name:             rec.Name,
				Category:         rec.Category,
				SellingPrice:     rec.SellingPrice,
				ManagementFeePct: rec.ManagementFeePct,
				Items:            itemRows,
				Packaging:        packagingRows,
			}
			if err := s.customProducts.Create(ctx, cp); err != nil {
				log.Warn().Err(err).Str("entity", "custom_product").Str("name", rec.Name).Msg("restore: create failed, record skipped")
				continue
			}
		default:
			log.Warn().Err(err).Str("entity", "custom_product").Str("name", rec.Name).Msg("restore: lookup failed, record skipped")
			continue
		}
		count.Restored++
	}
	return count
}
