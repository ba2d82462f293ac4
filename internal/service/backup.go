package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bakecost/internal/dto"
	"bakecost/internal/model"
	"bakecost/internal/repository"

	"github.com/rs/zerolog/log"
)

const snapshotVersion = "1.0"

// BackupService serializes the full dataset into a name-keyed snapshot.
// Derived cost fields are never written — a snapshot holds raw inputs only,
// so restoring it into a database with different material prices yields
// costs computed from those prices.
type BackupService interface {
	// BuildSnapshot assembles the snapshot in memory.
	BuildSnapshot(ctx context.Context, description string) (*dto.Snapshot, error)
	// Create builds a snapshot and writes it as a timestamped JSON file
	// under the backup directory.
	Create(ctx context.Context, description string) (*dto.BackupResult, error)
}

type backupService struct {
	materials      repository.MaterialRepository
	packaging      repository.PackagingRepository
	recipes        repository.RecipeRepository
	nutrition      repository.NutritionRepository
	products       repository.ProductRepository
	customProducts repository.CustomProductRepository

	backupDir string
}

func NewBackupService(
	materials repository.MaterialRepository,
	packaging repository.PackagingRepository,
	recipes repository.RecipeRepository,
	nutrition repository.NutritionRepository,
	products repository.ProductRepository,
	customProducts repository.CustomProductRepository,
	backupDir string,
) BackupService {
	return &backupService{
		materials:      materials,
		packaging:      packaging,
		recipes:        recipes,
		nutrition:      nutrition,
		products:       products,
		customProducts: customProducts,
		backupDir:      backupDir,
	}
}

func (s *backupService) BuildSnapshot(ctx context.Context, description string) (*dto.Snapshot, error) {
	materials, err := s.materials.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: reading materials: %w", err)
	}
	packaging, err := s.packaging.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: reading packaging: %w", err)
	}
	recipes, err := s.recipes.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: reading recipes: %w", err)
	}
	nutrition, err := s.nutrition.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: reading nutrition facts: %w", err)
	}
	products, err := s.products.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: reading products: %w", err)
	}
	customProducts, err := s.customProducts.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: reading custom products: %w", err)
	}

	snap := &dto.Snapshot{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     snapshotVersion,
		Description: description,
		Data: dto.SnapshotData{
			Materials:      make([]dto.SnapshotMaterial, 0, len(materials)),
			Packaging:      make([]dto.SnapshotPackaging, 0, len(packaging)),
			Recipes:        make([]dto.SnapshotRecipe, 0, len(recipes)),
			NutritionFacts: make([]dto.SnapshotNutrition, 0, len(nutrition)),
			Products:       make([]dto.SnapshotProduct, 0, len(products)),
			CustomProducts: make([]dto.SnapshotCustomProduct, 0, len(customProducts)),
		},
	}

	for _, m := range materials {
		snap.Data.Materials = append(snap.Data.Materials, dto.SnapshotMaterial{
			Name:         m.Name,
			Category:     m.Category,
			PricePerGram: m.PricePerGram,
		})
	}
	for _, p := range packaging {
		snap.Data.Packaging = append(snap.Data.Packaging, dto.SnapshotPackaging{
			Name:     p.Name,
			Type:     p.Type,
			UnitCost: p.UnitCost,
		})
	}
	for i := range recipes {
		snap.Data.Recipes = append(snap.Data.Recipes, snapshotRecipe(&recipes[i]))
	}
	for i := range nutrition {
		n := &nutrition[i]
		if n.Material == nil {
			log.Warn().Str("material_id", n.MaterialID.String()).Msg("backup: nutrition row without material dropped")
			continue
		}
		snap.Data.NutritionFacts = append(snap.Data.NutritionFacts, dto.SnapshotNutrition{
			Material: n.Material.Name,
			Calories: n.Calories,
			Protein:  n.Protein,
			Carbs:    n.Carbs,
			Fat:      n.Fat,
			Sugar:    n.Sugar,
			Sodium:   n.Sodium,
		})
	}
	for i := range products {
		snap.Data.Products = append(snap.Data.Products, snapshotProduct(&products[i]))
	}
	for i := range customProducts {
		snap.Data.CustomProducts = append(snap.Data.CustomProducts, snapshotCustomProduct(&customProducts[i]))
	}

	snap.Statistics = map[string]int{
		"materialsCount":      len(snap.Data.Materials),
		"packagingCount":      len(snap.Data.Packaging),
		"recipesCount":        len(snap.Data.Recipes),
		"nutritionFactsCount": len(snap.Data.NutritionFacts),
		"productsCount":       len(snap.Data.Products),
		"customProductsCount": len(snap.Data.CustomProducts),
	}
	return snap, nil
}

func snapshotRecipe(rec *model.Recipe) dto.SnapshotRecipe {
	out := dto.SnapshotRecipe{
		Name:             rec.Name,
		Category:         rec.Category,
		TotalPortions:    rec.TotalPortions,
		TotalWeightGrams: rec.TotalWeightGrams,
		Ingredients:      make([]string, 0, len(rec.Ingredients)),
	}
	for _, ing := range rec.Ingredients {
		if ing.Material == nil {
			log.Warn().Str("recipe", rec.Name).Str("material_id", ing.MaterialID.String()).
				Msg("backup: ingredient without material dropped from snapshot")
			continue
		}
		out.Ingredients = append(out.Ingredients, fmt.Sprintf("%s:%s", ing.Material.Name, ing.QuantityGrams.String()))
	}
	return out
}

func snapshotProduct(p *model.Product) dto.SnapshotProduct {
	out := dto.SnapshotProduct{
		Name:             p.Name,
		Category:         p.Category,
		SellingPrice:     p.SellingPrice,
		ManagementFeePct: p.ManagementFeePct,
		Recipes:          make([]dto.SnapshotProductRecipe, 0, len(p.Recipes)),
		Packaging:        make([]dto.SnapshotPackagingRef, 0, len(p.Packaging)),
	}
	for _, row := range p.Recipes {
		if row.Recipe == nil {
			log.Warn().Str("product", p.Name).Str("recipe_id", row.RecipeID.String()).
				Msg("backup: recipe link without recipe dropped from snapshot")
			continue
		}
		out.Recipes = append(out.Recipes, dto.SnapshotProductRecipe{
			Recipe:   row.Recipe.Name,
			Quantity: row.Quantity,
			Unit:     row.Unit,
		})
	}
	for _, link := range p.Packaging {
		if link.Packaging == nil {
			log.Warn().Str("product", p.Name).Str("packaging_id", link.PackagingID.String()).
				Msg("backup: packaging link without packaging dropped from snapshot")
			continue
		}
		out.Packaging = append(out.Packaging, dto.SnapshotPackagingRef{
			Packaging: link.Packaging.Name,
			Quantity:  link.Quantity,
		})
	}
	return out
}

func snapshotCustomProduct(cp *model.CustomProduct) dto.SnapshotCustomProduct {
	out := dto.SnapshotCustomProduct{
		Name:             cp.Name,
		Category:         cp.Category,
		SellingPrice:     cp.SellingPrice,
		ManagementFeePct: cp.ManagementFeePct,
		Items:            make([]dto.SnapshotProductItem, 0, len(cp.Items)),
		Packaging:        make([]dto.SnapshotPackagingRef, 0, len(cp.Packaging)),
	}
	for _, item := range cp.Items {
		if item.Product == nil {
			log.Warn().Str("custom_product", cp.Name).Str("product_id", item.ProductID.String()).
				Msg("backup: item without product dropped from snapshot")
			continue
		}
		out.Items = append(out.Items, dto.SnapshotProductItem{
			Product:  item.Product.Name,
			Quantity: item.Quantity,
		})
	}
	for _, link := range cp.Packaging {
		if link.Packaging == nil {
			log.Warn().Str("custom_product", cp.Name).Str("packaging_id", link.PackagingID.String()).
				Msg("backup: packaging link without packaging dropped from snapshot")
			continue
		}
		out.Packaging = append(out.Packaging, dto.SnapshotPackagingRef{
			Packaging: link.Packaging.Name,
			Quantity:  link.Quantity,
		})
	}
	return out
}

func (s *backupService) Create(ctx context.Context, description string) (*dto.BackupResult, error) {
	snap, err := s.BuildSnapshot(ctx, description)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("backup: creating backup dir: %w", err)
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("backup: encoding snapshot: %w", err)
	}

	name := fmt.Sprintf("backup-%s.json", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return nil, fmt.Errorf("backup: writing %s: %w", path, err)
	}

	log.Info().Str("path", path).Interface("statistics", snap.Statistics).Msg("backup: snapshot written")
	return &dto.BackupResult{Path: path, Timestamp: snap.Timestamp, Statistics: snap.Statistics}, nil
}
