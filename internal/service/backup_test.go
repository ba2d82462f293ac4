package service_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bakecost/internal/dto"
	"bakecost/internal/model"
	"bakecost/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBackup(f *fixture, dir string) service.BackupService {
	return service.NewBackupService(f.materials, f.packaging, f.recipes, f.nutrition, f.products, f.customProducts, dir)
}

func seedFullDataset(t *testing.T, f *fixture) {
	t.Helper()
	flour := seedMaterial(t, f, "Flour", "dry", "0.05")
	box := seedPackaging(t, f, "Cake Box", "2")
	rec := seedRecipe(t, f, "Dough", 4, "400", []model.RecipeIngredient{
		{MaterialID: flour.ID, QuantityGrams: dec("400")},
	})
	require.NoError(t, f.nutrition.Upsert(context.Background(), &model.NutritionFacts{
		MaterialID: flour.ID, Calories: dec("364"),
	}))
	p := &model.Product{
		Name:             "Pound Cake",
		Category:         "cakes",
		SellingPrice:     dec("100"),
		ManagementFeePct: dec("10"),
		Recipes: []model.ProductRecipe{
			{RecipeID: rec.ID, Quantity: dec("8"), Unit: model.UnitPortions},
		},
		Packaging: []model.ProductPackagingLink{
			{PackagingID: box.ID, Quantity: 2},
		},
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	require.NoError(t, f.customProducts.Create(context.Background(), &model.CustomProduct{
		Name:         "Party Bundle",
		Category:     "bundles",
		SellingPrice: dec("200"),
		Items: []model.CustomProductItem{
			{ProductID: p.ID, Quantity: dec("2")},
		},
	}))
}

func TestBuildSnapshot_EncodesReferencesByName(t *testing.T) {
	f := newFixture()
	seedFullDataset(t, f)

	snap, err := buildBackup(f, t.TempDir()).BuildSnapshot(context.Background(), "nightly")
	require.NoError(t, err)

	assert.Equal(t, "1.0", snap.Version)
	assert.Equal(t, "nightly", snap.Description)
	assert.NotEmpty(t, snap.Timestamp)

	require.Len(t, snap.Data.Materials, 1)
	assert.Equal(t, "Flour", snap.Data.Materials[0].Name)

	require.Len(t, snap.Data.Recipes, 1)
	assert.Equal(t, []string{"Flour:400"}, snap.Data.Recipes[0].Ingredients)

	require.Len(t, snap.Data.Products, 1)
	require.Len(t, snap.Data.Products[0].Recipes, 1)
	assert.Equal(t, "Dough", snap.Data.Products[0].Recipes[0].Recipe)
	require.Len(t, snap.Data.Products[0].Packaging, 1)
	assert.Equal(t, "Cake Box", snap.Data.Products[0].Packaging[0].Packaging)

	require.Len(t, snap.Data.CustomProducts, 1)
	require.Len(t, snap.Data.CustomProducts[0].Items, 1)
	assert.Equal(t, "Pound Cake", snap.Data.CustomProducts[0].Items[0].Product)

	require.Len(t, snap.Data.NutritionFacts, 1)
	assert.Equal(t, "Flour", snap.Data.NutritionFacts[0].Material)

	assert.Equal(t, map[string]int{
		"materialsCount":      1,
		"packagingCount":      1,
		"recipesCount":        1,
		"nutritionFactsCount": 1,
		"productsCount":       1,
		"customProductsCount": 1,
	}, snap.Statistics)
}

func TestBuildSnapshot_DropsRowsWithMissingJoins(t *testing.T) {
	f := newFixture()
	flour := seedMaterial(t, f, "Flour", "dry", "0.05")
	seedRecipe(t, f, "Dough", 4, "400", []model.RecipeIngredient{
		{MaterialID: flour.ID, QuantityGrams: dec("400")},
		{MaterialID: uuid.New(), QuantityGrams: dec("100")},
	})
	require.NoError(t, f.products.Create(context.Background(), &model.Product{
		Name:         "Ghost Cake",
		Category:     "cakes",
		SellingPrice: dec("50"),
		Recipes: []model.ProductRecipe{
			{RecipeID: uuid.New(), Quantity: dec("1"), Unit: model.UnitPortions},
		},
	}))

	snap, err := buildBackup(f, t.TempDir()).BuildSnapshot(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, snap.Data.Recipes, 1)
	assert.Equal(t, []string{"Flour:400"}, snap.Data.Recipes[0].Ingredients)

	require.Len(t, snap.Data.Products, 1)
	assert.Empty(t, snap.Data.Products[0].Recipes)
}

func TestCreate_WritesTimestampedSnapshotFile(t *testing.T) {
	f := newFixture()
	seedFullDataset(t, f)
	dir := t.TempDir()

	result, err := buildBackup(f, dir).Create(context.Background(), "manual")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(result.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(result.Path), "backup-"))
	assert.Equal(t, 1, result.Statistics["productsCount"])

	raw, err := os.ReadFile(result.Path)
	require.NoError(t, err)

	var snap dto.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, "manual", snap.Description)
	require.Len(t, snap.Data.Materials, 1)
}

// A snapshot restored into an empty database must yield the same derived
// costs as the source, even though every id differs.
func TestSnapshotRoundTrip(t *testing.T) {
	source := newFixture()
	seedFullDataset(t, source)

	snap, err := buildBackup(source, t.TempDir()).BuildSnapshot(context.Background(), "")
	require.NoError(t, err)
	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	target := newFixture()
	result, err := buildRestore(target).Restore(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Products.Restored)

	p, err := target.products.FindByName(context.Background(), "Pound Cake")
	require.NoError(t, err)
	view, err := buildCosting(target).ResolveProduct(context.Background(), p.ID)
	require.NoError(t, err)

	assertDec(t, "44", view.TotalCost)
	assertDec(t, "48.4", view.AdjustedCost)
	assertDec(t, "51.6", view.Profit)
}
