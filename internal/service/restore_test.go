package service_test

import (
	"context"
	"testing"

	"bakecost/internal/dto"
	"bakecost/internal/model"
	"bakecost/internal/repository"
	"bakecost/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRestore(f *fixture) service.RestoreService {
	return service.NewRestoreService(f.materials, f.packaging, f.recipes, f.nutrition, f.products, f.customProducts)
}

const fullSnapshot = `{
	"timestamp": "2026-08-29T03:00:00Z",
	"version": "1.0",
	"data": {
		"materials": [
			{"name": "Flour", "category": "dry", "pricePerGram": "0.05"},
			{"name": "Butter", "category": "dairy", "pricePerGram": "0.01"}
		],
		"packaging": [
			{"name": "Cake Box", "type": "box", "unitCost": "2"}
		],
		"recipes": [
			{"name": "Dough", "category": "base", "totalPortions": 4, "totalWeightGrams": "400", "ingredients": ["Flour:400"]}
		],
		"nutritionFacts": [
			{"material": "Flour", "calories": "364", "protein": "10", "carbs": "76", "fat": "1", "sugar": "0.3", "sodium": "0.002"}
		],
		"products": [
			{"name": "Pound Cake", "category": "cakes", "sellingPrice": "100", "managementFeePercentage": "10",
			 "recipes": [{"recipe": "Dough", "quantity": "8", "unit": "portions"}],
			 "packaging": [{"packaging": "Cake Box", "quantity": 2}]}
		],
		"customProducts": [
			{"name": "Party Bundle", "category": "bundles", "sellingPrice": "200", "managementFeePercentage": "0",
			 "items": [{"product": "Pound Cake", "quantity": "2"}],
			 "packaging": []}
		]
	}
}`

func TestRestore_FullSnapshotInDependencyOrder(t *testing.T) {
	f := newFixture()
	result, err := buildRestore(f).Restore(context.Background(), []byte(fullSnapshot))
	require.NoError(t, err)

	assert.Equal(t, dto.RestoreCount{Restored: 2, Total: 2}, result.Materials)
	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 1}, result.Packaging)
	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 1}, result.Recipes)
	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 1}, result.NutritionFacts)
	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 1}, result.Products)
	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 1}, result.CustomProducts)

	// References were rewritten from names to the freshly assigned ids, so
	// the costing chain works end to end on the restored rows.
	p, err := f.products.FindByName(context.Background(), "Pound Cake")
	require.NoError(t, err)
	require.Len(t, p.Recipes, 1)
	require.Len(t, p.Packaging, 1)
	assert.Equal(t, 2, p.Packaging[0].Quantity)

	view, err := buildCosting(f).ResolveProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assertDec(t, "44", view.TotalCost)
	assertDec(t, "48.4", view.AdjustedCost)
}

func TestRestore_IsIdempotent(t *testing.T) {
	f := newFixture()
	svc := buildRestore(f)

	first, err := svc.Restore(context.Background(), []byte(fullSnapshot))
	require.NoError(t, err)
	second, err := svc.Restore(context.Background(), []byte(fullSnapshot))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	materials, err := f.materials.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, materials, 2)

	rec, err := f.recipes.FindByName(context.Background(), "Dough")
	require.NoError(t, err)
	assert.Len(t, rec.Ingredients, 1)

	cp, err := f.customProducts.FindByName(context.Background(), "Party Bundle")
	require.NoError(t, err)
	assert.Len(t, cp.Items, 1)
}

func TestRestore_UpdatesExistingRowsByName(t *testing.T) {
	f := newFixture()
	existing := seedMaterial(t, f, "Flour", "misc", "0.01")

	_, err := buildRestore(f).Restore(context.Background(), []byte(fullSnapshot))
	require.NoError(t, err)

	materials, err := f.materials.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, materials, 2)

	got, err := f.materials.FindByName(context.Background(), "Flour")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, "dry", got.Category)
	assertDec(t, "0.05", got.PricePerGram)
}

func TestRestore_DuplicateNamesWithinSnapshotCollapseToOneRow(t *testing.T) {
	f := newFixture()
	snapshot := `{
		"data": {
			"materials": [
				{"name": "Flour", "category": "dry", "pricePerGram": "0.05"},
				{"name": "Flour", "category": "organic", "pricePerGram": "0.08"}
			]
		}
	}`

	result, err := buildRestore(f).Restore(context.Background(), []byte(snapshot))
	require.NoError(t, err)
	assert.Equal(t, dto.RestoreCount{Restored: 2, Total: 2}, result.Materials)

	materials, err := f.materials.All(context.Background())
	require.NoError(t, err)
	require.Len(t, materials, 1)

	// The second record upserts onto the first, so the last one wins.
	assert.Equal(t, "Flour", materials[0].Name)
	assert.Equal(t, "organic", materials[0].Category)
	assertDec(t, "0.08", materials[0].PricePerGram)
}

func TestRestore_AcceptsLegacyFlatShape(t *testing.T) {
	f := newFixture()
	flat := `{
		"materials": [{"name": "Sugar", "category": "dry", "pricePerGram": "0.02"}],
		"recipes": [{"name": "Syrup", "category": "base", "totalPortions": 1, "totalWeightGrams": "100", "ingredients": ["Sugar:100"]}]
	}`

	result, err := buildRestore(f).Restore(context.Background(), []byte(flat))
	require.NoError(t, err)

	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 1}, result.Materials)
	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 1}, result.Recipes)
	assert.Equal(t, dto.RestoreCount{}, result.Products)
}

func TestRestore_CorruptSnapshotAbortsBeforeAnyWrite(t *testing.T) {
	f := newFixture()
	svc := buildRestore(f)

	for _, raw := range []string{`not json at all`, `{}`, `{"data": null}`, `{"version": "1.0"}`} {
		_, err := svc.Restore(context.Background(), []byte(raw))
		assert.ErrorIs(t, err, service.ErrCorruptSnapshot, "input: %s", raw)
	}

	materials, err := f.materials.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, materials)
}

func TestRestore_MalformedRecordsAreSkippedIndividually(t *testing.T) {
	f := newFixture()
	raw := `{"data": {"materials": [
		{"name": "Flour", "category": "dry", "pricePerGram": "0.05"},
		{"name": "", "category": "dry", "pricePerGram": "0.02"},
		"not an object",
		{"name": "Butter", "category": "dairy", "pricePerGram": "0.01"},
		{"name": "Eggs", "category": "dairy", "pricePerGram": "0.03"}
	]}}`

	result, err := buildRestore(f).Restore(context.Background(), []byte(raw))
	require.NoError(t, err)

	assert.Equal(t, dto.RestoreCount{Restored: 3, Total: 5}, result.Materials)
	materials, err := f.materials.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, materials, 3)
}

func TestRestore_DanglingRefsDroppedButParentRestored(t *testing.T) {
	f := newFixture()
	raw := `{"data": {
		"materials": [{"name": "Flour", "category": "dry", "pricePerGram": "0.05"}],
		"recipes": [{"name": "Dough", "category": "base", "totalPortions": 4, "totalWeightGrams": "400",
			"ingredients": ["Flour:400", "Ghost:100", "noquantity"]}],
		"products": [{"name": "Pound Cake", "category": "cakes", "sellingPrice": "100", "managementFeePercentage": "0",
			"recipes": [{"recipe": "Missing", "quantity": "1", "unit": "portions"}],
			"packaging": [{"packaging": "Missing Box", "quantity": 1}]}]
	}}`

	result, err := buildRestore(f).Restore(context.Background(), []byte(raw))
	require.NoError(t, err)

	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 1}, result.Recipes)
	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 1}, result.Products)

	rec, err := f.recipes.FindByName(context.Background(), "Dough")
	require.NoError(t, err)
	assert.Len(t, rec.Ingredients, 1)

	p, err := f.products.FindByName(context.Background(), "Pound Cake")
	require.NoError(t, err)
	assert.Empty(t, p.Recipes)
	assert.Empty(t, p.Packaging)
}

func TestRestore_MaterialNamesMayContainColons(t *testing.T) {
	f := newFixture()
	raw := `{"data": {
		"materials": [{"name": "Chocolate: 70%", "category": "dry", "pricePerGram": "0.08"}],
		"recipes": [{"name": "Ganache", "category": "base", "totalPortions": 2, "totalWeightGrams": "200",
			"ingredients": ["Chocolate: 70%:150"]}]
	}}`

	_, err := buildRestore(f).Restore(context.Background(), []byte(raw))
	require.NoError(t, err)

	rec, err := f.recipes.FindByName(context.Background(), "Ganache")
	require.NoError(t, err)
	require.Len(t, rec.Ingredients, 1)
	assertDec(t, "150", rec.Ingredients[0].QuantityGrams)
}

func TestRestore_RejectsNonPositiveRecipeGeometry(t *testing.T) {
	f := newFixture()
	raw := `{"data": {
		"materials": [{"name": "Flour", "category": "dry", "pricePerGram": "0.05"}],
		"recipes": [
			{"name": "Broken A", "category": "base", "totalPortions": 0, "totalWeightGrams": "400", "ingredients": []},
			{"name": "Broken B", "category": "base", "totalPortions": 2, "totalWeightGrams": "0", "ingredients": []},
			{"name": "Fine", "category": "base", "totalPortions": 1, "totalWeightGrams": "100", "ingredients": ["Flour:100"]}
		]
	}}`

	result, err := buildRestore(f).Restore(context.Background(), []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 3}, result.Recipes)
}

func TestRestore_NormalizesUnitsAndQuantities(t *testing.T) {
	f := newFixture()
	raw := `{"data": {
		"materials": [{"name": "Flour", "category": "dry", "pricePerGram": "0.05"}],
		"packaging": [{"name": "Bag", "type": "bag", "unitCost": "0.5"}],
		"recipes": [{"name": "Dough", "category": "base", "totalPortions": 4, "totalWeightGrams": "400", "ingredients": ["Flour:400"]}],
		"products": [{"name": "Loaf", "category": "bread", "sellingPrice": "10", "managementFeePercentage": "0",
			"recipes": [{"recipe": "Dough", "quantity": "2", "unit": "slices"}],
			"packaging": [{"packaging": "Bag", "quantity": 0}]}]
	}}`

	_, err := buildRestore(f).Restore(context.Background(), []byte(raw))
	require.NoError(t, err)

	p, err := f.products.FindByName(context.Background(), "Loaf")
	require.NoError(t, err)
	require.Len(t, p.Recipes, 1)
	assert.Equal(t, model.UnitPortions, p.Recipes[0].Unit)
	require.Len(t, p.Packaging, 1)
	assert.Equal(t, 1, p.Packaging[0].Quantity)
}

func TestRestore_NutritionRequiresItsMaterial(t *testing.T) {
	f := newFixture()
	raw := `{"data": {
		"materials": [{"name": "Flour", "category": "dry", "pricePerGram": "0.05"}],
		"nutritionFacts": [
			{"material": "Flour", "calories": "364"},
			{"material": "Unknown", "calories": "100"}
		]
	}}`

	result, err := buildRestore(f).Restore(context.Background(), []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, dto.RestoreCount{Restored: 1, Total: 2}, result.NutritionFacts)

	rows, err := f.nutrition.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assertDec(t, "364", rows[0].Calories)
}

// blockingMaterialRepo parks the first lookup until released so a second
// restore can be attempted while the first one holds the lock.
type blockingMaterialRepo struct {
	repository.MaterialRepository
	entered chan struct{}
	release chan struct{}
}

func (r *blockingMaterialRepo) FindByName(ctx context.Context, name string) (*model.Material, error) {
	r.entered <- struct{}{}
	<-r.release
	return r.MaterialRepository.FindByName(ctx, name)
}

func TestRestore_RejectsConcurrentRestore(t *testing.T) {
	f := newFixture()
	blocking := &blockingMaterialRepo{
		MaterialRepository: f.materials,
		entered:            make(chan struct{}),
		release:            make(chan struct{}),
	}
	svc := service.NewRestoreService(blocking, f.packaging, f.recipes, f.nutrition, f.products, f.customProducts)

	snapshot := []byte(`{"data": {"materials": [{"name": "Flour", "category": "dry", "pricePerGram": "0.05"}]}}`)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Restore(context.Background(), snapshot)
		done <- err
	}()

	<-blocking.entered
	_, err := svc.Restore(context.Background(), snapshot)
	assert.ErrorIs(t, err, service.ErrRestoreInProgress)

	close(blocking.release)
	require.NoError(t, <-done)
}
