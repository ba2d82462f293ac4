package service_test

import (
	"context"
	"strings"
	"sync"

	"bakecost/internal/dto"
	"bakecost/internal/model"
	"bakecost/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory stub repositories ───────────────────────────────────────────────
// One shared memStore per test wires all six stubs together so cross-entity
// joins (ingredient → material, product link → packaging) behave like the
// real preloading queries.

type memStore struct {
	mu sync.Mutex

	materials      []model.Material // insertion order — FindByName returns the oldest match
	packaging      []model.Packaging
	recipes        []model.Recipe
	nutrition      []model.NutritionFacts
	products       []model.Product
	customProducts []model.CustomProduct
}

func newMemStore() *memStore { return &memStore{} }

func (s *memStore) materialByID(id uuid.UUID) *model.Material {
	for i := range s.materials {
		if s.materials[i].ID == id {
			return &s.materials[i]
		}
	}
	return nil
}

func (s *memStore) packagingByID(id uuid.UUID) *model.Packaging {
	for i := range s.packaging {
		if s.packaging[i].ID == id {
			return &s.packaging[i]
		}
	}
	return nil
}

func (s *memStore) productByID(id uuid.UUID) *model.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

// joinRecipe returns a copy with Material pointers attached, mimicking
// Preload("Ingredients.Material").
func (s *memStore) joinRecipe(rec model.Recipe) model.Recipe {
	out := rec
	out.Ingredients = make([]model.RecipeIngredient, len(rec.Ingredients))
	for i, ing := range rec.Ingredients {
		ing.Material = nil
		if m := s.materialByID(ing.MaterialID); m != nil {
			cp := *m
			ing.Material = &cp
		}
		out.Ingredients[i] = ing
	}
	return out
}

func (s *memStore) joinProduct(p model.Product, withRecipes bool) model.Product {
	out := p
	out.Packaging = make([]model.ProductPackagingLink, len(p.Packaging))
	for i, link := range p.Packaging {
		link.Packaging = nil
		if pk := s.packagingByID(link.PackagingID); pk != nil {
			cp := *pk
			link.Packaging = &cp
		}
		out.Packaging[i] = link
	}
	out.Recipes = make([]model.ProductRecipe, len(p.Recipes))
	for i, row := range p.Recipes {
		row.Recipe = nil
		if withRecipes {
			for j := range s.recipes {
				if s.recipes[j].ID == row.RecipeID {
					cp := s.recipes[j]
					row.Recipe = &cp
					break
				}
			}
		}
		out.Recipes[i] = row
	}
	return out
}

func (s *memStore) joinCustomProduct(cp model.CustomProduct, withProducts bool) model.CustomProduct {
	out := cp
	out.Packaging = make([]model.CustomProductPackagingLink, len(cp.Packaging))
	for i, link := range cp.Packaging {
		link.Packaging = nil
		if pk := s.packagingByID(link.PackagingID); pk != nil {
			c := *pk
			link.Packaging = &c
		}
		out.Packaging[i] = link
	}
	out.Items = make([]model.CustomProductItem, len(cp.Items))
	for i, item := range cp.Items {
		item.Product = nil
		if withProducts {
			if p := s.productByID(item.ProductID); p != nil {
				c := *p
				item.Product = &c
			}
		}
		out.Items[i] = item
	}
	return out
}

func nameMatches(name, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

func pageSlice[T any](rows []T, page, limit int) []T {
	if limit <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(rows) {
		return nil
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// ── MaterialRepository ────────────────────────────────────────────────────────

type stubMaterialRepo struct{ s *memStore }

func (r *stubMaterialRepo) Create(_ context.Context, m *model.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	for i := range r.s.materials {
		if r.s.materials[i].Name == m.Name && r.s.materials[i].Category == m.Category {
			return gorm.ErrDuplicatedKey
		}
	}
	r.s.materials = append(r.s.materials, *m)
	return nil
}

func (r *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m := r.s.materialByID(id); m != nil {
		cp := *m
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMaterialRepo) FindByName(_ context.Context, name string) (*model.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.materials {
		if r.s.materials[i].Name == name {
			cp := r.s.materials[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMaterialRepo) List(_ context.Context, filter dto.MaterialFilter) ([]model.Material, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.Material
	for _, m := range r.s.materials {
		if nameMatches(m.Name, filter.Name) && (filter.Category == "" || m.Category == filter.Category) {
			rows = append(rows, m)
		}
	}
	return pageSlice(rows, filter.Page, filter.Limit), int64(len(rows)), nil
}

func (r *stubMaterialRepo) All(_ context.Context) ([]model.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]model.Material(nil), r.s.materials...), nil
}

func (r *stubMaterialRepo) Update(_ context.Context, m *model.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.materials {
		if r.s.materials[i].ID == m.ID {
			r.s.materials[i] = *m
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubMaterialRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.materials {
		if r.s.materials[i].ID == id {
			r.s.materials = append(r.s.materials[:i], r.s.materials[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubMaterialRepo) DB() *gorm.DB { return nil }

var _ repository.MaterialRepository = (*stubMaterialRepo)(nil)

// ── PackagingRepository ───────────────────────────────────────────────────────

type stubPackagingRepo struct{ s *memStore }

func (r *stubPackagingRepo) Create(_ context.Context, p *model.Packaging) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range r.s.packaging {
		if r.s.packaging[i].Name == p.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	r.s.packaging = append(r.s.packaging, *p)
	return nil
}

func (r *stubPackagingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Packaging, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.s.packagingByID(id); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPackagingRepo) FindByName(_ context.Context, name string) (*model.Packaging, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.packaging {
		if r.s.packaging[i].Name == name {
			cp := r.s.packaging[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPackagingRepo) List(_ context.Context, filter dto.PackagingFilter) ([]model.Packaging, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.Packaging
	for _, p := range r.s.packaging {
		if nameMatches(p.Name, filter.Name) && (filter.Type == "" || p.Type == filter.Type) {
			rows = append(rows, p)
		}
	}
	return pageSlice(rows, filter.Page, filter.Limit), int64(len(rows)), nil
}

func (r *stubPackagingRepo) All(_ context.Context) ([]model.Packaging, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]model.Packaging(nil), r.s.packaging...), nil
}

func (r *stubPackagingRepo) Update(_ context.Context, p *model.Packaging) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.packaging {
		if r.s.packaging[i].ID == p.ID {
			r.s.packaging[i] = *p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPackagingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.packaging {
		if r.s.packaging[i].ID == id {
			r.s.packaging = append(r.s.packaging[:i], r.s.packaging[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ repository.PackagingRepository = (*stubPackagingRepo)(nil)

// ── RecipeRepository ──────────────────────────────────────────────────────────

type stubRecipeRepo struct{ s *memStore }

func (r *stubRecipeRepo) Create(_ context.Context, rec *model.Recipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	for i := range r.s.recipes {
		if r.s.recipes[i].Name == rec.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	for i := range rec.Ingredients {
		if rec.Ingredients[i].ID == uuid.Nil {
			rec.Ingredients[i].ID = uuid.New()
		}
		rec.Ingredients[i].RecipeID = rec.ID
	}
	r.s.recipes = append(r.s.recipes, *rec)
	return nil
}

func (r *stubRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.recipes {
		if r.s.recipes[i].ID == id {
			joined := r.s.joinRecipe(r.s.recipes[i])
			return &joined, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRecipeRepo) FindByName(_ context.Context, name string) (*model.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.recipes {
		if r.s.recipes[i].Name == name {
			joined := r.s.joinRecipe(r.s.recipes[i])
			return &joined, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRecipeRepo) List(_ context.Context, filter dto.RecipeFilter) ([]model.Recipe, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.Recipe
	for i := range r.s.recipes {
		rec := r.s.recipes[i]
		if nameMatches(rec.Name, filter.Name) && (filter.Category == "" || rec.Category == filter.Category) {
			rows = append(rows, r.s.joinRecipe(rec))
		}
	}
	return pageSlice(rows, filter.Page, filter.Limit), int64(len(rows)), nil
}

func (r *stubRecipeRepo) All(_ context.Context) ([]model.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]model.Recipe, 0, len(r.s.recipes))
	for i := range r.s.recipes {
		rows = append(rows, r.s.joinRecipe(r.s.recipes[i]))
	}
	return rows, nil
}

func (r *stubRecipeRepo) Update(_ context.Context, rec *model.Recipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.recipes {
		if r.s.recipes[i].ID == rec.ID {
			keep := r.s.recipes[i].Ingredients
			r.s.recipes[i] = *rec
			r.s.recipes[i].Ingredients = keep
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRecipeRepo) ReplaceIngredients(_ context.Context, recipeID uuid.UUID, rows []model.RecipeIngredient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.recipes {
		if r.s.recipes[i].ID == recipeID {
			for j := range rows {
				if rows[j].ID == uuid.Nil {
					rows[j].ID = uuid.New()
				}
				rows[j].RecipeID = recipeID
			}
			r.s.recipes[i].Ingredients = rows
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRecipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.recipes {
		if r.s.recipes[i].ID == id {
			r.s.recipes = append(r.s.recipes[:i], r.s.recipes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRecipeRepo) DB() *gorm.DB { return nil }

var _ repository.RecipeRepository = (*stubRecipeRepo)(nil)

// ── NutritionRepository ───────────────────────────────────────────────────────

type stubNutritionRepo struct{ s *memStore }

func (r *stubNutritionRepo) Upsert(_ context.Context, n *model.NutritionFacts) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.nutrition {
		if r.s.nutrition[i].MaterialID == n.MaterialID {
			n.ID = r.s.nutrition[i].ID
			r.s.nutrition[i] = *n
			return nil
		}
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.s.nutrition = append(r.s.nutrition, *n)
	return nil
}

func (r *stubNutritionRepo) FindByMaterialID(_ context.Context, materialID uuid.UUID) (*model.NutritionFacts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.nutrition {
		if r.s.nutrition[i].MaterialID == materialID {
			cp := r.s.nutrition[i]
			if m := r.s.materialByID(materialID); m != nil {
				mc := *m
				cp.Material = &mc
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubNutritionRepo) List(_ context.Context) ([]model.NutritionFacts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]model.NutritionFacts, 0, len(r.s.nutrition))
	for i := range r.s.nutrition {
		cp := r.s.nutrition[i]
		if m := r.s.materialByID(cp.MaterialID); m != nil {
			mc := *m
			cp.Material = &mc
		}
		rows = append(rows, cp)
	}
	return rows, nil
}

func (r *stubNutritionRepo) Delete(_ context.Context, materialID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.nutrition {
		if r.s.nutrition[i].MaterialID == materialID {
			r.s.nutrition = append(r.s.nutrition[:i], r.s.nutrition[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ repository.NutritionRepository = (*stubNutritionRepo)(nil)

// ── ProductRepository ─────────────────────────────────────────────────────────

type stubProductRepo struct{ s *memStore }

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range r.s.products {
		if r.s.products[i].Name == p.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	for i := range p.Recipes {
		if p.Recipes[i].ID == uuid.Nil {
			p.Recipes[i].ID = uuid.New()
		}
		p.Recipes[i].ProductID = p.ID
	}
	for i := range p.Packaging {
		if p.Packaging[i].ID == uuid.Nil {
			p.Packaging[i].ID = uuid.New()
		}
		p.Packaging[i].ProductID = p.ID
	}
	r.s.products = append(r.s.products, *p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.s.productByID(id); p != nil {
		joined := r.s.joinProduct(*p, false)
		return &joined, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) FindByName(_ context.Context, name string) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].Name == name {
			joined := r.s.joinProduct(r.s.products[i], false)
			return &joined, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.Product
	for i := range r.s.products {
		p := r.s.products[i]
		if nameMatches(p.Name, filter.Name) && (filter.Category == "" || p.Category == filter.Category) {
			rows = append(rows, r.s.joinProduct(p, false))
		}
	}
	return pageSlice(rows, filter.Page, filter.Limit), int64(len(rows)), nil
}

func (r *stubProductRepo) All(_ context.Context) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]model.Product, 0, len(r.s.products))
	for i := range r.s.products {
		rows = append(rows, r.s.joinProduct(r.s.products[i], true))
	}
	return rows, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == p.ID {
			keepRecipes := r.s.products[i].Recipes
			keepPackaging := r.s.products[i].Packaging
			r.s.products[i] = *p
			r.s.products[i].Recipes = keepRecipes
			r.s.products[i].Packaging = keepPackaging
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubProductRepo) ReplaceRecipes(_ context.Context, productID uuid.UUID, rows []model.ProductRecipe) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == productID {
			for j := range rows {
				if rows[j].ID == uuid.Nil {
					rows[j].ID = uuid.New()
				}
				rows[j].ProductID = productID
			}
			r.s.products[i].Recipes = rows
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubProductRepo) ReplacePackaging(_ context.Context, productID uuid.UUID, rows []model.ProductPackagingLink) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == productID {
			for j := range rows {
				if rows[j].ID == uuid.Nil {
					rows[j].ID = uuid.New()
				}
				rows[j].ProductID = productID
			}
			r.s.products[i].Packaging = rows
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == id {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── CustomProductRepository ───────────────────────────────────────────────────

type stubCustomProductRepo struct{ s *memStore }

func (r *stubCustomProductRepo) Create(_ context.Context, cp *model.CustomProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	for i := range r.s.customProducts {
		if r.s.customProducts[i].Name == cp.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	for i := range cp.Items {
		if cp.Items[i].ID == uuid.Nil {
			cp.Items[i].ID = uuid.New()
		}
		cp.Items[i].CustomProductID = cp.ID
	}
	for i := range cp.Packaging {
		if cp.Packaging[i].ID == uuid.Nil {
			cp.Packaging[i].ID = uuid.New()
		}
		cp.Packaging[i].CustomProductID = cp.ID
	}
	r.s.customProducts = append(r.s.customProducts, *cp)
	return nil
}

func (r *stubCustomProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CustomProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.customProducts {
		if r.s.customProducts[i].ID == id {
			joined := r.s.joinCustomProduct(r.s.customProducts[i], false)
			return &joined, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomProductRepo) FindByName(_ context.Context, name string) (*model.CustomProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.customProducts {
		if r.s.customProducts[i].Name == name {
			joined := r.s.joinCustomProduct(r.s.customProducts[i], false)
			return &joined, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomProductRepo) List(_ context.Context, filter dto.CustomProductFilter) ([]model.CustomProduct, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var rows []model.CustomProduct
	for i := range r.s.customProducts {
		cp := r.s.customProducts[i]
		if nameMatches(cp.Name, filter.Name) && (filter.Category == "" || cp.Category == filter.Category) {
			rows = append(rows, r.s.joinCustomProduct(cp, false))
		}
	}
	return pageSlice(rows, filter.Page, filter.Limit), int64(len(rows)), nil
}

func (r *stubCustomProductRepo) All(_ context.Context) ([]model.CustomProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := make([]model.CustomProduct, 0, len(r.s.customProducts))
	for i := range r.s.customProducts {
		rows = append(rows, r.s.joinCustomProduct(r.s.customProducts[i], true))
	}
	return rows, nil
}

func (r *stubCustomProductRepo) Update(_ context.Context, cp *model.CustomProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.customProducts {
		if r.s.customProducts[i].ID == cp.ID {
			keepItems := r.s.customProducts[i].Items
			keepPackaging := r.s.customProducts[i].Packaging
			r.s.customProducts[i] = *cp
			r.s.customProducts[i].Items = keepItems
			r.s.customProducts[i].Packaging = keepPackaging
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCustomProductRepo) ReplaceItems(_ context.Context, customProductID uuid.UUID, rows []model.CustomProductItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.customProducts {
		if r.s.customProducts[i].ID == customProductID {
			for j := range rows {
				if rows[j].ID == uuid.Nil {
					rows[j].ID = uuid.New()
				}
				rows[j].CustomProductID = customProductID
			}
			r.s.customProducts[i].Items = rows
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCustomProductRepo) ReplacePackaging(_ context.Context, customProductID uuid.UUID, rows []model.CustomProductPackagingLink) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.customProducts {
		if r.s.customProducts[i].ID == customProductID {
			for j := range rows {
				if rows[j].ID == uuid.Nil {
					rows[j].ID = uuid.New()
				}
				rows[j].CustomProductID = customProductID
			}
			r.s.customProducts[i].Packaging = rows
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCustomProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.customProducts {
		if r.s.customProducts[i].ID == id {
			r.s.customProducts = append(r.s.customProducts[:i], r.s.customProducts[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ repository.CustomProductRepository = (*stubCustomProductRepo)(nil)

// ── Fixture wiring ────────────────────────────────────────────────────────────

type fixture struct {
	store          *memStore
	materials      *stubMaterialRepo
	packaging      *stubPackagingRepo
	recipes        *stubRecipeRepo
	nutrition      *stubNutritionRepo
	products       *stubProductRepo
	customProducts *stubCustomProductRepo
}

func newFixture() *fixture {
	s := newMemStore()
	return &fixture{
		store:          s,
		materials:      &stubMaterialRepo{s: s},
		packaging:      &stubPackagingRepo{s: s},
		recipes:        &stubRecipeRepo{s: s},
		nutrition:      &stubNutritionRepo{s: s},
		products:       &stubProductRepo{s: s},
		customProducts: &stubCustomProductRepo{s: s},
	}
}
