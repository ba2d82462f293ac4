package service

import (
	"context"
	"errors"

	"bakecost/internal/dto"
	"bakecost/internal/model"
	"bakecost/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested root entity does not exist.
// Missing children never produce this error — their contribution degrades
// to zero so one dangling reference cannot take down a whole listing.
var ErrNotFound = errors.New("not found")

// listResolveWorkers bounds the fan-out when resolving listing views.
// Each resolution is read-only and touches disjoint rows, so parallel
// resolution against the same storage is safe.
const listResolveWorkers = 8

// CostingService recomputes the full cost view of any recipe, product, or
// custom product on every call. Nothing is cached across calls: list and
// detail paths share the exact same per-item resolution, and results always
// reflect current material prices.
type CostingService interface {
	ResolveRecipe(ctx context.Context, id uuid.UUID) (*dto.RecipeCostView, error)
	ResolveAllRecipes(ctx context.Context, filter dto.RecipeFilter) (*dto.RecipeCostListResponse, error)
	ResolveProduct(ctx context.Context, id uuid.UUID) (*dto.ProductCostView, error)
	ResolveCustomProduct(ctx context.Context, id uuid.UUID) (*dto.CustomProductCostView, error)
	ResolveAllProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductCostListResponse, error)
	ResolveAllCustomProducts(ctx context.Context, filter dto.CustomProductFilter) (*dto.CustomProductCostListResponse, error)
}

type costingService struct {
	recipes        repository.RecipeRepository
	products       repository.ProductRepository
	customProducts repository.CustomProductRepository
}

func NewCostingService(
	recipes repository.RecipeRepository,
	products repository.ProductRepository,
	customProducts repository.CustomProductRepository,
) CostingService {
	return &costingService{recipes: recipes, products: products, customProducts: customProducts}
}

// safeDiv returns n/d, or zero when d is not positive. Write-time validation
// rejects zero portions and weight, so this guard only fires for rows that
// predate validation or arrived through a restore.
func safeDiv(n, d decimal.Decimal) decimal.Decimal {
	if d.Sign() <= 0 {
		return decimal.Zero
	}
	return n.Div(d)
}

// applyOverhead derives the management fee, adjusted cost, profit, and
// profit margin from a raw total cost. Margin is exactly zero when the
// selling price is not positive.
func applyOverhead(totalCost, feePct, sellingPrice decimal.Decimal) (fee, adjusted, profit, margin decimal.Decimal) {
	fee = totalCost.Mul(feePct).Div(decimal.NewFromInt(100))
	adjusted = totalCost.Add(fee)
	profit = sellingPrice.Sub(adjusted)
	if sellingPrice.Sign() > 0 {
		margin = profit.Div(sellingPrice).Mul(decimal.NewFromInt(100))
	} else {
		margin = decimal.Zero
	}
	return fee, adjusted, profit, margin
}

// ── Recipe ───────────────────────────────────────────────────────────────────

func (s *costingService) ResolveRecipe(ctx context.Context, id uuid.UUID) (*dto.RecipeCostView, error) {
	rec, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return resolveRecipeModel(rec), nil
}

// resolveRecipeModel is a pure function over a loaded recipe and its
// ingredient rows. Rows with quantity <= 0 and rows whose material row is
// gone contribute nothing.
func resolveRecipeModel(rec *model.Recipe) *dto.RecipeCostView {
	view := &dto.RecipeCostView{
		ID:               rec.ID.String(),
		Name:             rec.Name,
		Category:         rec.Category,
		TotalPortions:    rec.TotalPortions,
		TotalWeightGrams: rec.TotalWeightGrams,
		Ingredients:      make([]dto.IngredientCostLine, 0, len(rec.Ingredients)),
		TotalCost:        decimal.Zero,
	}

	for _, ing := range rec.Ingredients {
		if ing.QuantityGrams.Sign() <= 0 {
			continue
		}
		if ing.Material == nil {
			log.Warn().
				Str("recipe", rec.Name).
				Str("material_id", ing.MaterialID.String()).
				Msg("costing: ingredient references missing material, contributing zero")
			continue
		}
		cost := ing.QuantityGrams.Mul(ing.Material.PricePerGram)
		view.Ingredients = append(view.Ingredients, dto.IngredientCostLine{
			MaterialID:    ing.MaterialID.String(),
			MaterialName:  ing.Material.Name,
			QuantityGrams: ing.QuantityGrams,
			PricePerGram:  ing.Material.PricePerGram,
			Cost:          cost,
		})
		view.TotalCost = view.TotalCost.Add(cost)
	}

	view.CostPerPortion = safeDiv(view.TotalCost, decimal.NewFromInt(int64(rec.TotalPortions)))
	view.CostPerGram = safeDiv(view.TotalCost, rec.TotalWeightGrams)
	return view
}

// ResolveAllRecipes resolves a page of recipes. The ingredient rows come
// preloaded from the list query, so resolution here is pure arithmetic and
// needs no fan-out.
func (s *costingService) ResolveAllRecipes(ctx context.Context, filter dto.RecipeFilter) (*dto.RecipeCostListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	rows, total, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]dto.RecipeCostView, 0, len(rows))
	for i := range rows {
		views = append(views, *resolveRecipeModel(&rows[i]))
	}
	return &dto.RecipeCostListResponse{Data: views, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Product ──────────────────────────────────────────────────────────────────

func (s *costingService) ResolveProduct(ctx context.Context, id uuid.UUID) (*dto.ProductCostView, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.resolveProductModel(ctx, p)
}

// resolveProductModel re-derives each referenced recipe from scratch — no
// batching across rows, so the view always reflects current material prices
// even when several rows share a recipe.
func (s *costingService) resolveProductModel(ctx context.Context, p *model.Product) (*dto.ProductCostView, error) {
	view := &dto.ProductCostView{
		ID:               p.ID.String(),
		Name:             p.Name,
		Category:         p.Category,
		SellingPrice:     p.SellingPrice,
		ManagementFeePct: p.ManagementFeePct,
		Recipes:          make([]dto.RecipeCostLine, 0, len(p.Recipes)),
		Packaging:        make([]dto.PackagingCostLine, 0, len(p.Packaging)),
		RecipeCost:       decimal.Zero,
		PackagingCost:    decimal.Zero,
	}

	for _, row := range p.Recipes {
		rv, err := s.ResolveRecipe(ctx, row.RecipeID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				log.Warn().
					Str("product", p.Name).
					Str("recipe_id", row.RecipeID.String()).
					Msg("costing: product references missing recipe, contributing zero")
				continue
			}
			return nil, err
		}

		unitCost := rv.CostPerPortion
		if row.Unit == model.UnitGrams {
			unitCost = rv.CostPerGram
		}
		cost := unitCost.Mul(row.Quantity)
		view.Recipes = append(view.Recipes, dto.RecipeCostLine{
			RecipeID:   row.RecipeID.String(),
			RecipeName: rv.Name,
			Quantity:   row.Quantity,
			Unit:       row.Unit,
			UnitCost:   unitCost,
			Cost:       cost,
		})
		view.RecipeCost = view.RecipeCost.Add(cost)
	}

	for _, link := range p.Packaging {
		if link.Packaging == nil {
			log.Warn().
				Str("product", p.Name).
				Str("packaging_id", link.PackagingID.String()).
				Msg("costing: product references missing packaging, contributing zero")
			continue
		}
		cost := link.Packaging.UnitCost.Mul(decimal.NewFromInt(int64(link.Quantity)))
		view.Packaging = append(view.Packaging, dto.PackagingCostLine{
			PackagingID:   link.PackagingID.String(),
			PackagingName: link.Packaging.Name,
			Quantity:      link.Quantity,
			UnitCost:      link.Packaging.UnitCost,
			Cost:          cost,
		})
		view.PackagingCost = view.PackagingCost.Add(cost)
	}

	view.TotalCost = view.RecipeCost.Add(view.PackagingCost)
	view.ManagementFee, view.AdjustedCost, view.Profit, view.ProfitMargin =
		applyOverhead(view.TotalCost, p.ManagementFeePct, p.SellingPrice)
	return view, nil
}

func (s *costingService) ResolveAllProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductCostListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]dto.ProductCostView, len(products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listResolveWorkers)
	for i := range products {
		g.Go(func() error {
			v, err := s.resolveProductModel(gctx, &products[i])
			if err != nil {
				// One bad product must not take down the listing.
				log.Warn().Err(err).Str("product", products[i].Name).Msg("costing: product resolution degraded")
				views[i] = degradedProductView(&products[i])
				return nil
			}
			views[i] = *v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.ProductCostListResponse{
		Data:  views,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func degradedProductView(p *model.Product) dto.ProductCostView {
	_, adjusted, profit, margin := applyOverhead(decimal.Zero, p.ManagementFeePct, p.SellingPrice)
	return dto.ProductCostView{
		ID:               p.ID.String(),
		Name:             p.Name,
		Category:         p.Category,
		SellingPrice:     p.SellingPrice,
		ManagementFeePct: p.ManagementFeePct,
		Recipes:          []dto.RecipeCostLine{},
		Packaging:        []dto.PackagingCostLine{},
		AdjustedCost:     adjusted,
		Profit:           profit,
		ProfitMargin:     margin,
	}
}

// ── Custom product ───────────────────────────────────────────────────────────

func (s *costingService) ResolveCustomProduct(ctx context.Context, id uuid.UUID) (*dto.CustomProductCostView, error) {
	cp, err := s.customProducts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.resolveCustomProductModel(ctx, cp)
}

// resolveCustomProductModel resolves each item's product recursively — the
// item cost term uses the product's adjusted cost, so a custom product's
// price already carries the management fee of its components.
func (s *costingService) resolveCustomProductModel(ctx context.Context, cp *model.CustomProduct) (*dto.CustomProductCostView, error) {
	view := &dto.CustomProductCostView{
		ID:               cp.ID.String(),
		Name:             cp.Name,
		Category:         cp.Category,
		SellingPrice:     cp.SellingPrice,
		ManagementFeePct: cp.ManagementFeePct,
		Items:            make([]dto.ProductItemCostLine, 0, len(cp.Items)),
		Packaging:        make([]dto.PackagingCostLine, 0, len(cp.Packaging)),
		ItemCost:         decimal.Zero,
		PackagingCost:    decimal.Zero,
	}

	for _, item := range cp.Items {
		pv, err := s.ResolveProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				log.Warn().
					Str("custom_product", cp.Name).
					Str("product_id", item.ProductID.String()).
					Msg("costing: custom product references missing product, contributing zero")
				continue
			}
			return nil, err
		}
		cost := pv.AdjustedCost.Mul(item.Quantity)
		view.Items = append(view.Items, dto.ProductItemCostLine{
			ProductID:    item.ProductID.String(),
			ProductName:  pv.Name,
			Quantity:     item.Quantity,
			AdjustedCost: pv.AdjustedCost,
			Cost:         cost,
		})
		view.ItemCost = view.ItemCost.Add(cost)
	}

	for _, link := range cp.Packaging {
		if link.Packaging == nil {
			log.Warn().
				Str("custom_product", cp.Name).
				Str("packaging_id", link.PackagingID.String()).
				Msg("costing: custom product references missing packaging, contributing zero")
			continue
		}
		cost := link.Packaging.UnitCost.Mul(decimal.NewFromInt(int64(link.Quantity)))
		view.Packaging = append(view.Packaging, dto.PackagingCostLine{
			PackagingID:   link.PackagingID.String(),
			PackagingName: link.Packaging.Name,
			Quantity:      link.Quantity,
			UnitCost:      link.Packaging.UnitCost,
			Cost:          cost,
		})
		view.PackagingCost = view.PackagingCost.Add(cost)
	}

	view.TotalCost = view.ItemCost.Add(view.PackagingCost)
	view.ManagementFee, view.AdjustedCost, view.Profit, view.ProfitMargin =
		applyOverhead(view.TotalCost, cp.ManagementFeePct, cp.SellingPrice)
	return view, nil
}

func (s *costingService) ResolveAllCustomProducts(ctx context.Context, filter dto.CustomProductFilter) (*dto.CustomProductCostListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	customProducts, total, err := s.customProducts.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]dto.CustomProductCostView, len(customProducts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listResolveWorkers)
	for i := range customProducts {
		g.Go(func() error {
			v, err := s.resolveCustomProductModel(gctx, &customProducts[i])
			if err != nil {
				log.Warn().Err(err).Str("custom_product", customProducts[i].Name).Msg("costing: custom product resolution degraded")
				views[i] = dto.CustomProductCostView{
					ID:           customProducts[i].ID.String(),
					Name:         customProducts[i].Name,
					Category:     customProducts[i].Category,
					SellingPrice: customProducts[i].SellingPrice,
					Items:        []dto.ProductItemCostLine{},
					Packaging:    []dto.PackagingCostLine{},
				}
				return nil
			}
			views[i] = *v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.CustomProductCostListResponse{
		Data:  views,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
