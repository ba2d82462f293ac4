package service

import (
	"context"
	"errors"
	"fmt"

	"bakecost/internal/dto"
	"bakecost/internal/model"
	"bakecost/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductCostView, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductCostView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo    repository.ProductRepository
	costing CostingService
}

func NewProductService(repo repository.ProductRepository, costing CostingService) ProductService {
	return &productService{repo: repo, costing: costing}
}

func productRecipeRowsFromInput(inputs []dto.ProductRecipeInput) ([]model.ProductRecipe, error) {
	rows := make([]model.ProductRecipe, 0, len(inputs))
	for _, in := range inputs {
		rid, err := uuid.Parse(in.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("invalid recipe_id %q: %w", in.RecipeID, err)
		}
		rows = append(rows, model.ProductRecipe{RecipeID: rid, Quantity: in.Quantity, Unit: in.Unit})
	}
	return rows, nil
}

func productPackagingRowsFromInput(inputs []dto.PackagingLinkInput) ([]model.ProductPackagingLink, error) {
	rows := make([]model.ProductPackagingLink, 0, len(inputs))
	for _, in := range inputs {
		pid, err := uuid.Parse(in.PackagingID)
		if err != nil {
			return nil, fmt.Errorf("invalid packaging_id %q: %w", in.PackagingID, err)
		}
		rows = append(rows, model.ProductPackagingLink{PackagingID: pid, Quantity: in.Quantity})
	}
	return rows, nil
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductCostView, error) {
	recipeRows, err := productRecipeRowsFromInput(req.Recipes)
	if err != nil {
		return nil, err
	}
	packagingRows, err := productPackagingRowsFromInput(req.Packaging)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:             req.Name,
		Category:         req.Category,
		SellingPrice:     req.SellingPrice,
		ManagementFeePct: req.ManagementFeePct,
		Recipes:          recipeRows,
		Packaging:        packagingRows,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("product %q: %w", req.Name, ErrDuplicateName)
		}
		return nil, err
	}
	return s.costing.ResolveProduct(ctx, p.ID)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductCostView, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}
	if req.ManagementFeePct != nil {
		p.ManagementFeePct = *req.ManagementFeePct
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("product %q: %w", p.Name, ErrDuplicateName)
		}
		return nil, err
	}

	if req.Recipes != nil {
		rows, err := productRecipeRowsFromInput(req.Recipes)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceRecipes(ctx, p.ID, rows); err != nil {
			return nil, err
		}
	}
	if req.Packaging != nil {
		rows, err := productPackagingRowsFromInput(req.Packaging)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplacePackaging(ctx, p.ID, rows); err != nil {
			return nil, err
		}
	}

	return s.costing.ResolveProduct(ctx, p.ID)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
