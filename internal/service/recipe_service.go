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

// RecipeService handles recipe writes. Reads go through CostingService so
// every response carries freshly derived costs.
type RecipeService interface {
	Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeCostView, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateRecipeRequest) (*dto.RecipeCostView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type recipeService struct {
	repo    repository.RecipeRepository
	costing CostingService
}

func NewRecipeService(repo repository.RecipeRepository, costing CostingService) RecipeService {
	return &recipeService{repo: repo, costing: costing}
}

func ingredientRowsFromInput(inputs []dto.RecipeIngredientInput) ([]model.RecipeIngredient, error) {
	rows := make([]model.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		mid, err := uuid.Parse(in.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("invalid material_id %q: %w", in.MaterialID, err)
		}
		rows = append(rows, model.RecipeIngredient{MaterialID: mid, QuantityGrams: in.QuantityGrams})
	}
	return rows, nil
}

func (s *recipeService) Create(ctx context.Context, req dto.CreateRecipeRequest) (*dto.RecipeCostView, error) {
	rows, err := ingredientRowsFromInput(req.Ingredients)
	if err != nil {
		return nil, err
	}

	rec := &model.Recipe{
		Name:             req.Name,
		Category:         req.Category,
		TotalPortions:    req.TotalPortions,
		TotalWeightGrams: req.TotalWeightGrams,
		Ingredients:      rows,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("recipe %q: %w", req.Name, ErrDuplicateName)
		}
		return nil, err
	}
	return s.costing.ResolveRecipe(ctx, rec.ID)
}

func (s *recipeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRecipeRequest) (*dto.RecipeCostView, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Category != nil {
		rec.Category = *req.Category
	}
	if req.TotalPortions != nil {
		rec.TotalPortions = *req.TotalPortions
	}
	if req.TotalWeightGrams != nil {
		rec.TotalWeightGrams = *req.TotalWeightGrams
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("recipe %q: %w", rec.Name, ErrDuplicateName)
		}
		return nil, err
	}

	// A nil Ingredients slice means "leave them alone"; an empty one clears.
	if req.Ingredients != nil {
		rows, err := ingredientRowsFromInput(req.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceIngredients(ctx, rec.ID, rows); err != nil {
			return nil, err
		}
	}

	return s.costing.ResolveRecipe(ctx, rec.ID)
}

func (s *recipeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
