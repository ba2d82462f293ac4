package service

import (
	"context"
	"errors"

	"bakecost/internal/dto"
	"bakecost/internal/model"
	"bakecost/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NutritionService manages the one-per-material nutrition rows. Upsert
// semantics: writing facts for a material that already has them replaces
// the existing row.
type NutritionService interface {
	Upsert(ctx context.Context, req dto.UpsertNutritionRequest) (*dto.NutritionResponse, error)
	GetByMaterialID(ctx context.Context, materialID uuid.UUID) (*dto.NutritionResponse, error)
	List(ctx context.Context) ([]dto.NutritionResponse, error)
	Delete(ctx context.Context, materialID uuid.UUID) error
}

type nutritionService struct {
	repo      repository.NutritionRepository
	materials repository.MaterialRepository
}

func NewNutritionService(repo repository.NutritionRepository, materials repository.MaterialRepository) NutritionService {
	return &nutritionService{repo: repo, materials: materials}
}

func (s *nutritionService) Upsert(ctx context.Context, req dto.UpsertNutritionRequest) (*dto.NutritionResponse, error) {
	mid, err := uuid.Parse(req.MaterialID)
	if err != nil {
		return nil, ErrNotFound
	}
	m, err := s.materials.FindByID(ctx, mid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	n := &model.NutritionFacts{
		MaterialID: mid,
		Calories:   req.Calories,
		Protein:    req.Protein,
		Carbs:      req.Carbs,
		Fat:        req.Fat,
		Sugar:      req.Sugar,
		Sodium:     req.Sodium,
	}
	if err := s.repo.Upsert(ctx, n); err != nil {
		return nil, err
	}

	resp := nutritionToResponse(n)
	resp.MaterialName = m.Name
	return resp, nil
}

func (s *nutritionService) GetByMaterialID(ctx context.Context, materialID uuid.UUID) (*dto.NutritionResponse, error) {
	n, err := s.repo.FindByMaterialID(ctx, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := nutritionToResponse(n)
	if n.Material != nil {
		resp.MaterialName = n.Material.Name
	}
	return resp, nil
}

func (s *nutritionService) List(ctx context.Context) ([]dto.NutritionResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NutritionResponse, 0, len(rows))
	for i := range rows {
		resp := nutritionToResponse(&rows[i])
		if rows[i].Material != nil {
			resp.MaterialName = rows[i].Material.Name
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *nutritionService) Delete(ctx context.Context, materialID uuid.UUID) error {
	if _, err := s.repo.FindByMaterialID(ctx, materialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, materialID)
}

func nutritionToResponse(n *model.NutritionFacts) *dto.NutritionResponse {
	return &dto.NutritionResponse{
		ID:         n.ID.String(),
		MaterialID: n.MaterialID.String(),
		Calories:   n.Calories,
		Protein:    n.Protein,
		Carbs:      n.Carbs,
		Fat:        n.Fat,
		Sugar:      n.Sugar,
		Sodium:     n.Sodium,
	}
}
