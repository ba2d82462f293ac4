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

// ErrDuplicateName is returned when a create or rename would collide with
// an existing row under the entity's natural-name uniqueness rule.
var ErrDuplicateName = errors.New("name already in use")

type MaterialService interface {
	Create(ctx context.Context, req dto.CreateMaterialRequest) (*dto.MaterialResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	List(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest) (*dto.MaterialResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type materialService struct {
	repo repository.MaterialRepository
}

func NewMaterialService(repo repository.MaterialRepository) MaterialService {
	return &materialService{repo: repo}
}

func (s *materialService) Create(ctx context.Context, req dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	m := &model.Material{
		Name:         req.Name,
		Category:     req.Category,
		PricePerGram: req.PricePerGram,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("material %q in category %q: %w", req.Name, req.Category, ErrDuplicateName)
		}
		return nil, err
	}
	return materialToResponse(m), nil
}

func (s *materialService) GetByID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return materialToResponse(m), nil
}

func (s *materialService) List(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *materialToResponse(&rows[i]))
	}
	return &dto.MaterialListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *materialService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Category != nil {
		m.Category = *req.Category
	}
	if req.PricePerGram != nil {
		m.PricePerGram = *req.PricePerGram
	}

	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("material %q in category %q: %w", m.Name, m.Category, ErrDuplicateName)
		}
		return nil, err
	}
	return materialToResponse(m), nil
}

func (s *materialService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func materialToResponse(m *model.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		Category:     m.Category,
		PricePerGram: m.PricePerGram,
	}
}
