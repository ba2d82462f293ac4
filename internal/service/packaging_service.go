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

type PackagingService interface {
	Create(ctx context.Context, req dto.CreatePackagingRequest) (*dto.PackagingResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PackagingResponse, error)
	List(ctx context.Context, filter dto.PackagingFilter) (*dto.PackagingListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePackagingRequest) (*dto.PackagingResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type packagingService struct {
	repo repository.PackagingRepository
}

func NewPackagingService(repo repository.PackagingRepository) PackagingService {
	return &packagingService{repo: repo}
}

func (s *packagingService) Create(ctx context.Context, req dto.CreatePackagingRequest) (*dto.PackagingResponse, error) {
	p := &model.Packaging{
		Name:     req.Name,
		Type:     req.Type,
		UnitCost: req.UnitCost,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("packaging %q: %w", req.Name, ErrDuplicateName)
		}
		return nil, err
	}
	return packagingToResponse(p), nil
}

func (s *packagingService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PackagingResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return packagingToResponse(p), nil
}

func (s *packagingService) List(ctx context.Context, filter dto.PackagingFilter) (*dto.PackagingListResponse, error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PackagingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *packagingToResponse(&rows[i]))
	}
	return &dto.PackagingListResponse{Data: out, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *packagingService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePackagingRequest) (*dto.PackagingResponse, error) {
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
	if req.Type != nil {
		p.Type = *req.Type
	}
	if req.UnitCost != nil {
		p.UnitCost = *req.UnitCost
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("packaging %q: %w", p.Name, ErrDuplicateName)
		}
		return nil, err
	}
	return packagingToResponse(p), nil
}

func (s *packagingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func packagingToResponse(p *model.Packaging) *dto.PackagingResponse {
	return &dto.PackagingResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Type:     p.Type,
		UnitCost: p.UnitCost,
	}
}
