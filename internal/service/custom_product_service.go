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

type CustomProductService interface {
	Create(ctx context.Context, req dto.CreateCustomProductRequest) (*dto.CustomProductCostView, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomProductRequest) (*dto.CustomProductCostView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customProductService struct {
	repo    repository.CustomProductRepository
	costing CostingService
}

func NewCustomProductService(repo repository.CustomProductRepository, costing CostingService) CustomProductService {
	return &customProductService{repo: repo, costing: costing}
}

func customItemRowsFromInput(inputs []dto.CustomProductItemInput) ([]model.CustomProductItem, error) {
	rows := make([]model.CustomProductItem, 0, len(inputs))
	for _, in := range inputs {
		pid, err := uuid.Parse(in.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id %q: %w", in.ProductID, err)
		}
		rows = append(rows, model.CustomProductItem{ProductID: pid, Quantity: in.Quantity})
	}
	return rows, nil
}

func customPackagingRowsFromInput(inputs []dto.PackagingLinkInput) ([]model.CustomProductPackagingLink, error) {
	rows := make([]model.CustomProductPackagingLink, 0, len(inputs))
	for _, in := range inputs {
		pid, err := uuid.Parse(in.PackagingID)
		if err != nil {
			return nil, fmt.Errorf("invalid packaging_id %q: %w", in.PackagingID, err)
		}
		rows = append(rows, model.CustomProductPackagingLink{PackagingID: pid, Quantity: in.Quantity})
	}
	return rows, nil
}

func (s *customProductService) Create(ctx context.Context, req dto.CreateCustomProductRequest) (*dto.CustomProductCostView, error) {
	itemRows, err := customItemRowsFromInput(req.Items)
	if err != nil {
		return nil, err
	}
	packagingRows, err := customPackagingRowsFromInput(req.Packaging)
	if err != nil {
		return nil, err
	}

	cp := &model.CustomProduct{
		Name:             req.Name,
		Category:         req.Category,
		SellingPrice:     req.SellingPrice,
		ManagementFeePct: req.ManagementFeePct,
		Items:            itemRows,
		Packaging:        packagingRows,
	}
	if err := s.repo.Create(ctx, cp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("custom product %q: %w", req.Name, ErrDuplicateName)
		}
		return nil, err
	}
	return s.costing.ResolveCustomProduct(ctx, cp.ID)
}

func (s *customProductService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomProductRequest) (*dto.CustomProductCostView, error) {
	cp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		cp.Name = *req.Name
	}
	if req.Category != nil {
		cp.Category = *req.Category
	}
	if req.SellingPrice != nil {
		cp.SellingPrice = *req.SellingPrice
	}
	if req.ManagementFeePct != nil {
		cp.ManagementFeePct = *req.ManagementFeePct
	}

	if err := s.repo.Update(ctx, cp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("custom product %q: %w", cp.Name, ErrDuplicateName)
		}
		return nil, err
	}

	if req.Items != nil {
		rows, err := customItemRowsFromInput(req.Items)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceItems(ctx, cp.ID, rows); err != nil {
			return nil, err
		}
	}
	if req.Packaging != nil {
		rows, err := customPackagingRowsFromInput(req.Packaging)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplacePackaging(ctx, cp.ID, rows); err != nil {
			return nil, err
		}
	}

	return s.costing.ResolveCustomProduct(ctx, cp.ID)
}

func (s *customProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
