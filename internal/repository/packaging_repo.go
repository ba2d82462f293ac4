package repository

import (
	"context"

	"bakecost/internal/dto"
	"bakecost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PackagingRepository interface {
	Create(ctx context.Context, p *model.Packaging) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Packaging, error)
	FindByName(ctx context.Context, name string) (*model.Packaging, error)
	List(ctx context.Context, filter dto.PackagingFilter) ([]model.Packaging, int64, error)
	All(ctx context.Context) ([]model.Packaging, error)
	Update(ctx context.Context, p *model.Packaging) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type packagingRepo struct{ db *gorm.DB }

func NewPackagingRepository(db *gorm.DB) PackagingRepository { return &packagingRepo{db: db} }

func (r *packagingRepo) Create(ctx context.Context, p *model.Packaging) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *packagingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Packaging, error) {
	var p model.Packaging
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *packagingRepo) FindByName(ctx context.Context, name string) (*model.Packaging, error) {
	var p model.Packaging
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	return &p, err
}

func (r *packagingRepo) List(ctx context.Context, filter dto.PackagingFilter) ([]model.Packaging, int64, error) {
	var packaging []model.Packaging
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Packaging{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&packaging).Error
	return packaging, total, err
}

func (r *packagingRepo) All(ctx context.Context) ([]model.Packaging, error) {
	var rows []model.Packaging
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *packagingRepo) Update(ctx context.Context, p *model.Packaging) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *packagingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Packaging{}, "id = ?", id).Error
}
