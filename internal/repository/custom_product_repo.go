package repository

import (
	"context"

	"bakecost/internal/dto"
	"bakecost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomProductRepository interface {
	Create(ctx context.Context, cp *model.CustomProduct) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CustomProduct, error)
	FindByName(ctx context.Context, name string) (*model.CustomProduct, error)
	List(ctx context.Context, filter dto.CustomProductFilter) ([]model.CustomProduct, int64, error)
	All(ctx context.Context) ([]model.CustomProduct, error)
	Update(ctx context.Context, cp *model.CustomProduct) error
	ReplaceItems(ctx context.Context, customProductID uuid.UUID, rows []model.CustomProductItem) error
	ReplacePackaging(ctx context.Context, customProductID uuid.UUID, rows []model.CustomProductPackagingLink) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customProductRepo struct{ db *gorm.DB }

func NewCustomProductRepository(db *gorm.DB) CustomProductRepository {
	return &customProductRepo{db: db}
}

func (r *customProductRepo) Create(ctx context.Context, cp *model.CustomProduct) error {
	return r.db.WithContext(ctx).Create(cp).Error
}

func (r *customProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CustomProduct, error) {
	var cp model.CustomProduct
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Packaging").
		Preload("Packaging.Packaging").
		First(&cp, "id = ?", id).Error
	return &cp, err
}

func (r *customProductRepo) FindByName(ctx context.Context, name string) (*model.CustomProduct, error) {
	var cp model.CustomProduct
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Packaging").
		Preload("Packaging.Packaging").
		Where("name = ?", name).First(&cp).Error
	return &cp, err
}

func (r *customProductRepo) List(ctx context.Context, filter dto.CustomProductFilter) ([]model.CustomProduct, int64, error) {
	var customProducts []model.CustomProduct
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CustomProduct{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Preload("Packaging").
		Preload("Packaging.Packaging").
		Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&customProducts).Error
	return customProducts, total, err
}

func (r *customProductRepo) All(ctx context.Context) ([]model.CustomProduct, error) {
	var rows []model.CustomProduct
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Packaging").
		Preload("Packaging.Packaging").
		Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *customProductRepo) Update(ctx context.Context, cp *model.CustomProduct) error {
	return r.db.WithContext(ctx).Omit("Items", "Packaging").Save(cp).Error
}

func (r *customProductRepo) ReplaceItems(ctx context.Context, customProductID uuid.UUID, rows []model.CustomProductItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("custom_product_id = ?", customProductID).Delete(&model.CustomProductItem{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].CustomProductID = customProductID
		}
		return tx.Create(&rows).Error
	})
}

func (r *customProductRepo) ReplacePackaging(ctx context.Context, customProductID uuid.UUID, rows []model.CustomProductPackagingLink) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("custom_product_id = ?", customProductID).Delete(&model.CustomProductPackagingLink{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].CustomProductID = customProductID
		}
		return tx.Create(&rows).Error
	})
}

func (r *customProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CustomProduct{}, "id = ?", id).Error
}
