package repository

import (
	"context"

	"bakecost/internal/dto"
	"bakecost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	// FindByID preloads recipe and packaging join rows; the packaging rows
	// are joined with their Packaging so cost resolution needs no extra read.
	// The recipe rows carry ids only — recipes are re-resolved through the
	// recipe repository so their costs always reflect current material prices.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	// All preloads recipe rows joined with their Recipe for name-keyed
	// snapshot serialization, unlike the id-only List and FindByID loads.
	All(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	ReplaceRecipes(ctx context.Context, productID uuid.UUID, rows []model.ProductRecipe) error
	ReplacePackaging(ctx context.Context, productID uuid.UUID, rows []model.ProductPackagingLink) error
	Delete(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Recipes").
		Preload("Packaging").
		Preload("Packaging.Packaging").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Recipes").
		Preload("Packaging").
		Preload("Packaging.Packaging").
		Where("name = ?", name).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
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
	err := q.Preload("Recipes").
		Preload("Packaging").
		Preload("Packaging.Packaging").
		Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) All(ctx context.Context) ([]model.Product, error) {
	var rows []model.Product
	err := r.db.WithContext(ctx).
		Preload("Recipes").
		Preload("Recipes.Recipe").
		Preload("Packaging").
		Preload("Packaging.Packaging").
		Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Omit("Recipes", "Packaging").Save(p).Error
}

func (r *productRepo) ReplaceRecipes(ctx context.Context, productID uuid.UUID, rows []model.ProductRecipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.ProductRecipe{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ProductID = productID
		}
		return tx.Create(&rows).Error
	})
}

func (r *productRepo) ReplacePackaging(ctx context.Context, productID uuid.UUID, rows []model.ProductPackagingLink) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.ProductPackagingLink{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ProductID = productID
		}
		return tx.Create(&rows).Error
	})
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
