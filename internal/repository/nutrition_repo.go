package repository

import (
	"context"
	"errors"

	"bakecost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NutritionRepository interface {
	// Upsert creates or updates the nutrition row for n.MaterialID — the
	// material id is the natural key, one row per material.
	Upsert(ctx context.Context, n *model.NutritionFacts) error
	FindByMaterialID(ctx context.Context, materialID uuid.UUID) (*model.NutritionFacts, error)
	List(ctx context.Context) ([]model.NutritionFacts, error)
	Delete(ctx context.Context, materialID uuid.UUID) error
}

type nutritionRepo struct{ db *gorm.DB }

func NewNutritionRepository(db *gorm.DB) NutritionRepository { return &nutritionRepo{db: db} }

func (r *nutritionRepo) Upsert(ctx context.Context, n *model.NutritionFacts) error {
	var existing model.NutritionFacts
	err := r.db.WithContext(ctx).Where("material_id = ?", n.MaterialID).First(&existing).Error
	switch {
	case err == nil:
		n.ID = existing.ID
		n.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(n).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(n).Error
	default:
		return err
	}
}

func (r *nutritionRepo) FindByMaterialID(ctx context.Context, materialID uuid.UUID) (*model.NutritionFacts, error) {
	var n model.NutritionFacts
	err := r.db.WithContext(ctx).Preload("Material").Where("material_id = ?", materialID).First(&n).Error
	return &n, err
}

func (r *nutritionRepo) List(ctx context.Context) ([]model.NutritionFacts, error) {
	var rows []model.NutritionFacts
	err := r.db.WithContext(ctx).Preload("Material").Find(&rows).Error
	return rows, err
}

func (r *nutritionRepo) Delete(ctx context.Context, materialID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("material_id = ?", materialID).Delete(&model.NutritionFacts{}).Error
}
