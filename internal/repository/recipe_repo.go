package repository

import (
	"context"

	"bakecost/internal/dto"
	"bakecost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	Create(ctx context.Context, rec *model.Recipe) error
	// FindByID preloads ingredient rows joined with their material so the
	// costing service can resolve the recipe in one read.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	FindByName(ctx context.Context, name string) (*model.Recipe, error)
	List(ctx context.Context, filter dto.RecipeFilter) ([]model.Recipe, int64, error)
	All(ctx context.Context) ([]model.Recipe, error)
	Update(ctx context.Context, rec *model.Recipe) error
	// ReplaceIngredients swaps the full ingredient set of a recipe inside a
	// single transaction.
	ReplaceIngredients(ctx context.Context, recipeID uuid.UUID, rows []model.RecipeIngredient) error
	Delete(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type recipeRepo struct{ db *gorm.DB }

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepo{db: db} }

func (r *recipeRepo) Create(ctx context.Context, rec *model.Recipe) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var rec model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Ingredients.Material").
		First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *recipeRepo) FindByName(ctx context.Context, name string) (*model.Recipe, error) {
	var rec model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Ingredients.Material").
		Where("name = ?", name).First(&rec).Error
	return &rec, err
}

func (r *recipeRepo) List(ctx context.Context, filter dto.RecipeFilter) ([]model.Recipe, int64, error) {
	var recipes []model.Recipe
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Recipe{})
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
	err := q.Preload("Ingredients").Preload("Ingredients.Material").
		Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&recipes).Error
	return recipes, total, err
}

func (r *recipeRepo) All(ctx context.Context) ([]model.Recipe, error) {
	var rows []model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Ingredients").Preload("Ingredients.Material").
		Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *recipeRepo) Update(ctx context.Context, rec *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Ingredients").Save(rec).Error
}

func (r *recipeRepo) ReplaceIngredients(ctx context.Context, recipeID uuid.UUID, rows []model.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].RecipeID = recipeID
		}
		return tx.Create(&rows).Error
	})
}

func (r *recipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error
}

func (r *recipeRepo) DB() *gorm.DB { return r.db }
