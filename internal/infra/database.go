package infra

import (
	"fmt"

	"bakecost/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for the full schema. TranslateError maps driver unique-violation
// errors onto gorm.ErrDuplicatedKey, which the services rely on for
// natural-name collision handling.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Shared with integration tests
// so they migrate exactly what production migrates.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() defaults need pgcrypto on PostgreSQL < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Material{},
		&model.NutritionFacts{},
		&model.Packaging{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.Product{},
		&model.ProductRecipe{},
		&model.ProductPackagingLink{},
		&model.CustomProduct{},
		&model.CustomProductItem{},
		&model.CustomProductPackagingLink{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
