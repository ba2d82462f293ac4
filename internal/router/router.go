package router

import (
	"time"

	"bakecost/internal/config"
	"bakecost/internal/handler"
	"bakecost/internal/middleware"
	"bakecost/internal/repository"
	"bakecost/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services groups the wired service layer so main can hand pieces of it to
// the worker pool without re-wiring.
type Services struct {
	Backup  service.BackupService
	Restore service.RestoreService
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, *Services) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	materialRepo := repository.NewMaterialRepository(db)
	packagingRepo := repository.NewPackagingRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	nutritionRepo := repository.NewNutritionRepository(db)
	productRepo := repository.NewProductRepository(db)
	customProductRepo := repository.NewCustomProductRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	costingSvc := service.NewCostingService(recipeRepo, productRepo, customProductRepo)
	materialSvc := service.NewMaterialService(materialRepo)
	packagingSvc := service.NewPackagingService(packagingRepo)
	recipeSvc := service.NewRecipeService(recipeRepo, costingSvc)
	productSvc := service.NewProductService(productRepo, costingSvc)
	customProductSvc := service.NewCustomProductService(customProductRepo, costingSvc)
	nutritionSvc := service.NewNutritionService(nutritionRepo, materialRepo)
	backupSvc := service.NewBackupService(materialRepo, packagingRepo, recipeRepo, nutritionRepo, productRepo, customProductRepo, cfg.BackupDir)
	restoreSvc := service.NewRestoreService(materialRepo, packagingRepo, recipeRepo, nutritionRepo, productRepo, customProductRepo)
	excelSvc := service.NewExcelService(materialRepo, recipeRepo, costingSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	materialsH := handler.NewMaterialsHandler(materialSvc)
	packagingH := handler.NewPackagingHandler(packagingSvc)
	recipesH := handler.NewRecipesHandler(recipeSvc, costingSvc)
	productsH := handler.NewProductsHandler(productSvc, costingSvc)
	customProductsH := handler.NewCustomProductsHandler(customProductSvc, costingSvc)
	nutritionH := handler.NewNutritionHandler(nutritionSvc)
	backupH := handler.NewBackupHandler(backupSvc, restoreSvc)
	exportH := handler.NewExportHandler(excelSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		materials := v1.Group("/materials")
		{
			materials.POST("", materialsH.Create)
			materials.GET("", materialsH.List)
			materials.GET("/:id", materialsH.Get)
			materials.PUT("/:id", materialsH.Update)
			materials.DELETE("/:id", materialsH.Delete)
		}

		packaging := v1.Group("/packaging")
		{
			packaging.POST("", packagingH.Create)
			packaging.GET("", packagingH.List)
			packaging.GET("/:id", packagingH.Get)
			packaging.PUT("/:id", packagingH.Update)
			packaging.DELETE("/:id", packagingH.Delete)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.POST("", recipesH.Create)
			recipes.GET("", recipesH.List)
			recipes.GET("/:id", recipesH.Get)
			recipes.PUT("/:id", recipesH.Update)
			recipes.DELETE("/:id", recipesH.Delete)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		customProducts := v1.Group("/custom-products")
		{
			customProducts.POST("", customProductsH.Create)
			customProducts.GET("", customProductsH.List)
			customProducts.GET("/:id", customProductsH.Get)
			customProducts.PUT("/:id", customProductsH.Update)
			customProducts.DELETE("/:id", customProductsH.Delete)
		}

		nutrition := v1.Group("/nutrition")
		{
			nutrition.PUT("", nutritionH.Upsert)
			nutrition.GET("", nutritionH.List)
			nutrition.GET("/:materialId", nutritionH.Get)
			nutrition.DELETE("/:materialId", nutritionH.Delete)
		}

		backup := v1.Group("/backup")
		{
			backup.POST("/create", backupH.Create)
			backup.GET("/download", backupH.Download)
			backup.POST("/restore", backupH.Restore)
		}

		export := v1.Group("/export")
		{
			export.GET("/materials", exportH.ExportMaterials)
			export.GET("/recipes", exportH.ExportRecipes)
			export.GET("/products", exportH.ExportProducts)
		}
		v1.POST("/import/materials", exportH.ImportMaterials)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, &Services{Backup: backupSvc, Restore: restoreSvc}
}
