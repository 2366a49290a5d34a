// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jiu-020812/orange-fanta-back/internal/channelsync"
	"github.com/Jiu-020812/orange-fanta-back/internal/config"
	"github.com/Jiu-020812/orange-fanta-back/internal/handlers"
	"github.com/Jiu-020812/orange-fanta-back/internal/middleware"
	"github.com/Jiu-020812/orange-fanta-back/internal/services"
	"github.com/Jiu-020812/orange-fanta-back/internal/store"
)

// Setup wires the full HTTP surface. It returns the engine plus the sync
// service so the background worker can share the same queue.
func Setup(db *gorm.DB, cfg *config.Config) (*gin.Engine, *services.SyncService, error) {
	st := store.NewGormStore(db)
	registry := channelsync.DefaultRegistry()

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, nil, err
	}

	authService := services.NewAuthService(db, cfg)
	notificationService := services.NewNotificationService(db, cfg)
	syncService := services.NewSyncService(st, registry)
	movementService := services.NewMovementService(st, syncService, notificationService)
	itemService := services.NewItemService(db)
	categoryService := services.NewCategoryService(db)
	warehouseService := services.NewWarehouseService(db)

	authHandler := handlers.NewAuthHandler(authService)
	itemHandler := handlers.NewItemHandler(itemService, storageService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	warehouseHandler := handlers.NewWarehouseHandler(warehouseService)
	movementHandler := handlers.NewMovementHandler(movementService)
	syncHandler := handlers.NewSyncHandler(syncService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Environment))
	r.Use(middleware.RateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.AWS.AccessKeyID == "" {
		r.Static("/uploads", "./uploads")
	}

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		api := v1.Group("")
		api.Use(middleware.AuthRequired())
		{
			api.GET("/auth/me", authHandler.Profile)

			categories := api.Group("/categories")
			{
				categories.GET("", categoryHandler.List)
				categories.POST("", categoryHandler.Create)
				categories.PUT("/:id", categoryHandler.Update)
				categories.DELETE("/:id", categoryHandler.Delete)
			}

			warehouses := api.Group("/warehouses")
			{
				warehouses.GET("", warehouseHandler.List)
				warehouses.POST("", warehouseHandler.Create)
				warehouses.PUT("/:id", warehouseHandler.Update)
				warehouses.DELETE("/:id", warehouseHandler.Delete)
				warehouses.GET("/:id/stocks", warehouseHandler.ListStocks)
				warehouses.PUT("/:id/stocks", warehouseHandler.SetStock)
			}

			items := api.Group("/items")
			{
				items.GET("", itemHandler.List)
				items.POST("", itemHandler.Create)
				items.GET("/:id", itemHandler.Get)
				items.PUT("/:id", itemHandler.Update)
				items.DELETE("/:id", itemHandler.Delete)
				items.POST("/upload-image", itemHandler.UploadImage)

				items.GET("/:id/movements", movementHandler.List)
				items.POST("/:id/movements", movementHandler.Create)

				items.GET("/:id/policy", syncHandler.GetPolicy)
				items.PUT("/:id/policy", syncHandler.SetPolicy)
				items.GET("/:id/listings", syncHandler.ListListings)
				items.POST("/:id/listings", syncHandler.CreateListing)
				items.POST("/:id/sync", syncHandler.Enqueue)
				items.GET("/:id/sync/jobs", syncHandler.ListJobs)
			}

			movements := api.Group("/movements")
			{
				movements.PUT("/:movementId", movementHandler.Update)
				movements.DELETE("/:movementId", movementHandler.Delete)
				movements.POST("/:movementId/arrive", movementHandler.Arrive)
			}

			listings := api.Group("/listings")
			{
				listings.DELETE("/:listingId", syncHandler.DeleteListing)
			}

			api.POST("/sync/run", syncHandler.Run)
		}
	}

	return r, syncService, nil
}
