package routes

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stefan-mouope/terabia-catalog/internal/cache"
	"github.com/stefan-mouope/terabia-catalog/internal/config"
	"github.com/stefan-mouope/terabia-catalog/internal/handlers"
	"github.com/stefan-mouope/terabia-catalog/internal/middleware"
	"github.com/stefan-mouope/terabia-catalog/internal/repository"
)

func RegisterRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	repo := repository.NewProductRepository(db)
	sellers := repository.NewSellerRepository(db)
	h := handlers.NewProductHandler(repo, sellers, cache.New(cache.DefaultTTL), cfg.UploadDir)

	// Uploaded files are served back as static assets under the same
	// prefix the records store.
	router.Static("/uploads/products", filepath.Join(cfg.UploadDir, "products"))

	api := router.Group("/api")
	products := api.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.GET("/seller/:seller_id", h.GetProductsBySeller)
		products.GET("/:id", h.GetProductByID)

		auth := middleware.RequireAuth(cfg.JWTSecret)
		products.POST("", auth, h.CreateProduct)
		products.PUT("/:id", auth, h.UpdateProduct)
		products.DELETE("/:id", auth, h.DeleteProduct)
	}
}
