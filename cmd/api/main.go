package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/stefan-mouope/terabia-catalog/internal/config"
	"github.com/stefan-mouope/terabia-catalog/internal/database"
	"github.com/stefan-mouope/terabia-catalog/internal/routes"
)

func main() {
	cfg := config.LoadConfig()
	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)

	router := gin.Default()
	routes.RegisterRoutes(router, db, cfg)

	log.Println("🚀 Server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
