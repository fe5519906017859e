package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"loadsim/internal/api/handlers"
	"loadsim/internal/api/middleware"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	profileHandler := handlers.NewProfileHandler()
	catalogHandler := handlers.NewCatalogHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/profiles", profileHandler.RunProfiles)
		api.GET("/profiles/:id", profileHandler.GetProfile)
		api.GET("/catalog/validate", catalogHandler.ValidateCatalog)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting load-profile API on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
