package main

import (
	"log"
	"net/http"

	"github.com/tejas-exe/droply/internal/config"
	"github.com/tejas-exe/droply/internal/database"
	"github.com/tejas-exe/droply/internal/handlers"
	"github.com/tejas-exe/droply/internal/imagekit"
	"github.com/tejas-exe/droply/internal/kafka"
	"github.com/tejas-exe/droply/internal/middleware"
	"github.com/tejas-exe/droply/internal/redis"
	"github.com/tejas-exe/droply/internal/repositories"
	"github.com/tejas-exe/droply/internal/router"
	"github.com/tejas-exe/droply/internal/services"
	"github.com/tejas-exe/droply/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger.InitLogger()

	// Initialize database
	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// ImageKit client is built once from configuration and injected
	// everywhere uploads are needed.
	imageKitClient := imagekit.NewClient(cfg.ImageKit)

	// Redis cache is optional; a nil service disables caching.
	redisService := redis.NewService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer kafkaProducer.Close()

	// Setup Gin router
	r := gin.Default()

	middleware.SetupPrometheus(r)
	r.Use(middleware.LoggerMiddleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Initialize layers
	fileRepository := repositories.NewFileRepository(db)

	// A typed nil would look non-nil behind the interface, so only assign
	// the cache when Redis actually connected.
	var metadataCache services.MetadataCache
	if redisService != nil {
		metadataCache = redisService
	}
	fileService := services.NewFileService(fileRepository, imageKitClient, metadataCache, cfg.Upload.AllowedTypes)

	fileHandler := handlers.NewFileHandler(fileService, kafkaProducer, redisService)
	folderHandler := handlers.NewFolderHandler(fileService, kafkaProducer, redisService)
	imageKitHandler := handlers.NewImageKitHandler(imageKitClient)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	router.SetupRouter(r, fileHandler, folderHandler, imageKitHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
