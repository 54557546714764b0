// Package main is the entry point for the Gharwa Construction backend.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/satishydv/gharwa-backend/internal/config"
	"github.com/satishydv/gharwa-backend/internal/filestore"
	"github.com/satishydv/gharwa-backend/internal/handlers"
	"github.com/satishydv/gharwa-backend/internal/models"
	"github.com/satishydv/gharwa-backend/internal/repository"
	"github.com/satishydv/gharwa-backend/internal/routes"
	"github.com/satishydv/gharwa-backend/internal/service"
	"github.com/satishydv/gharwa-backend/pkg/database"
	"github.com/sirupsen/logrus"
)

// @title Gharwa Construction API
// @version 1.0
// @description Backend for the Gharwa Construction marketing site and admin dashboard
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg := config.Load()
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.Connect(database.PostgresConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  "disable",
		TimeZone: "UTC",
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.GalleryImage{},
		&models.HeroImage{},
		&models.Review{},
	); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize file stores
	galleryStore := filestore.NewLocal(filepath.Join(cfg.PublicDir, "Gallery"))
	heroStore := filestore.NewLocal(filepath.Join(cfg.PublicDir, "Hero"))
	reviewStore := filestore.NewLocal(filepath.Join(cfg.PublicDir, "reviews"))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	galleryRepo := repository.NewImageRepository(db, "gallery_images")
	heroRepo := repository.NewImageRepository(db, "hero_images")
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize services
	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	if jwtService == nil {
		log.Fatal("JWT_SECRET must be at least 32 characters")
	}
	authService := service.NewAuthService(userRepo, jwtService)
	galleryService := service.NewImageService(galleryRepo, galleryStore, service.GalleryCollection, log)
	heroService := service.NewImageService(heroRepo, heroStore, service.HeroCollection, log)
	reviewService := service.NewReviewService(reviewRepo, reviewStore, cfg.DeleteOrphanedMedia, log)

	// Setup router
	router := gin.Default()
	routes.Setup(router, cfg, jwtService, routes.Handlers{
		Health:  handlers.NewHealthHandler(),
		Auth:    handlers.NewAuthHandler(authService, log),
		Gallery: handlers.NewGalleryHandler(galleryService, log),
		Hero:    handlers.NewHeroHandler(heroService, log),
		Reviews: handlers.NewReviewsHandler(reviewService, log),
	})

	log.WithField("port", cfg.Port).Info("Starting server")
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
