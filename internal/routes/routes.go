package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/satishydv/gharwa-backend/internal/config"
	"github.com/satishydv/gharwa-backend/internal/handlers"
	"github.com/satishydv/gharwa-backend/internal/middleware"
	"github.com/satishydv/gharwa-backend/internal/service"
)

// Handlers bundles everything Setup wires onto the router.
type Handlers struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Gallery *handlers.ImagesHandler
	Hero    *handlers.ImagesHandler
	Reviews *handlers.ReviewsHandler
}

// Setup registers all application routes.
func Setup(router *gin.Engine, cfg *config.Config, jwtService service.JWTService, h Handlers) {
	router.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigin: cfg.FrontendURL}))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	router.GET("/health", h.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded media is served straight from the public directory.
	router.Static("/Gallery", cfg.PublicDir+"/Gallery")
	router.Static("/Hero", cfg.PublicDir+"/Hero")
	router.Static("/reviews", cfg.PublicDir+"/reviews")

	api := router.Group("/api")
	{
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/register", h.Auth.Register)

		api.GET("/reviews", h.Reviews.ListActive)
		api.POST("/reviews", h.Reviews.Submit)

		api.GET("/gallery-images", h.Gallery.ListPublic)
		api.GET("/hero-images", h.Hero.ListPublic)
	}

	admin := router.Group("/api", middleware.RequireAuth(jwtService))
	{
		admin.GET("/auth/me", h.Auth.Me)

		admin.GET("/admin/reviews", h.Reviews.List)
		admin.PUT("/admin/reviews", h.Reviews.UpdateStatus)
		admin.DELETE("/admin/reviews", h.Reviews.Delete)

		admin.GET("/admin/gallery", h.Gallery.ListAdmin)
		admin.PUT("/admin/gallery", h.Gallery.Update)
		admin.DELETE("/admin/gallery", h.Gallery.Delete)
		admin.POST("/admin/gallery/upload-image", h.Gallery.Upload)
		admin.DELETE("/admin/gallery/delete-image", h.Gallery.DeleteFile)
		admin.POST("/admin/gallery/cleanup-duplicates", h.Gallery.CleanupDuplicates)

		admin.GET("/admin/hero-slider", h.Hero.ListAdmin)
		admin.PUT("/admin/hero-slider", h.Hero.Update)
		admin.DELETE("/admin/hero-slider", h.Hero.Delete)
		admin.POST("/admin/hero-slider/upload-image", h.Hero.Upload)
		admin.DELETE("/admin/hero-slider/delete-image", h.Hero.DeleteFile)
		admin.PUT("/admin/hero-slider/update-metadata", h.Hero.UpdateMetadata)
		admin.PUT("/admin/hero-slider/reorder", h.Hero.Reorder)
	}
}
