package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jeanfrancodev/API-movies/internal/config"
	"github.com/jeanfrancodev/API-movies/internal/handlers"
	"github.com/jeanfrancodev/API-movies/internal/middleware"
	"github.com/jeanfrancodev/API-movies/internal/models"
)

func Setup(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	movieHandler *handlers.MovieHandler,
) *gin.Engine {

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSOrigin != "" {
		corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	secret := cfg.JWTSecret

	api := router.Group("/api")
	{
		movies := api.Group("/movies")
		{
			movies.GET("", middleware.JWT(secret), movieHandler.List)
			movies.GET("/search", middleware.JWT(secret), movieHandler.Search)
			movies.GET("/top", middleware.JWT(secret), movieHandler.TopRated)
			movies.GET("/:id", middleware.JWT(secret), movieHandler.Get)

			movies.POST("", middleware.JWT(secret), middleware.RequireRoles(models.RoleAdmin), movieHandler.Register)
			movies.PUT("/:id", middleware.OptionalJWT(secret), movieHandler.Update)
			movies.DELETE("/:id", movieHandler.Delete)

			movies.PUT("/:id/rate",
				middleware.JWT(secret),
				middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
				movieHandler.Rate,
			)
		}
	}

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		users := auth.Group("/users")
		users.Use(middleware.JWT(secret), middleware.RequireRoles(models.RoleAdmin))
		{
			users.GET("", authHandler.ListUsers)
			users.PUT("/:id", authHandler.UpdateUser)
			users.DELETE("/:id", authHandler.DeleteUser)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Movies API",
			"version": "1.0.0",
		})
	})

	return router
}
