package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeanfrancodev/API-movies/internal/config"
	"github.com/jeanfrancodev/API-movies/internal/database"
	"github.com/jeanfrancodev/API-movies/internal/handlers"
	"github.com/jeanfrancodev/API-movies/internal/repository"
	"github.com/jeanfrancodev/API-movies/internal/routes"
	"github.com/jeanfrancodev/API-movies/internal/services"
	"github.com/jeanfrancodev/API-movies/internal/validation"
)

func main() {
	cfg := config.Load()

	validation.RegisterRules()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fileService, err := services.NewFileService(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Upload directory setup failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	movieRepo := repository.NewMovieRepository(db)
	rateRepo := repository.NewRateRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, cfg)
	movieHandler := handlers.NewMovieHandler(movieRepo, userRepo, rateRepo, fileService)

	router := routes.Setup(cfg, authHandler, movieHandler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🎬 Movies API running on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Println("Forced shutdown:", err)
	}

	log.Println("Server exited")
}
