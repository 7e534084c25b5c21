package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizbowl_backend/config"
	"quizbowl_backend/db"
	"quizbowl_backend/middleware"
	"quizbowl_backend/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Connect to database
	database, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	// Initialize database schema
	if err := db.InitSchema(ctx, database); err != nil {
		log.Fatalf("Error initializing database schema: %v", err)
	}

	// Seed initial data
	seed, err := db.LoadSeedData()
	if err != nil {
		log.Fatalf("Error loading seed data: %v", err)
	}
	if err := db.Seed(ctx, database, seed, cfg.SeedDemo); err != nil {
		log.Printf("Warning: Error seeding initial data: %v", err)
	}

	// Initialize router
	r := gin.Default()
	r.Use(middleware.RequestID())

	// Setup CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
		"X-Admin-Token",
		middleware.RequestIDHeader,
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
		"PUT",
		"DELETE",
	}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(r, database, cfg)

	// Run server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
}
