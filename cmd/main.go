package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hubsync/internal/di"
	"hubsync/internal/shared/logger"
	"hubsync/internal/sync/config"

	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string `env:"SERVER_HOST" envDefault:"localhost"`
	Port         string `env:"SERVER_PORT" envDefault:"3000"`
	DatabaseName string `env:"MONGODB_DATABASE" envDefault:"hubsync"`
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load server configuration
	serverCfg := &ServerConfig{}
	if err := env.Parse(serverCfg); err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewLogger()
	appLogger.Info("Application configuration loaded successfully")

	// Initialize Dependency Injection Container
	container := di.NewContainer()
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	// Initialize MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
		appLogger.Warnf("MONGODB_URI not set, using default: %s", mongoURI)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()

	// Verify MongoDB connection
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	appLogger.Info("MongoDB connection established successfully")

	// Load sync configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load sync configuration: %v", err)
	}

	// Initialize Redis connection for the action queue
	redisClient := config.NewRedisClient(&cfg.Redis)
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Errorf("Failed to close Redis client: %v", err)
		}
	}()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to ping Redis: %v", err)
	}
	appLogger.Info("Redis connection established successfully")

	// Initialize Sync Module through container
	mongoDB := mongoClient.Database(serverCfg.DatabaseName)
	if err := container.InitializeSync(mongoDB, redisClient, cfg); err != nil {
		log.Fatalf("Failed to initialize sync module: %v", err)
	}
	appLogger.Info("Sync module initialized successfully")

	// Setup HTTP server (Fiber) with middleware
	app := fiber.New(fiber.Config{
		AppName:      "HubSync API v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			appLogger.Errorf("HTTP Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		},
	})

	app.Use(recover.New())

	// Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register module routes
	container.SyncModule.RegisterRoutes(app)
	appLogger.Info("Sync routes registered")

	serverAddr := fmt.Sprintf("%s:%s", serverCfg.Host, serverCfg.Port)
	appLogger.Infof("All modules initialized. Starting HTTP server on %s", serverAddr)

	// Start server in a goroutine for graceful shutdown
	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received signal %v, shutting down gracefully...", sig)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server shutdown error: %v", err)
		}
	}

	appLogger.Info("Server stopped")
}
