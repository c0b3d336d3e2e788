package main

import (
	"context" // Context for Redis ping

	"hbnb/internal/api"        // HTTP handlers and routes
	"hbnb/internal/config"     // Configuration
	"hbnb/internal/db"         // Database connection
	"hbnb/internal/facade"     // Business facade
	"hbnb/internal/middleware" // Rate limiting and metrics
	"hbnb/internal/repository" // Persistence
	"hbnb/internal/utils"      // Password hashing, token denylist

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	store := repository.NewGormStore(gdb)
	f := facade.New(store, utils.BcryptHasher{})

	deps := api.Deps{
		Facade:       f,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.JWTTTL,
		LoginLimiter: middleware.NewRateLimiter(cfg.LoginRatePerMin),
		Metrics:      middleware.NewMetrics(),
	}

	// Setup Redis client for token revocation, when configured
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		deps.Denylist = utils.NewTokenDenylist(redisClient)
	} else {
		logrus.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, deps)

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
