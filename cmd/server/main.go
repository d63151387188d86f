package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/api"     // Custom package for API handlers
	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/config"  // Custom package for configuration
	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/metrics" // Custom package for Prometheus metrics
	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/service" // Custom package for points orchestration
	"github.com/Jimmyweng006/User-Points-Service-Backend-Homework/internal/store"   // Custom package for store adapters

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Register Prometheus metrics
	metrics.Register()

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire the store adapters into the points service
	grants := store.NewSQLGrantStore(db)                                       // Durable ledger + aggregate
	cache := store.NewRedisBalanceCache(redisClient, cfg.CacheTTL)             // Read-through balance cache
	ranking := store.NewRedisRankingStore(redisClient)                         // Leaderboard sorted set
	sink := store.NewRedisEventSink(redisClient, cfg.EventStream, cfg.EventQueueSize) // Grant event stream
	defer sink.Close()                                                         // Drain queued events on shutdown
	svc := service.NewPointsService(grants, cache, ranking, sink)              // Points orchestrator

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

	// Points routes and metrics endpoint
	api.Routes(r, svc)

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
