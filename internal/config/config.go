package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For cache TTL

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	RedisAddr      string        // Redis server address
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	CacheTTL       time.Duration // Balance cache entry lifetime
	EventStream    string        // Stream receiving grant events
	EventQueueSize int           // Publish queue capacity
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cacheTTL, err := strconv.Atoi(os.Getenv("CACHE_TTL_SECONDS"))
	if err != nil || cacheTTL <= 0 {
		cacheTTL = 60 // Default cache TTL in seconds
	}
	queueSize, err := strconv.Atoi(os.Getenv("EVENT_QUEUE_SIZE"))
	if err != nil || queueSize <= 0 {
		queueSize = 1024 // Default publish queue capacity
	}
	stream := os.Getenv("EVENT_STREAM")
	if stream == "" {
		stream = "user-points-topic" // Default grant event stream
	}
	return &Config{
		AppPort:        os.Getenv("APP_PORT"),                 // Application port
		DBUser:         os.Getenv("DB_USER"),                  // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),              // Database password
		DBHost:         os.Getenv("DB_HOST"),                  // Database host
		DBPort:         os.Getenv("DB_PORT"),                  // Database port
		DBName:         os.Getenv("DB_NAME"),                  // Database name
		RedisAddr:      os.Getenv("REDIS_ADDR"),               // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),               // Redis password
		RedisDB:        redisDB,                               // Redis database number
		CacheTTL:       time.Duration(cacheTTL) * time.Second, // Balance cache entry lifetime
		EventStream:    stream,                                // Stream receiving grant events
		EventQueueSize: queueSize,                             // Publish queue capacity
		IsProd:         os.Getenv("IS_PROD") == "true",        // Is production environment
	}
}
