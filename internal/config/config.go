package config

import (
	"fmt"     // Error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // Token lifetimes

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	DBDriver        string        // Database driver: mysql or postgres
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name
	DBSSLMode       string        // Postgres sslmode
	JWTSecret       string        // JWT secret key
	JWTTTL          time.Duration // Lifetime of issued tokens
	RedisAddr       string        // Redis server address; empty disables token revocation
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	IsProd          bool          // Is production environment
	LogLevel        string        // logrus level name
	LoginRatePerMin int           // Login attempts allowed per client IP per minute
	AdminEmail      string        // Seeded admin email (migrate command)
	AdminPassword   string        // Seeded admin password (migrate command)
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:         getEnv("APP_PORT", "5000"),
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          getEnv("DB_HOST", "127.0.0.1"),
		DBPort:          os.Getenv("DB_PORT"),
		DBName:          getEnv("DB_NAME", "hbnb"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTTTL:          getDuration("JWT_TTL", 24*time.Hour),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         getInt("REDIS_DB", 0),
		IsProd:          os.Getenv("IS_PROD") == "true",
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LoginRatePerMin: getInt("LOGIN_RATE_PER_MIN", 10),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
	}
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// DSN builds the connection string for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, port, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	}
	port := c.DBPort
	if port == "" {
		port = "3306"
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
