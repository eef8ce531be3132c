// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"bethouse/pkg/db" // Import db package for its Config struct
)

// JWTConfig holds settings for issuing and verifying access tokens.
type JWTConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	Env        string
	ServerPort string
	DB         db.Config
	RedisAddr  string
	JWT        JWTConfig
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any required variable is missing or invalid.
func LoadConfig() (*AppConfig, error) {
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost" // Default to localhost for local development
	}
	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "5432" // Default PostgreSQL port
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "user" // Default user for local development
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = "password" // Default password for local development
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "bethousedb" // Default database name for local development
	}
	dbSSLMode := os.Getenv("DB_SSLMODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable" // Default to disable for local development
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default Redis address
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me" // Default for local development only
	}
	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "bethouse"
	}
	tokenTTLStr := os.Getenv("JWT_TOKEN_TTL_SECONDS")
	if tokenTTLStr == "" {
		tokenTTLStr = "86400" // 24 hours
	}
	tokenTTLSec, err := strconv.Atoi(tokenTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_TTL_SECONDS: %w", err)
	}

	return &AppConfig{
		Env:        env,
		ServerPort: serverPort,
		DB: db.Config{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
		},
		RedisAddr: redisAddr,
		JWT: JWTConfig{
			Secret:   jwtSecret,
			Issuer:   jwtIssuer,
			TokenTTL: time.Duration(tokenTTLSec) * time.Second,
		},
	}, nil
}
