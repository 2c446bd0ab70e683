package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the server needs. Values come from
// the environment, with an optional .env file for local development.
type Config struct {
	ServerPort   string
	DatabasePath string
	UploadDir    string
	JWTSecret    string
	TokenMaxAge  int // seconds
	RedisURL     string
}

// Load reads configuration from the environment. A missing .env file is
// not an error; a missing JWT_SECRET is.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] No .env file found, using environment variables")
	}

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "pixelgram.db"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenMaxAge:  getEnvInt("TOKEN_MAX_AGE", 86400),
		RedisURL:     os.Getenv("REDIS_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
