package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	JWTTTL            time.Duration
	PlannerSecretHash string
	Environment       string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		Addr:              os.Getenv("ADDR"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		PlannerSecretHash: os.Getenv("PLANNER_SECRET_HASH"),
		Environment:       os.Getenv("ENV"),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	cfg.JWTTTL = 24 * time.Hour
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
		}
		cfg.JWTTTL = ttl
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if cfg.PlannerSecretHash == "" {
		return nil, fmt.Errorf("PLANNER_SECRET_HASH is required but not set")
	}

	return cfg, nil
}
