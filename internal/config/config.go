package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Env       string
	Port      string
	RedisURL  string
	RedisPass string
	RedisDB   int

	JWTSecret     string
	TokenTTLHours int

	// StartingBalance is credited to every newly registered account.
	StartingBalance  float64
	DailyBonusAmount float64
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:              getEnv("ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		RedisURL:         getEnv("REDIS_URL", "localhost:6379"),
		RedisPass:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTLHours:    getEnvInt("TOKEN_TTL_HOURS", 168), // 7 days
		StartingBalance:  getEnvFloat("STARTING_BALANCE", 1000),
		DailyBonusAmount: getEnvFloat("DAILY_BONUS_AMOUNT", 1000),
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
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
