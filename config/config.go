// Package config sources runtime settings from the environment. A .env
// file in the working directory is loaded first when present.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

var (
	LISTEN_ADDR = getEnv("LISTEN_ADDR", ":8080")

	DATA_DB_USER = getEnv("DATA_DB_USER", "root")
	DATA_DB_PASS = getEnv("DATA_DB_PASS", "")
	DATA_DB_ADDR = getEnv("DATA_DB_ADDR", "127.0.0.1:3306")
	DATA_DB_NAME = getEnv("DATA_DB_NAME", "bank_users")

	// BCRYPT_COST <= 0 falls back to the bcrypt default.
	BCRYPT_COST = getEnvInt("BCRYPT_COST", 0)

	TOKEN_TTL            = getEnvDuration("TOKEN_TTL", 30*24*time.Hour)
	TOKEN_SWEEP_INTERVAL = getEnvDuration("TOKEN_SWEEP_INTERVAL", time.Hour)
)

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
