// Package config reads runtime configuration from the process environment,
// optionally seeded from a .env file during development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv seeds the environment from .env when one exists. Absence is normal
// in deployed environments.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns the named variable, falling back when it is unset or empty.
func GetEnv(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	return v
}

// GetIntEnv returns the named variable parsed as an int, falling back on a
// missing or malformed value.
func GetIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetDurationEnv returns the named variable parsed as a time.Duration
// ("30m", "1h"), falling back on a missing or malformed value.
func GetDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// IsProduction reports whether ENV is set to production.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}
