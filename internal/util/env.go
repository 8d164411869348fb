package util

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/osint-hub/backend/pkg/logger"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
}

func GetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return ""
	}
	return value
}

func GetEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}

	return value
}

func GetEnvNumeric(key string, defaultValue int) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return float64(defaultValue)
	}
	returnValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return float64(defaultValue)
	}

	return returnValue
}

// GetEnvBytes reads a byte size such as 5242880, 512K, 5M or 1G.
func GetEnvBytes(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(strings.ToUpper(GetEnv(key)))
	if value == "" {
		return defaultValue
	}

	mult := int64(1)
	switch {
	case strings.HasSuffix(value, "K"):
		mult = 1 << 10
	case strings.HasSuffix(value, "M"):
		mult = 1 << 20
	case strings.HasSuffix(value, "G"):
		mult = 1 << 30
	}
	if mult > 1 {
		value = value[:len(value)-1]
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n * mult
}

func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	if value == "true" || value == "false" {
		return value == "true"
	}

	return defaultValue
}
