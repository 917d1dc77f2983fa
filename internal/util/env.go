package util

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/open-dio/opendio/pkg/logger"
)

// LoadEnv reads a .env file into the process environment if one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
}

// GetEnv returns the value of an environment variable, or "" when unset.
func GetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return ""
	}
	return value
}

// GetEnvString returns the value of an environment variable, or defaultValue
// when unset.
func GetEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

// GetEnvNumeric parses an environment variable as a float, falling back to
// defaultValue when unset or unparseable.
func GetEnvNumeric(key string, defaultValue int) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return float64(defaultValue)
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return float64(defaultValue)
	}
	return parsed
}

// GetEnvBool parses an environment variable as "true"/"false", falling back
// to defaultValue for anything else.
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
