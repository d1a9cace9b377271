package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables consulted for flag defaults.
const (
	EnvConfig   = "REALISTLY_CONFIG"
	EnvOutput   = "REALISTLY_OUTPUT"
	EnvLogLevel = "REALISTLY_LOG_LEVEL"
)

// LoadDotEnv loads variables from a .env file at path when it exists.
// Variables already set in the process environment are not overridden.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Getenv returns the value of key, or fallback when unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
