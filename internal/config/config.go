// Package config reads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"go-chi-calculator/internal/keypad"
)

type Config struct {
	Addr             string
	ServiceName      string
	LogLevel         zapcore.Level
	TelemetryEnabled bool
	HistoryLimit     int
	MaxSessions      int
	ShutdownTimeout  time.Duration
}

// Load reads .env (when present) and then the process environment.
// Variables already set in the environment win over .env entries.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:             getenv("CALC_ADDR", ":8080"),
		ServiceName:      getenv("OTEL_SERVICE_NAME", "calculator-api"),
		TelemetryEnabled: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "",
		HistoryLimit:     keypad.DefaultHistoryLimit,
		MaxSessions:      1000,
		ShutdownTimeout:  5 * time.Second,
	}

	level, err := zapcore.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if v, ok := os.LookupEnv("TELEMETRY_ENABLED"); ok {
		cfg.TelemetryEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("TELEMETRY_ENABLED: %w", err)
		}
	}

	if v, ok := os.LookupEnv("CALC_HISTORY_LIMIT"); ok {
		cfg.HistoryLimit, err = strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CALC_HISTORY_LIMIT: %w", err)
		}
		if cfg.HistoryLimit <= 0 {
			return Config{}, fmt.Errorf("CALC_HISTORY_LIMIT must be positive, got %d", cfg.HistoryLimit)
		}
	}

	if v, ok := os.LookupEnv("CALC_MAX_SESSIONS"); ok {
		cfg.MaxSessions, err = strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("CALC_MAX_SESSIONS: %w", err)
		}
		if cfg.MaxSessions <= 0 {
			return Config{}, fmt.Errorf("CALC_MAX_SESSIONS must be positive, got %d", cfg.MaxSessions)
		}
	}

	if v, ok := os.LookupEnv("CALC_SHUTDOWN_TIMEOUT"); ok {
		cfg.ShutdownTimeout, err = time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CALC_SHUTDOWN_TIMEOUT: %w", err)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
