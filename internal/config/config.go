// Package config provides configuration management functionality.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aristath/divdesk/internal/modules/settings"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds application configuration
type Config struct {
	DataDir             string // Base directory for all databases (always absolute)
	LogLevel            string
	HolidaySyncSchedule string // cron spec of the holiday sync job
	HolidayMarket       string // market whose holiday rules are generated
	CORSOrigins         []string
	Port                int
	DevMode             bool
	PrettyLogs          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DIVDESK_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	devMode := getEnvAsBool("DEV_MODE", false)
	cfg := &Config{
		DataDir:             absDataDir,
		Port:                getEnvAsInt("GO_PORT", 8001),
		DevMode:             devMode,
		PrettyLogs:          getEnvAsBool("LOG_PRETTY", devMode),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		HolidaySyncSchedule: getEnv("HOLIDAY_SYNC_SCHEDULE", "0 3 * * *"),
		HolidayMarket:       strings.ToUpper(getEnv("HOLIDAY_MARKET", "XNYS")),
		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UpdateFromSettings applies settings stored in config.db.
// Settings DB values take precedence over environment variables.
func (c *Config) UpdateFromSettings(ctx context.Context, settingsRepo *settings.Repository) error {
	market, err := settingsRepo.Get(ctx, settings.KeyCalendarMarket)
	if err != nil {
		return fmt.Errorf("failed to get %s from settings: %w", settings.KeyCalendarMarket, err)
	}
	if market != nil && *market != "" {
		c.HolidayMarket = strings.ToUpper(*market)
	}
	return nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := cron.ParseStandard(c.HolidaySyncSchedule); err != nil {
		return fmt.Errorf("invalid HOLIDAY_SYNC_SCHEDULE %q: %w", c.HolidaySyncSchedule, err)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
