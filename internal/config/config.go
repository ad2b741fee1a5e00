package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mamadbah2/chickenroad/internal/domain/models"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Ticks     TickConfig
	Reporting ReportingConfig
	Economy   models.Economy
	Farm      FarmConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string
}

// TickConfig holds the periods of the three tick drivers.
type TickConfig struct {
	HealthInterval time.Duration
	AgingInterval  time.Duration
	EventInterval  time.Duration
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
}

// FarmConfig holds options applied when the farm is created.
type FarmConfig struct {
	FirstChickenName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	defaults := models.DefaultEconomy()
	var errs []error

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Ticks: TickConfig{
			HealthInterval: durationFromEnv("HEALTH_TICK_INTERVAL", time.Second, &errs),
			AgingInterval:  durationFromEnv("AGING_TICK_INTERVAL", 5*time.Minute, &errs),
			EventInterval:  durationFromEnv("EVENT_TICK_INTERVAL", 10*time.Minute, &errs),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "*/15 * * * *"),
		},
		Economy: models.Economy{
			Money:               intFromEnv("STARTING_MONEY", defaults.Money, &errs),
			MaxChickens:         intFromEnv("MAX_CHICKENS", defaults.MaxChickens, &errs),
			ChickenCost:         intFromEnv("CHICKEN_COST", defaults.ChickenCost, &errs),
			FoodCost:            intFromEnv("FOOD_COST", defaults.FoodCost, &errs),
			FoodEfficiency:      defaults.FoodEfficiency,
			EggValueMultiplier:  defaults.EggValueMultiplier,
			CapacityUpgradeCost: defaults.CapacityUpgradeCost,
			FoodUpgradeCost:     defaults.FoodUpgradeCost,
			EggValueUpgradeCost: defaults.EggValueUpgradeCost,
		},
		Farm: FarmConfig{
			FirstChickenName: os.Getenv("FIRST_CHICKEN_NAME"),
		},
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Ticks.HealthInterval <= 0:
		return errors.New("HEALTH_TICK_INTERVAL must be positive")
	case c.Ticks.AgingInterval <= 0:
		return errors.New("AGING_TICK_INTERVAL must be positive")
	case c.Ticks.EventInterval <= 0:
		return errors.New("EVENT_TICK_INTERVAL must be positive")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	switch {
	case c.Economy.Money < 0:
		return errors.New("STARTING_MONEY must not be negative")
	case c.Economy.MaxChickens <= 0:
		return errors.New("MAX_CHICKENS must be positive")
	case c.Economy.ChickenCost <= 0:
		return errors.New("CHICKEN_COST must be positive")
	case c.Economy.FoodCost < 0:
		return errors.New("FOOD_COST must not be negative")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intFromEnv(key string, fallback int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return fallback
	}
	return value
}

func durationFromEnv(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return fallback
	}
	return value
}
