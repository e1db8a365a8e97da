package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"fleet_datagen/internal/models"

	"github.com/spf13/viper"
)

// Config holds all configuration for a generation run
type Config struct {
	Seed        uint64
	BatchSize   int
	CatalogPath string
	Database    DatabaseConfig
	Horizon     HorizonConfig
	Fleet       FleetConfig
	Scheduler   SchedulerConfig
	Expected    ExpectedConfig
	Log         LogConfig
}

// DatabaseConfig selects the store
type DatabaseConfig struct {
	Driver string // sqlite3 or postgres
	DSN    string // file path for sqlite3, connection string for postgres
}

// HorizonConfig holds the simulated date range
type HorizonConfig struct {
	Start string // YYYY-MM-DD, empty means today
	Days  int
}

// FleetConfig sizes the generated fleet
type FleetConfig struct {
	Aircraft int
	Bases    int
}

// SchedulerConfig holds operation scheduling parameters
type SchedulerConfig struct {
	MinDaily        int
	MaxDaily        int
	MinDurationDays int
	MaxDurationDays int
	ReleasePolicy   string // earliest or fifo
}

// ExpectedConfig holds target record counts. Zero disables the check.
type ExpectedConfig struct {
	Operations         int
	WorkOrders         int
	MaintenanceRecords int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("seed", 42)
	v.SetDefault("batch_size", 1000)
	v.SetDefault("catalog_path", "")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "fleet_data.db")
	v.SetDefault("horizon.start", "")
	v.SetDefault("horizon.days", 365)
	v.SetDefault("fleet.aircraft", 500)
	v.SetDefault("fleet.bases", 10)
	v.SetDefault("scheduler.min_daily", 1)
	v.SetDefault("scheduler.max_daily", 30)
	v.SetDefault("scheduler.min_duration_days", 1)
	v.SetDefault("scheduler.max_duration_days", 15)
	v.SetDefault("scheduler.release_policy", "earliest")
	v.SetDefault("expected.operations", 0)
	v.SetDefault("expected.work_orders", 0)
	v.SetDefault("expected.maintenance_records", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Set config file name and type
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Set config file search paths
	v.AddConfigPath("/etc/fleet_datagen")
	v.AddConfigPath(".")

	// Check for config file path from environment variable
	if configPath := os.Getenv("FLEET_DATAGEN_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Read config file (if it exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error occurred
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults + env vars
	}

	// Set environment variable prefix
	v.SetEnvPrefix("FLEET_DATAGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		Seed:        v.GetUint64("seed"),
		BatchSize:   v.GetInt("batch_size"),
		CatalogPath: v.GetString("catalog_path"),
		Database: DatabaseConfig{
			Driver: v.GetString("database.driver"),
			DSN:    v.GetString("database.dsn"),
		},
		Horizon: HorizonConfig{
			Start: v.GetString("horizon.start"),
			Days:  v.GetInt("horizon.days"),
		},
		Fleet: FleetConfig{
			Aircraft: v.GetInt("fleet.aircraft"),
			Bases:    v.GetInt("fleet.bases"),
		},
		Scheduler: SchedulerConfig{
			MinDaily:        v.GetInt("scheduler.min_daily"),
			MaxDaily:        v.GetInt("scheduler.max_daily"),
			MinDurationDays: v.GetInt("scheduler.min_duration_days"),
			MaxDurationDays: v.GetInt("scheduler.max_duration_days"),
			ReleasePolicy:   strings.ToLower(v.GetString("scheduler.release_policy")),
		},
		Expected: ExpectedConfig{
			Operations:         v.GetInt("expected.operations"),
			WorkOrders:         v.GetInt("expected.work_orders"),
			MaintenanceRecords: v.GetInt("expected.maintenance_records"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}

	// Validate configuration
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// HorizonRange resolves the configured horizon. An empty start means today.
func (c *Config) HorizonRange(now time.Time) (models.Horizon, error) {
	start := models.Day(now)
	if c.Horizon.Start != "" {
		t, err := models.ParseDate(c.Horizon.Start)
		if err != nil {
			return models.Horizon{}, fmt.Errorf("invalid horizon.start: %w", err)
		}
		start = t
	}
	return models.NewHorizon(start, c.Horizon.Days), nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be greater than 0")
	}

	validDrivers := map[string]bool{
		"sqlite3":  true,
		"postgres": true,
	}
	if !validDrivers[cfg.Database.Driver] {
		return fmt.Errorf("invalid database driver: %s (must be sqlite3 or postgres)", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if cfg.Horizon.Start != "" {
		if _, err := models.ParseDate(cfg.Horizon.Start); err != nil {
			return fmt.Errorf("horizon.start must be YYYY-MM-DD: %w", err)
		}
	}
	if cfg.Horizon.Days <= 0 {
		return fmt.Errorf("horizon.days must be greater than 0")
	}

	if cfg.Fleet.Aircraft <= 0 {
		return fmt.Errorf("fleet.aircraft must be greater than 0")
	}
	if cfg.Fleet.Bases <= 0 {
		return fmt.Errorf("fleet.bases must be greater than 0")
	}

	s := cfg.Scheduler
	if s.MinDaily < 0 || s.MaxDaily < s.MinDaily {
		return fmt.Errorf("scheduler daily range [%d, %d] is invalid", s.MinDaily, s.MaxDaily)
	}
	if s.MinDurationDays < 1 || s.MaxDurationDays < s.MinDurationDays {
		return fmt.Errorf("scheduler duration range [%d, %d] is invalid (minimum is 1 day)", s.MinDurationDays, s.MaxDurationDays)
	}

	validPolicies := map[string]bool{
		"earliest": true,
		"fifo":     true,
	}
	if !validPolicies[strings.ToLower(s.ReleasePolicy)] {
		return fmt.Errorf("invalid release policy: %s (must be earliest or fifo)", s.ReleasePolicy)
	}

	if cfg.Expected.Operations < 0 || cfg.Expected.WorkOrders < 0 || cfg.Expected.MaintenanceRecords < 0 {
		return fmt.Errorf("expected counts must not be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
