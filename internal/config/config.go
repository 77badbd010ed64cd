// Package config provides configuration management for fridgely.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/fridgely/fridgely/internal/models"
)

// Config holds the complete application configuration.
type Config struct {
	Kitchen     KitchenConfig     `toml:"kitchen"`
	Inventory   InventoryConfig   `toml:"inventory"`
	Preferences PreferencesConfig `toml:"preferences"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Display     DisplayConfig     `toml:"display"`
	Logging     LoggingConfig     `toml:"logging"`
	Database    DatabaseConfig    `toml:"database"`
}

// KitchenConfig identifies the household's fridges.
type KitchenConfig struct {
	// DefaultFridge is used whenever a caller omits the fridge id.
	DefaultFridge string `toml:"default_fridge"`
}

// InventoryConfig selects where fridge inventories are persisted.
type InventoryConfig struct {
	Backend         InventoryBackend `toml:"backend"`
	Path            string           `toml:"path"`
	Watch           bool             `toml:"watch"`
	WatchDebounceMS int              `toml:"watch_debounce_ms"`
}

// InventoryBackend names an inventory store implementation.
type InventoryBackend string

const (
	InventoryBackendFile   InventoryBackend = "file"
	InventoryBackendSQLite InventoryBackend = "sqlite"
	InventoryBackendMemory InventoryBackend = "memory"
)

// PreferencesConfig holds the nutrition bounds applied when a request
// leaves a bound unset.
type PreferencesConfig struct {
	CalorieMin float64 `toml:"calorie_min"`
	CalorieMax float64 `toml:"calorie_max"`
	ProteinMin float64 `toml:"protein_min"`
}

// CatalogConfig controls recipe catalog seeding.
type CatalogConfig struct {
	// SeedFile is an optional TOML recipe file loaded by -seed.
	SeedFile string `toml:"seed_file"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeFresh ColorScheme = "fresh"
	ColorSchemeAmber ColorScheme = "amber"
	ColorSchemePlain ColorScheme = "plain"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseConfig controls SQLite database settings.
type DatabaseConfig struct {
	Path                string `toml:"path"`
	BackupIntervalHours int    `toml:"backup_interval_hours"`
	BackupRetentionDays int    `toml:"backup_retention_days"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Kitchen.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("kitchen: %w", err))
	}

	if err := c.Inventory.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("inventory: %w", err))
	}

	if err := c.Preferences.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("preferences: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the kitchen configuration is valid.
func (k *KitchenConfig) Validate() error {
	if k.DefaultFridge == "" {
		return errors.New("default_fridge is required")
	}
	return nil
}

// Validate checks that the inventory configuration is valid.
func (i *InventoryConfig) Validate() error {
	var errs []error

	switch i.Backend {
	case InventoryBackendFile:
		if i.Path == "" {
			errs = append(errs, errors.New("path is required for the file backend"))
		}
	case InventoryBackendSQLite, InventoryBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("invalid backend: %s", i.Backend))
	}

	if i.WatchDebounceMS < 0 {
		errs = append(errs, errors.New("watch_debounce_ms must be non-negative"))
	}

	if i.Watch && i.Backend != InventoryBackendFile {
		errs = append(errs, errors.New("watch requires the file backend"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the preference bounds are valid numbers. An inverted
// calorie range is accepted; it simply matches nothing.
func (p *PreferencesConfig) Validate() error {
	var errs []error

	fields := []struct {
		name  string
		value float64
	}{
		{"calorie_min", p.CalorieMin},
		{"calorie_max", p.CalorieMax},
		{"protein_min", p.ProteinMin},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errs = append(errs, fmt.Errorf("%s must be a finite number", f.name))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Resolved returns the bounds as matching preferences.
func (p PreferencesConfig) Resolved() models.Preferences {
	return models.Preferences{
		CalorieMin: p.CalorieMin,
		CalorieMax: p.CalorieMax,
		ProteinMin: p.ProteinMin,
	}
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	validSchemes := map[ColorScheme]bool{
		ColorSchemeFresh: true,
		ColorSchemeAmber: true,
		ColorSchemePlain: true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		return fmt.Errorf("invalid color_scheme: %s", d.ColorScheme)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	if d.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}

	if d.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("backup_interval_hours must be non-negative"))
	}

	if d.BackupRetentionDays < 0 {
		errs = append(errs, errors.New("backup_retention_days must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Kitchen: KitchenConfig{
			DefaultFridge: "default",
		},
		Inventory: InventoryConfig{
			Backend:         InventoryBackendFile,
			Path:            "fridges.json",
			Watch:           true,
			WatchDebounceMS: 200,
		},
		Preferences: PreferencesConfig{
			CalorieMin: 0,
			CalorieMax: 9999,
			ProteinMin: 0,
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeFresh,
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/fridgely.log",
		},
		Database: DatabaseConfig{
			Path:                "fridgely.db",
			BackupIntervalHours: 24,
			BackupRetentionDays: 14,
		},
	}
}
