package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultConfigFileName is the standard configuration file name.
	DefaultConfigFileName = "fridgely.toml"

	// XDGConfigSubdir is the subdirectory under XDG_CONFIG_HOME and
	// XDG_DATA_HOME for fridgely.
	XDGConfigSubdir = "fridgely"
)

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load resolves the configuration in order of precedence:
//  1. explicitPath, when set (no fallback)
//  2. $XDG_CONFIG_HOME/fridgely/fridgely.toml (or ~/.config/...)
//  3. ./fridgely.toml
//  4. Default(), written to the XDG path when createDefault is true
//
// Returns the configuration and the path it was loaded from. The path is
// empty when a default could not be written.
func Load(explicitPath string, createDefault bool) (*Config, string, error) {
	if explicitPath != "" {
		cfg, err := loadFromFile(explicitPath)
		if err != nil {
			return nil, "", &LoadError{Path: explicitPath, Err: err}
		}
		return cfg, explicitPath, nil
	}

	xdgPath := xdgConfigPath()
	cwdPath := filepath.Join(".", DefaultConfigFileName)

	for _, candidate := range []string{xdgPath, cwdPath} {
		if candidate == "" || !fileExists(candidate) {
			continue
		}
		cfg, err := loadFromFile(candidate)
		if err != nil {
			return nil, "", &LoadError{Path: candidate, Err: err}
		}
		return cfg, candidate, nil
	}

	if !createDefault {
		return nil, "", errors.New("no configuration file found; searched: " + xdgPath + ", " + cwdPath)
	}

	cfg := Default()

	defaultPath := cwdPath
	if xdgPath != "" {
		if err := os.MkdirAll(filepath.Dir(xdgPath), 0750); err == nil {
			defaultPath = xdgPath
		}
	}

	if err := Save(cfg, defaultPath); err != nil {
		// Continue with in-memory default if we can't write
		return cfg, "", nil
	}

	return cfg, defaultPath, nil
}

// loadFromFile reads and parses a TOML configuration file.
func loadFromFile(path string) (*Config, error) {
	// Start with defaults so missing values get sensible defaults
	cfg := Default()

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	// Parse TOML
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Save writes a configuration to a TOML file.
func Save(cfg *Config, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	// Create or truncate file
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	// Write header comment
	header := `# fridgely configuration
#
# Generated with default values. [inventory] backend is one of
# file, sqlite or memory; [preferences] bounds apply to recipe
# matching when a request leaves them unset.

`
	if _, err := f.WriteString(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	// Encode TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	return nil
}

// xdgConfigPath returns the XDG-compliant config file path.
// Returns empty string if XDG_CONFIG_HOME is not set and HOME is not available.
func xdgConfigPath() string {
	// Check XDG_CONFIG_HOME first
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig != "" {
		return filepath.Join(xdgConfig, XDGConfigSubdir, DefaultConfigFileName)
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", XDGConfigSubdir, DefaultConfigFileName)
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ConfigPath returns the configuration file path that would be used.
// Useful for displaying to users.
func ConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	xdgPath := xdgConfigPath()
	if xdgPath != "" && fileExists(xdgPath) {
		return xdgPath
	}

	cwdPath := filepath.Join(".", DefaultConfigFileName)
	if fileExists(cwdPath) {
		return cwdPath
	}

	// Return XDG path as the preferred location for new configs
	if xdgPath != "" {
		return xdgPath
	}

	return cwdPath
}

// xdgDataDir returns $XDG_DATA_HOME/fridgely, falling back to
// ~/.local/share/fridgely. Returns empty string if neither is available.
func xdgDataDir() string {
	xdgData := os.Getenv("XDG_DATA_HOME")
	if xdgData == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		xdgData = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(xdgData, XDGConfigSubdir)
}

// resolveDataPath places a relative path under the XDG data directory,
// creating whichever directory ends up holding the file.
func resolveDataPath(path, what string) (string, error) {
	if filepath.IsAbs(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return "", fmt.Errorf("creating %s directory: %w", what, err)
		}
		return path, nil
	}

	if dataDir := xdgDataDir(); dataDir != "" {
		if err := os.MkdirAll(dataDir, 0750); err == nil {
			return filepath.Join(dataDir, path), nil
		}
	}

	// Use relative path in current directory
	return path, nil
}

// EnsureDataDir creates the data directory for the database if needed.
// Returns the path to the database file.
func EnsureDataDir(cfg *Config) (string, error) {
	return resolveDataPath(cfg.Database.Path, "database")
}

// InventoryPath returns the path of the JSON inventory file, creating its
// directory if needed. Returns empty string for non-file backends.
func InventoryPath(cfg *Config) (string, error) {
	if cfg.Inventory.Backend != InventoryBackendFile {
		return "", nil
	}
	return resolveDataPath(cfg.Inventory.Path, "inventory")
}

// EnsureLogDir creates the log directory if needed.
// Returns the path to the log file, or empty string when file logging is
// disabled.
func EnsureLogDir(cfg *Config) (string, error) {
	logPath := cfg.Logging.File
	if logPath == "" {
		return "", nil
	}

	dir := filepath.Dir(logPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("creating log directory: %w", err)
		}
	}

	return logPath, nil
}

// BackupDir returns the directory for database backups, next to the
// database file.
func BackupDir(cfg *Config) (string, error) {
	var backupDir string
	switch {
	case filepath.IsAbs(cfg.Database.Path):
		backupDir = filepath.Join(filepath.Dir(cfg.Database.Path), "backups")
	case xdgDataDir() != "":
		backupDir = filepath.Join(xdgDataDir(), "backups")
	default:
		backupDir = "backups"
	}

	if err := os.MkdirAll(backupDir, 0750); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	return backupDir, nil
}
