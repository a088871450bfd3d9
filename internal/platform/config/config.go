// Package config holds runtime configuration for rps.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultCapacity = 5
)

type Config struct {
	DataDir  string         `yaml:"data_dir" mapstructure:"data_dir"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Game     GameConfig     `yaml:"game" mapstructure:"game"`
	Opponent OpponentConfig `yaml:"opponent" mapstructure:"opponent"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

type StoreConfig struct {
	Driver   string `yaml:"driver" mapstructure:"driver"`     // sqlite or postgres
	Path     string `yaml:"path" mapstructure:"path"`         // sqlite file; defaults under DataDir
	DSN      string `yaml:"dsn" mapstructure:"dsn"`           // postgres connection string
	Capacity int    `yaml:"capacity" mapstructure:"capacity"` // max concurrently saved games
}

type GameConfig struct {
	Seed int64 `yaml:"seed" mapstructure:"seed"` // 0 picks a random seed
}

type OpponentConfig struct {
	Plugin  string        `yaml:"plugin" mapstructure:"plugin"` // optional opponent plugin binary
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type LogConfig struct {
	Level    string            `yaml:"level" mapstructure:"level"`
	File     string            `yaml:"file" mapstructure:"file"`
	Rotation LogRotationConfig `yaml:"rotation" mapstructure:"rotation"`
}

// LogRotationConfig feeds the lumberjack writer behind the debug log.
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver:   DriverSQLite,
			Capacity: DefaultCapacity,
		},
		Opponent: OpponentConfig{Timeout: 3 * time.Second},
		Log: LogConfig{
			Level: "info",
			Rotation: LogRotationConfig{
				MaxSizeMB:  5,
				MaxBackups: 3,
				MaxAgeDays: 14,
			},
		},
	}
}

// Resolve fills derived paths and validates the result.
func (c *Config) Resolve() error {
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = defaultDataDir()
	}
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(c.DataDir, "rps.db")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.DataDir, "rps-debug.log")
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver: %q", c.Store.Driver)
	}
	if c.Store.Capacity <= 0 {
		return fmt.Errorf("store.capacity must be positive, got %d", c.Store.Capacity)
	}
	if c.Opponent.Timeout < 0 {
		return fmt.Errorf("opponent.timeout must not be negative")
	}
	return nil
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "rps")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rps"
	}
	return filepath.Join(home, ".local", "share", "rps")
}
