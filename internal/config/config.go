package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/papapumpkin/graha/internal/catalog"
)

// MCPConfig holds configuration for the MCP tool server.
type MCPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Config holds all runtime configuration for a graha session.
// Values are populated from .graha.yaml, GRAHA_* env vars, and CLI flags.
type Config struct {
	CatalogPath   string    `mapstructure:"catalog_path"`
	CatalogDriver string    `mapstructure:"catalog_driver"`
	CatalogDSN    string    `mapstructure:"catalog_dsn"`
	AliasesPath   string    `mapstructure:"aliases_path"`
	EventsPath    string    `mapstructure:"events_path"`
	Watch         bool      `mapstructure:"watch"`
	Verbose       bool      `mapstructure:"verbose"`
	MCP           MCPConfig `mapstructure:"mcp"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("catalog_path", "")
	viper.SetDefault("catalog_driver", catalog.DriverSQLite)
	viper.SetDefault("catalog_dsn", "")
	viper.SetDefault("aliases_path", "")
	viper.SetDefault("events_path", "")
	viper.SetDefault("watch", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("mcp.host", "127.0.0.1")
	viper.SetDefault("mcp.port", 8392)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.CatalogDriver {
	case catalog.DriverSQLite, catalog.DriverMySQL:
	default:
		return fmt.Errorf("config: catalog_driver: %w: %q", catalog.ErrUnknownDriver, c.CatalogDriver)
	}
	if c.MCP.Port < 0 || c.MCP.Port > 65535 {
		return fmt.Errorf("config: mcp.port %d out of range", c.MCP.Port)
	}
	return nil
}

// Source returns the catalog source the configuration names.
func (c Config) Source() catalog.Source {
	return catalog.Source{
		Path:        c.CatalogPath,
		Driver:      c.CatalogDriver,
		DSN:         c.CatalogDSN,
		AliasesPath: c.AliasesPath,
	}
}

// MCPAddr returns the host:port the MCP server listens on.
func (c Config) MCPAddr() string {
	return fmt.Sprintf("%s:%d", c.MCP.Host, c.MCP.Port)
}
