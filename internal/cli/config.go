package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user settings loaded from the TOML config file.
// All fields are optional; zero values fall back to built-in defaults.
type Config struct {
	// CacheDir overrides the artifact cache directory.
	CacheDir string `toml:"cache_dir"`

	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Redis  RedisConfig  `toml:"redis"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address for the serve command. Defaults to ":8080".
	Addr string `toml:"addr"`
}

// StoreConfig holds molecule library settings.
type StoreConfig struct {
	// Backend selects the store: "file" (default), "memory", or "mongo".
	Backend string `toml:"backend"`

	// Path is the directory for the file backend.
	// Defaults to ~/.config/moltext/library/
	Path string `toml:"path"`

	// MongoURI is the connection string for the mongo backend.
	MongoURI string `toml:"mongo_uri"`

	// MongoDatabase overrides the database name for the mongo backend.
	MongoDatabase string `toml:"mongo_database"`
}

// RedisConfig holds shared cache settings for server deployments.
type RedisConfig struct {
	// Addr enables the Redis cache backend when set, e.g. "localhost:6379".
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// configPath returns the config file location (~/.config/moltext/config.toml),
// honoring XDG_CONFIG_HOME.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads and parses the TOML config at path.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadConfigOrDefault loads the user config if one exists, falling back to
// an empty config otherwise. Parse errors are also swallowed: a broken
// config file should not make every command unusable.
func LoadConfigOrDefault() *Config {
	path, err := configPath()
	if err != nil {
		return &Config{}
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return &Config{}
	}
	return cfg
}

// serverAddr returns the configured listen address or the default.
func (c *Config) serverAddr() string {
	if c.Server.Addr != "" {
		return c.Server.Addr
	}
	return ":8080"
}

// storeBackend returns the configured store backend or the default.
func (c *Config) storeBackend() string {
	if c.Store.Backend != "" {
		return c.Store.Backend
	}
	return "file"
}
