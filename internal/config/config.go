// Package config loads service configuration from an optional env file and
// the process environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the board service needs at startup.
type Config struct {
	Addr         string `mapstructure:"BOARD_ADDR"`
	DBPath       string `mapstructure:"BOARD_DB_PATH"`
	SnapshotPath string `mapstructure:"BOARD_SNAPSHOT_PATH"`
	StaticDir    string `mapstructure:"BOARD_STATIC_DIR"`
	LogFile      string `mapstructure:"BOARD_LOG_FILE"`

	// Hosted backend. When the URL is set the service talks to the remote
	// API instead of the local SQLite database.
	RemoteAPIURL string `mapstructure:"BOARD_REMOTE_API_URL"`
	RemoteAPIKey string `mapstructure:"BOARD_REMOTE_API_KEY"`

	CacheTTLSeconds int `mapstructure:"BOARD_CACHE_TTL_SECONDS"`
}

// Load reads board.env from path (when present) and the environment.
// Environment variables win over the file.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("board")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("BOARD_ADDR", ":8080")
	v.SetDefault("BOARD_DB_PATH", "data/board.db")
	v.SetDefault("BOARD_SNAPSHOT_PATH", "data/snapshot.db")
	v.SetDefault("BOARD_STATIC_DIR", "web/dist")
	v.SetDefault("BOARD_CACHE_TTL_SECONDS", 60)

	// Registered without a value so AutomaticEnv can see them.
	v.SetDefault("BOARD_LOG_FILE", "")
	v.SetDefault("BOARD_REMOTE_API_URL", "")
	v.SetDefault("BOARD_REMOTE_API_KEY", "")

	if err := v.ReadInConfig(); err != nil {
		// The file is optional; only environment values are required.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// CacheTTL returns the cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// UseRemote reports whether the hosted backend is configured.
func (c Config) UseRemote() bool {
	return c.RemoteAPIURL != ""
}
