package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	BackendURL     string        `env:"BACKEND_URL,     default=http://localhost:8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	LogPretty      bool          `env:"LOG_PRETTY,      default=true"`
	StateDir       string        `env:"STATE_DIR"`
	BadgeInterval  time.Duration `env:"BADGE_INTERVAL,  default=5s"`

	Diag   DiagConfig
	Device DeviceConfig
}

// DiagConfig controls the local diagnostics HTTP server.
type DiagConfig struct {
	Enabled bool   `env:"DIAG_ENABLED, default=false"`
	Addr    string `env:"DIAG_ADDR,    default=127.0.0.1:9464"`
}

// DeviceConfig carries the position the host exposes to the app, the way an
// emulator injects a mock location. Empty values mean no fix is available.
type DeviceConfig struct {
	Latitude  string `env:"DEVICE_LAT"`
	Longitude string `env:"DEVICE_LNG"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// ResolveStateDir returns the directory for persisted local state, defaulting
// to ~/.soukly when STATE_DIR is unset.
func (c *Config) ResolveStateDir() (string, error) {
	if c.StateDir != "" {
		return c.StateDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve state dir: %w", err)
	}
	return filepath.Join(home, ".soukly"), nil
}
