// Package config loads runtime configuration for the TapNote backend.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration.
type Config struct {
	// ListenAddr is the loopback address the UI bridge listens on.
	ListenAddr string `mapstructure:"listen_addr"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// StartupPrimeDelay is how long the startup permission primer waits
	// before probing the microphone, so the rest of startup can settle.
	StartupPrimeDelay time.Duration `mapstructure:"startup_prime_delay"`
}

// Load reads configuration from .tapnote.yaml (current directory or home),
// overridden by TAPNOTE_* environment variables, falling back to defaults.
// A missing config file is not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName(".tapnote")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetEnvPrefix("TAPNOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", "127.0.0.1:17891")
	v.SetDefault("log_level", "info")
	v.SetDefault("startup_prime_delay", "500ms")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}
