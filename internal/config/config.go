// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var v *viper.Viper

// EnvVar overrides the config file location
const EnvVar = "THEMERY_CONFIG"

// DefaultPath returns $THEMERY_CONFIG, or ~/.themery/config.yaml
func DefaultPath() string {
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".themery", "config.yaml")
	}
	return filepath.Join(home, ".themery", "config.yaml")
}

// InitConfig initializes the configuration system
func InitConfig(configPath string) error {
	v = viper.New()

	setDefaults()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("themery")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create the file with defaults on first run
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			if err := v.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

func setDefaults() {
	v.SetDefault("server.http_port", "8080")
	v.SetDefault("server.https_port", "8443")
	v.SetDefault("server.behind_proxy", false)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.blocked_ips", []string{})

	v.SetDefault("site.base_url", "https://ui.shadcn.com")
	v.SetDefault("site.default_theme", "zinc")
	v.SetDefault("site.default_radius", 0.5)

	v.SetDefault("session.secret", "CHANGE_ME_IN_PRODUCTION_USE_ENV_VAR")
	v.SetDefault("session.cookie_name", "themery_config")
	v.SetDefault("session.ttl", "720h")
	v.SetDefault("session.secure", false)

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "/var/lib/themery/themery.db")
	v.SetDefault("analytics.enabled", true)

	v.SetDefault("publish.dir", "./public")
	v.SetDefault("publish.concurrency", 8)
	v.SetDefault("publish.s3_bucket", "")
	v.SetDefault("publish.s3_prefix", "")
	v.SetDefault("publish.s3_region", "us-east-1")
	v.SetDefault("publish.s3_endpoint", "")
	v.SetDefault("publish.interval", "0s")

	v.SetDefault("ratelimit.requests", 60)
	v.SetDefault("ratelimit.window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.human", true)

	v.SetDefault("tls.enabled", false)
	v.SetDefault("tls.email", "")
	v.SetDefault("tls.domains", []string{})
	v.SetDefault("tls.cert_dir", "/var/lib/themery/certs")
	v.SetDefault("tls.staging", false)
}

// Get returns a config value as stored
func Get(key string) interface{} {
	if v == nil {
		return nil
	}
	return v.Get(key)
}

// GetString returns a config value as string
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetStringSlice returns a config value as a string list
func GetStringSlice(key string) []string {
	if v == nil {
		return nil
	}
	return v.GetStringSlice(key)
}

// GetInt returns a config value as int
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetFloat returns a config value as float64
func GetFloat(key string) float64 {
	if v == nil {
		return 0
	}
	return v.GetFloat64(key)
}

// GetBool returns a config value as bool
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetDuration returns a config value as time.Duration
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// IsSet reports whether a key has a value from any source
func IsSet(key string) bool {
	if v == nil {
		return false
	}
	return v.IsSet(key)
}

// Set sets a config value and saves to file
func Set(key string, value interface{}) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}

	v.Set(key, value)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetAll returns all config values as a map
func GetAll() map[string]interface{} {
	if v == nil {
		return nil
	}
	return v.AllSettings()
}

// Keys returns every known key, sorted
func Keys() []string {
	if v == nil {
		return nil
	}
	keys := v.AllKeys()
	sort.Strings(keys)
	return keys
}
