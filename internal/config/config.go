package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// XDG helpers
func getConfigBaseDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tradfrid")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tradfrid")
}

func getConfigPath(filename string) string {
	return filepath.Join(getConfigBaseDir(), filename)
}

// Config represents the application configuration
type Config struct {
	Gateway GatewayConfig
	API     APIConfig
	Cache   CacheConfig
	Logging LoggingConfig

	// Internal viper instance
	v *viper.Viper
}

// GatewayConfig holds the gateway address and DTLS credentials. Identity and
// PSK are written back after first-run provisioning; the security code is
// only needed for that exchange.
type GatewayConfig struct {
	Address      string
	Identity     string
	PSK          string        `mapstructure:"psk"`
	SecurityCode string        `mapstructure:"security_code"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	ListenAddress     string `mapstructure:"listen_address"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// CacheConfig represents the description cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from a file and environment variables
func Load(configName, configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	// Set default values
	v.SetDefault("gateway.address", "")
	v.SetDefault("gateway.identity", "")
	v.SetDefault("gateway.psk", "")
	v.SetDefault("gateway.security_code", "")
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("api.listen_address", ":8080")
	v.SetDefault("api.requests_per_minute", 120)
	v.SetDefault("cache.ttl", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Add config paths
	if configFile != "" {
		v.SetConfigFile(configFile)
		slog.Info("Using config file from command line", "path", configFile)
	} else {
		configPath := getConfigPath(configName)
		v.SetConfigFile(configPath)

		// Create config directory if it doesn't exist
		configDir := getConfigBaseDir()
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("error creating config directory: %w", err)
		}

		// Only log if config file exists
		if _, err := os.Stat(configPath); err == nil {
			slog.Info("Using default config file", "path", configPath)
		}
	}

	// Read config file - Viper will use defaults if file not found
	v.ReadInConfig()

	// Bind environment variables
	v.SetEnvPrefix("TRADFRI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Gateway: GatewayConfig{
			Address:      v.GetString("gateway.address"),
			Identity:     v.GetString("gateway.identity"),
			PSK:          v.GetString("gateway.psk"),
			SecurityCode: v.GetString("gateway.security_code"),
			Timeout:      v.GetDuration("gateway.timeout"),
		},
		API: APIConfig{
			ListenAddress:     v.GetString("api.listen_address"),
			RequestsPerMinute: v.GetInt("api.requests_per_minute"),
		},
		Cache: CacheConfig{
			TTL: v.GetDuration("cache.ttl"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		v: v,
	}

	return cfg, nil
}

// Save writes the current configuration back to its file. Used after PSK
// provisioning so credentials survive restarts.
func (c *Config) Save() error {
	if c.v == nil {
		return fmt.Errorf("config has no backing file")
	}

	c.v.Set("gateway.address", c.Gateway.Address)
	c.v.Set("gateway.identity", c.Gateway.Identity)
	c.v.Set("gateway.psk", c.Gateway.PSK)
	c.v.Set("gateway.timeout", c.Gateway.Timeout.String())
	c.v.Set("api.listen_address", c.API.ListenAddress)
	c.v.Set("api.requests_per_minute", c.API.RequestsPerMinute)
	c.v.Set("cache.ttl", c.Cache.TTL.String())
	c.v.Set("logging.level", c.Logging.Level)
	c.v.Set("logging.format", c.Logging.Format)

	if err := c.v.WriteConfig(); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Watch logs configuration file changes. Values are picked up on restart;
// watching exists so operators can see a stray edit immediately.
func (c *Config) Watch(logger *slog.Logger) {
	if c.v == nil {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("Config file changed", "file", e.Name, "op", e.Op.String())
	})
	c.v.WatchConfig()
}
