package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	RabbitMQ RabbitMQConfig
	Export   ExportConfig
	Alerts   AlertsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// RabbitMQConfig holds RabbitMQ connection configuration.
// An empty URL disables event publishing.
type RabbitMQConfig struct {
	URL            string        `mapstructure:"url"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
	MaxRetries     int           `mapstructure:"max_retries"`
	Exchange       string        `mapstructure:"exchange"`
}

// Enabled reports whether a broker is configured
func (c *RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

// ExportConfig holds report rendering and file delivery defaults
type ExportConfig struct {
	OutputDir         string `mapstructure:"output_dir"`
	Locale            string `mapstructure:"locale"`
	Timezone          string `mapstructure:"timezone"`
	DefaultDateFormat string `mapstructure:"default_date_format"`
	IncludeHeaders    bool   `mapstructure:"include_headers"`
}

// Location resolves the configured IANA timezone
func (c *ExportConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Validate checks the export configuration
func (c *ExportConfig) Validate() error {
	switch c.DefaultDateFormat {
	case "short", "long", "iso":
	default:
		return fmt.Errorf("unsupported default_date_format %q (want short, long or iso)", c.DefaultDateFormat)
	}
	switch c.Locale {
	case "en", "de":
	default:
		return fmt.Errorf("unsupported locale %q (want en or de)", c.Locale)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// AlertsConfig holds alert derivation thresholds
type AlertsConfig struct {
	ExpiryWindow time.Duration `mapstructure:"expiry_window"`
}

// Load loads configuration from environment and config files with defaults applied.
// For service main() prefer LoadWithValidation.
func Load(serviceName string) (*Config, error) {
	return loadConfig(serviceName)
}

// LoadWithValidation loads configuration and validates it for the current environment
func LoadWithValidation(serviceName string) (*Config, error) {
	cfg, err := loadConfig(serviceName)
	if err != nil {
		return nil, err
	}

	if err := cfg.Export.Validate(); err != nil {
		return nil, fmt.Errorf("export configuration error: %w", err)
	}

	if cfg.Alerts.ExpiryWindow <= 0 {
		return nil, errors.New("CAFESTOCK_ALERTS_EXPIRY_WINDOW must be positive")
	}

	if cfg.Server.IsProductionLike() {
		if cfg.RabbitMQ.Enabled() && strings.Contains(cfg.RabbitMQ.URL, "localhost") {
			return nil, errors.New("CAFESTOCK_RABBITMQ_URL must not point to localhost in " + cfg.Server.Environment)
		}
	}

	return cfg, nil
}

func loadConfig(serviceName string) (*Config, error) {
	v := viper.New()

	setDefaults(v, serviceName)

	v.SetEnvPrefix("CAFESTOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cafestock")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Server.Environment = strings.ToLower(cfg.Server.Environment)
	return &cfg, nil
}

func setDefaults(v *viper.Viper, serviceName string) {
	// Server defaults
	v.SetDefault("server.port", getDefaultPort(serviceName))
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.environment", EnvDevelopment)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	// RabbitMQ defaults (disabled unless a URL is provided)
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.reconnect_delay", 5*time.Second)
	v.SetDefault("rabbitmq.max_retries", 5)
	v.SetDefault("rabbitmq.exchange", "inventory.events")

	// Export defaults
	v.SetDefault("export.output_dir", "./exports")
	v.SetDefault("export.locale", "en")
	v.SetDefault("export.timezone", "Local")
	v.SetDefault("export.default_date_format", "short")
	v.SetDefault("export.include_headers", true)

	// Alert defaults
	v.SetDefault("alerts.expiry_window", 72*time.Hour)
}

func getDefaultPort(serviceName string) int {
	ports := map[string]int{
		"inventory-service": 8084,
	}
	if port, ok := ports[serviceName]; ok {
		return port
	}
	return 8080
}
