package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// GatewayConfig holds credentials and tuning for the outbound messaging gateway.
type GatewayConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"GATEWAY_BASE_URL"`
	BotID   string `yaml:"bot_id" envconfig:"GATEWAY_BOT_ID"`
	APIKey  string `yaml:"api_key" envconfig:"GATEWAY_API_KEY"`
	// TimeoutSeconds bounds a single outbound call; 0 -> default
	TimeoutSeconds int `yaml:"timeout_seconds" envconfig:"GATEWAY_TIMEOUT_SECONDS"`
}

// HTTPConfig specifies the inbound webhook server settings.
type HTTPConfig struct {
	Listen string `yaml:"listen" envconfig:"HTTP_LISTEN"`
	Port   int    `yaml:"port" envconfig:"HTTP_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// FlagsConfig points at the public flag image CDN used for questions and the passthrough proxy.
type FlagsConfig struct {
	CDNBaseURL string `yaml:"cdn_base_url" envconfig:"FLAGS_CDN_BASE_URL"`
}

// EnrichmentConfig configures the best-effort flag description lookup.
type EnrichmentConfig struct {
	URL string `yaml:"url" envconfig:"ENRICHMENT_URL"`
}

// DatabaseConfig enables the optional Postgres-backed results store.
type DatabaseConfig struct {
	Enabled        bool   `yaml:"enabled" envconfig:"DB_ENABLED"`
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// Config aggregates the service configuration.
type Config struct {
	Gateway    GatewayConfig    `yaml:"gateway"`
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
	Flags      FlagsConfig      `yaml:"flags"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Database   DatabaseConfig   `yaml:"database"`
}

const (
	defaultFlagCDNBaseURL = "https://flagcdn.com"
)

// ConfigurationError reports a missing or invalid required setting.
// Requests depending on the setting fail fast instead of degrading silently.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.Gateway.BotID) == "" {
		return &ConfigurationError{Field: "gateway.bot_id", Reason: "required"}
	}
	if strings.TrimSpace(cfg.Gateway.APIKey) == "" {
		return &ConfigurationError{Field: "gateway.api_key", Reason: "required"}
	}
	if strings.TrimSpace(cfg.Gateway.BaseURL) == "" {
		return &ConfigurationError{Field: "gateway.base_url", Reason: "required"}
	}
	if cfg.Gateway.TimeoutSeconds < 0 {
		return &ConfigurationError{Field: "gateway.timeout_seconds", Reason: "must be >= 0"}
	}
	cfg.Gateway.BaseURL = strings.TrimRight(cfg.Gateway.BaseURL, "/")

	if strings.TrimSpace(cfg.HTTP.Listen) == "" {
		cfg.HTTP.Listen = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.HTTP.Port < 0 {
		return &ConfigurationError{Field: "http.port", Reason: "must be > 0"}
	}

	if strings.TrimSpace(cfg.Flags.CDNBaseURL) == "" {
		cfg.Flags.CDNBaseURL = defaultFlagCDNBaseURL
	}
	cfg.Flags.CDNBaseURL = strings.TrimRight(cfg.Flags.CDNBaseURL, "/")

	if cfg.Database.Enabled {
		if strings.TrimSpace(cfg.Database.Host) == "" {
			return &ConfigurationError{Field: "database.host", Reason: "required when database.enabled"}
		}
		if strings.TrimSpace(cfg.Database.Name) == "" {
			return &ConfigurationError{Field: "database.name", Reason: "required when database.enabled"}
		}
		if strings.TrimSpace(cfg.Database.Port) == "" {
			cfg.Database.Port = "5432"
		}
		if strings.TrimSpace(cfg.Database.SSLMode) == "" {
			cfg.Database.SSLMode = "disable"
		}
		if cfg.Database.MaxConnections <= 0 {
			cfg.Database.MaxConnections = 4
		}
	}

	return nil
}
