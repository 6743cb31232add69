package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
gateway:
  base_url: https://gate.example.com/
  bot_id: bot-42
  api_key: secret
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gateway.BaseURL != "https://gate.example.com" {
		t.Fatalf("base_url = %q, want trailing slash trimmed", cfg.Gateway.BaseURL)
	}
	if cfg.HTTP.Listen != "0.0.0.0" || cfg.HTTP.Port != 8080 {
		t.Fatalf("http defaults = %q:%d", cfg.HTTP.Listen, cfg.HTTP.Port)
	}
	if cfg.Flags.CDNBaseURL != "https://flagcdn.com" {
		t.Fatalf("cdn default = %q", cfg.Flags.CDNBaseURL)
	}
	if cfg.Database.Enabled {
		t.Fatal("database must be disabled by default")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
gateway:
  base_url: https://gate.example.com
  bot_id: from-file
  api_key: secret
`)
	t.Setenv("GATEWAY_BOT_ID", "from-env")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gateway.BotID != "from-env" {
		t.Fatalf("bot_id = %q, want env value", cfg.Gateway.BotID)
	}
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	cases := []struct {
		name  string
		yaml  string
		field string
	}{
		{
			"missing bot id",
			"gateway:\n  base_url: https://g\n  api_key: k\n",
			"gateway.bot_id",
		},
		{
			"missing api key",
			"gateway:\n  base_url: https://g\n  bot_id: b\n",
			"gateway.api_key",
		},
		{
			"missing base url",
			"gateway:\n  bot_id: b\n  api_key: k\n",
			"gateway.base_url",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tc.yaml))
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %v, want ConfigurationError", err)
			}
			if cfgErr.Field != tc.field {
				t.Fatalf("field = %q, want %q", cfgErr.Field, tc.field)
			}
		})
	}
}

func TestNormalizeDatabaseDefaults(t *testing.T) {
	cfg := &Config{
		Gateway:  GatewayConfig{BaseURL: "https://g", BotID: "b", APIKey: "k"},
		Database: DatabaseConfig{Enabled: true, Host: "localhost", Name: "flagbot"},
	}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Database.Port != "5432" || cfg.Database.SSLMode != "disable" || cfg.Database.MaxConnections != 4 {
		t.Fatalf("database defaults = %+v", cfg.Database)
	}
}

func TestNormalizeDatabaseRequiresHost(t *testing.T) {
	cfg := &Config{
		Gateway:  GatewayConfig{BaseURL: "https://g", BotID: "b", APIKey: "k"},
		Database: DatabaseConfig{Enabled: true, Name: "flagbot"},
	}
	var cfgErr *ConfigurationError
	if err := Normalize(cfg); !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want ConfigurationError", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
