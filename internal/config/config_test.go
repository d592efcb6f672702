package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Check defaults
	if cfg.StorePath != "./data/farm.db" {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, "./data/farm.db")
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.RedisURL)
	}
	if cfg.StorePrefix != "cattlefarm:" {
		t.Errorf("StorePrefix = %q, want %q", cfg.StorePrefix, "cattlefarm:")
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "FARM_STORE_PATH", "/var/lib/farm/farm.db")
	setEnv(t, "FARM_ENV", "production")
	setEnv(t, "FARM_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.StorePath != "/var/lib/farm/farm.db" {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, "/var/lib/farm/farm.db")
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want %q", cfg.Env, "production")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_UseRedisStore(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"empty url", "", false},
		{"url set", "redis://localhost:6379/0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{RedisURL: tt.url}
			if got := cfg.UseRedisStore(); got != tt.want {
				t.Errorf("UseRedisStore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_StoreConfig(t *testing.T) {
	t.Run("sqlite_default", func(t *testing.T) {
		cfg := Config{StorePath: "/tmp/farm.db"}

		sc := cfg.StoreConfig()
		if sc.Type != "sqlite" {
			t.Errorf("Type = %q, want %q", sc.Type, "sqlite")
		}
		if sc.Path != "/tmp/farm.db" {
			t.Errorf("Path = %q, want %q", sc.Path, "/tmp/farm.db")
		}
	})

	t.Run("redis_when_configured", func(t *testing.T) {
		cfg := Config{
			StorePath:   "/tmp/farm.db",
			RedisURL:    "redis://localhost:6379/0",
			StorePrefix: "cattlefarm:",
		}

		sc := cfg.StoreConfig()
		if sc.Type != "redis" {
			t.Errorf("Type = %q, want %q", sc.Type, "redis")
		}
		if sc.RedisURL != "redis://localhost:6379/0" {
			t.Errorf("RedisURL = %q, want %q", sc.RedisURL, "redis://localhost:6379/0")
		}
		if sc.Prefix != "cattlefarm:" {
			t.Errorf("Prefix = %q, want %q", sc.Prefix, "cattlefarm:")
		}
	})
}
