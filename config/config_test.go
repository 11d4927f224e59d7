package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SERVER_PORT", "DATA_DIR", "DATA_EXT", "AGGREGATE_PARALLEL", "REQUEST_TIMEOUT", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(k, "")
	}
}

// TestLoadConfig_Defaults verifies that defaults are loaded when the environment is empty.
func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir()) // no .env here

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Server.Port != "8000" {
		t.Fatalf("expected default SERVER_PORT=8000, got %q", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 10*time.Second || cfg.Server.RateLimit != 60 {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Dataset.Dir != "daily_technical_data" || cfg.Dataset.Ext != ".csv" {
		t.Fatalf("unexpected dataset defaults: %+v", cfg.Dataset)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("DATA_EXT", "txt")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("AGGREGATE_PARALLEL", "4")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Dataset.Dir != "/srv/data" || cfg.Dataset.Ext != ".txt" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Server.RequestTimeout != 3*time.Second || cfg.Aggregator.Parallel != 4 {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := Config{
		Server:  ServerConfig{Port: "8000", RequestTimeout: time.Second},
		Dataset: DatasetConfig{Dir: "d", Ext: ".csv"},
	}
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantKey string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no port", mutate: func(c *Config) { c.Server.Port = "" }, wantKey: "SERVER_PORT"},
		{name: "no dir", mutate: func(c *Config) { c.Dataset.Dir = "" }, wantKey: "DATA_DIR"},
		{name: "no ext", mutate: func(c *Config) { c.Dataset.Ext = "" }, wantKey: "DATA_EXT"},
		{name: "zero timeout", mutate: func(c *Config) { c.Server.RequestTimeout = 0 }, wantKey: "REQUEST_TIMEOUT"},
		{name: "negative parallel", mutate: func(c *Config) { c.Aggregator.Parallel = -1 }, wantKey: "AGGREGATE_PARALLEL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := validateConfig(cfg)
			if tc.wantKey == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantKey) {
				t.Fatalf("expected error naming %s, got %v", tc.wantKey, err)
			}
		})
	}
}

func TestNormalizeExt(t *testing.T) {
	cases := map[string]string{"csv": ".csv", ".csv": ".csv", " csv ": ".csv", "": ""}
	for in, want := range cases {
		if got := normalizeExt(in); got != want {
			t.Fatalf("normalizeExt(%q)=%q, want %q", in, got, want)
		}
	}
}
