package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	for _, name := range []string{"ALPHA_VANTAGE_API_KEY", "DATA_PROVIDER", "API_BASE_URL", "BENCHMARK",
		"STORE_DRIVER", "STORE_PATH", "REFRESH_INTERVAL", "CYCLE_INTERVAL", "PORT"} {
		t.Setenv(name, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Provider != ProviderAlphaVantage || cfg.API.BaseURL != "https://www.alphavantage.co" {
		t.Errorf("provider = %s at %s", cfg.API.Provider, cfg.API.BaseURL)
	}
	if cfg.API.APIKey != "demo" {
		t.Errorf("api key = %q, want demo", cfg.API.APIKey)
	}
	if cfg.Benchmark != "SPY" {
		t.Errorf("benchmark = %q", cfg.Benchmark)
	}
	if cfg.Schedule.RefreshInterval != 10*time.Second || cfg.Schedule.CycleInterval != 5*time.Second {
		t.Errorf("intervals = %v/%v", cfg.Schedule.RefreshInterval, cfg.Schedule.CycleInterval)
	}
	if cfg.Chart.Width != 300 || cfg.Chart.Height != 150 || cfg.Chart.Padding != 10 {
		t.Errorf("chart = %+v", cfg.Chart)
	}
	if cfg.Store.Driver != "file" || cfg.Store.Path != "data/finpeek.json" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Server.PageRefreshSeconds != 5 {
		t.Errorf("page refresh = %d, want 5", cfg.Server.PageRefreshSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api:
  provider: yahoo
  timeout: 2s
benchmark: QQQ
schedule:
  refresh_interval: 30s
  cycle_interval: 15s
store:
  driver: sqlite
server:
  port: 9090
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Provider != ProviderYahoo || cfg.API.BaseURL != "https://query1.finance.yahoo.com" {
		t.Errorf("provider = %s at %s", cfg.API.Provider, cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 2*time.Second {
		t.Errorf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.Benchmark != "QQQ" || cfg.Server.Port != 9090 {
		t.Errorf("benchmark = %s, port = %d", cfg.Benchmark, cfg.Server.Port)
	}
	if cfg.Schedule.RefreshInterval != 30*time.Second || cfg.Server.PageRefreshSeconds != 15 {
		t.Errorf("refresh = %v, page refresh = %d", cfg.Schedule.RefreshInterval, cfg.Server.PageRefreshSeconds)
	}
	if cfg.Store.Path != "data/finpeek.db" {
		t.Errorf("sqlite store path = %q", cfg.Store.Path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "api:\n  api_key: from-file\nbenchmark: QQQ\n")
	t.Setenv("ALPHA_VANTAGE_API_KEY", "from-env")
	t.Setenv("BENCHMARK", "DIA")
	t.Setenv("REFRESH_INTERVAL", "20s")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("PORT", "3000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.APIKey != "from-env" || cfg.Benchmark != "DIA" {
		t.Errorf("api key = %s, benchmark = %s", cfg.API.APIKey, cfg.Benchmark)
	}
	if cfg.Schedule.RefreshInterval != 20*time.Second {
		t.Errorf("refresh = %v", cfg.Schedule.RefreshInterval)
	}
	if cfg.Store.Driver != "redis" || cfg.Store.RedisAddr != "localhost:6379" || cfg.Server.Port != 3000 {
		t.Errorf("store = %+v, port = %d", cfg.Store, cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoad_ProviderOverrideResetsBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		baseURL string
		want    string
	}{
		{
			name: "file pins the other provider's host",
			path: func(t *testing.T) string {
				return writeConfig(t, "api:\n  provider: alphavantage\n  base_url: https://www.alphavantage.co\n")
			},
			want: "https://query1.finance.yahoo.com",
		},
		{
			name: "shipped config",
			path: func(*testing.T) string { return filepath.Join("..", "..", "configs", "config.yaml") },
			want: "https://query1.finance.yahoo.com",
		},
		{
			name: "explicit env base url wins",
			path: func(t *testing.T) string {
				return writeConfig(t, "api:\n  base_url: https://www.alphavantage.co\n")
			},
			baseURL: "http://localhost:9000",
			want:    "http://localhost:9000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATA_PROVIDER", "yahoo")
			t.Setenv("API_BASE_URL", tt.baseURL)
			cfg, err := Load(tt.path(t))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if cfg.API.Provider != ProviderYahoo || cfg.API.BaseURL != tt.want {
				t.Errorf("provider = %s at %s, want yahoo at %s", cfg.API.Provider, cfg.API.BaseURL, tt.want)
			}
		})
	}
}

func TestLoad_FileBaseURLKeptForSameProvider(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "api:\n  provider: yahoo\n  base_url: https://query2.finance.yahoo.com\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "https://query2.finance.yahoo.com" {
		t.Errorf("base url = %s", cfg.API.BaseURL)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		if _, err := Load(writeConfig(t, "api: [")); err == nil {
			t.Error("expected parse error")
		}
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("CYCLE_INTERVAL", "often")
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected duration error")
		}
	})
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("PORT", "http")
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected port error")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.API.Provider = "bloomberg" }},
		{"zero timeout", func(c *Config) { c.API.Timeout = -time.Second }},
		{"sub-second refresh", func(c *Config) { c.Schedule.RefreshInterval = 500 * time.Millisecond }},
		{"padding too large", func(c *Config) { c.Chart.Padding = 80 }},
		{"unknown store", func(c *Config) { c.Store.Driver = "etcd" }},
		{"redis without addr", func(c *Config) { c.Store.Driver = "redis"; c.Store.RedisAddr = "" }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_MockProvider(t *testing.T) {
	t.Setenv("DATA_PROVIDER", "mock")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider rejected: %v", err)
	}
}
