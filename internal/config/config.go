package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderAlphaVantage = "alphavantage"
	ProviderYahoo        = "yahoo"
	ProviderMock         = "mock"
)

var defaultBaseURLs = map[string]string{
	ProviderAlphaVantage: "https://www.alphavantage.co",
	ProviderYahoo:        "https://query1.finance.yahoo.com",
}

// Config holds all application configuration.
type Config struct {
	API struct {
		Provider string        `yaml:"provider"`
		BaseURL  string        `yaml:"base_url"`
		APIKey   string        `yaml:"api_key"`
		Timeout  time.Duration `yaml:"timeout"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"api"`
	Benchmark string `yaml:"benchmark"`
	Schedule  struct {
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		CycleInterval   time.Duration `yaml:"cycle_interval"`
	} `yaml:"schedule"`
	Chart struct {
		Width          float64 `yaml:"width"`
		Height         float64 `yaml:"height"`
		Padding        float64 `yaml:"padding"`
		StockColor     string  `yaml:"stock_color"`
		BenchmarkColor string  `yaml:"benchmark_color"`
	} `yaml:"chart"`
	Store struct {
		Driver        string `yaml:"driver"`
		Path          string `yaml:"path"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
	} `yaml:"store"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Port               int `yaml:"port"`
		PageRefreshSeconds int `yaml:"page_refresh_seconds"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	fileProvider := c.API.Provider
	if fileProvider == "" {
		fileProvider = ProviderAlphaVantage
	}
	texts := map[string]*string{
		"ALPHA_VANTAGE_API_KEY": &c.API.APIKey,
		"DATA_PROVIDER":         &c.API.Provider,
		"API_BASE_URL":          &c.API.BaseURL,
		"BENCHMARK":             &c.Benchmark,
		"HTTPS_PROXY":           &c.Proxy,
		"STORE_DRIVER":          &c.Store.Driver,
		"STORE_PATH":            &c.Store.Path,
		"REDIS_ADDR":            &c.Store.RedisAddr,
		"REDIS_PASSWORD":        &c.Store.RedisPassword,
		"SQLITE_PATH":           &c.Database.SQLitePath,
	}
	for name, dst := range texts {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	// A base URL from the file belongs to the file's provider.
	if c.API.Provider != fileProvider && os.Getenv("API_BASE_URL") == "" {
		c.API.BaseURL = ""
	}

	durations := map[string]*time.Duration{
		"API_TIMEOUT":      &c.API.Timeout,
		"REFRESH_INTERVAL": &c.Schedule.RefreshInterval,
		"CYCLE_INTERVAL":   &c.Schedule.CycleInterval,
	}
	for name, dst := range durations {
		if v := os.Getenv(name); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = d
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.API.Provider == "" {
		c.API.Provider = ProviderAlphaVantage
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURLs[c.API.Provider]
	}
	if c.API.APIKey == "" {
		c.API.APIKey = "demo"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 5 * time.Second
	}
	if c.API.CacheTTL == 0 {
		c.API.CacheTTL = time.Minute
	}
	if c.Benchmark == "" {
		c.Benchmark = "SPY"
	}
	if c.Schedule.RefreshInterval == 0 {
		c.Schedule.RefreshInterval = 10 * time.Second
	}
	if c.Schedule.CycleInterval == 0 {
		c.Schedule.CycleInterval = 5 * time.Second
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 300
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 150
	}
	if c.Chart.Padding == 0 {
		c.Chart.Padding = 10
	}
	if c.Chart.StockColor == "" {
		c.Chart.StockColor = "#007AFF"
	}
	if c.Chart.BenchmarkColor == "" {
		c.Chart.BenchmarkColor = "#00C851"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "file"
	}
	if c.Store.Path == "" {
		switch c.Store.Driver {
		case "sqlite":
			c.Store.Path = "data/finpeek.db"
		default:
			c.Store.Path = "data/finpeek.json"
		}
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/finpeek_events.db"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.PageRefreshSeconds == 0 {
		c.Server.PageRefreshSeconds = int(c.Schedule.CycleInterval / time.Second)
	}
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	switch c.API.Provider {
	case ProviderAlphaVantage, ProviderYahoo:
		if c.API.BaseURL == "" {
			return fmt.Errorf("api.base_url is required")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("api.provider %q is not one of alphavantage, yahoo, mock", c.API.Provider)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.Schedule.RefreshInterval < time.Second || c.Schedule.CycleInterval < time.Second {
		return fmt.Errorf("schedule intervals must be at least 1s")
	}
	if c.Chart.Width <= 2*c.Chart.Padding || c.Chart.Height <= 2*c.Chart.Padding {
		return fmt.Errorf("chart must be larger than twice its padding")
	}
	switch c.Store.Driver {
	case "file", "sqlite", "memory":
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("store.driver %q is not one of file, sqlite, redis, memory", c.Store.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}
