package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Collector struct {
		IntervalMinutes       int    `yaml:"interval_minutes"`
		RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
		CoinGeckoAPIKey       string `yaml:"coingecko_api_key"`
		CryptoCompareAPIKey   string `yaml:"cryptocompare_api_key"`
	} `yaml:"collector"`
	Analyzer struct {
		IntervalMinutes int `yaml:"interval_minutes"`
	} `yaml:"analyzer"`
	Dashboard struct {
		Port int `yaml:"port"`
	} `yaml:"dashboard"`
	LocalModel struct {
		Enabled        bool    `yaml:"enabled"`
		URL            string  `yaml:"url"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		Temperature    float64 `yaml:"temperature"`
		MaxTokens      int     `yaml:"max_tokens"`
	} `yaml:"local_model"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; defaults cover everything.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Database.Path = "dogeanalyze.db"
	cfg.Collector.IntervalMinutes = 5
	cfg.Collector.RequestTimeoutSeconds = 10
	cfg.Analyzer.IntervalMinutes = 15
	cfg.Dashboard.Port = 5000
	cfg.LocalModel.URL = "http://127.0.0.1:1234"
	cfg.LocalModel.TimeoutSeconds = 30
	cfg.LocalModel.Temperature = 0.7
	cfg.LocalModel.MaxTokens = 500
	cfg.Logging.Level = "info"
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.Collector.CoinGeckoAPIKey = v
	}
	if v := os.Getenv("CRYPTOCOMPARE_API_KEY"); v != "" {
		cfg.Collector.CryptoCompareAPIKey = v
	}
	if v := envInt("COLLECTION_INTERVAL_MINUTES"); v > 0 {
		cfg.Collector.IntervalMinutes = v
	}
	if v := envInt("ANALYSIS_INTERVAL_MINUTES"); v > 0 {
		cfg.Analyzer.IntervalMinutes = v
	}
	if v := envInt("DASHBOARD_PORT"); v > 0 {
		cfg.Dashboard.Port = v
	}
	if v := os.Getenv("LOCAL_MODEL_ENABLED"); v != "" {
		cfg.LocalModel.Enabled = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("LOCAL_MODEL_URL"); v != "" {
		cfg.LocalModel.URL = v
	}
	if v := envInt("LOCAL_MODEL_TIMEOUT"); v > 0 {
		cfg.LocalModel.TimeoutSeconds = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
