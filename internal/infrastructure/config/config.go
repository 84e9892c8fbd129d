package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for the webhook listener and the
// DynamoDB-backed handler.
type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
	// DefaultRecent is the /alerts count used when the query omits it.
	DefaultRecent int `yaml:"default_recent"`
}

type StoreConfig struct {
	Table  string `yaml:"table"`
	Region string `yaml:"region"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// AlertFile is the append-only text log of alert summaries. Empty
	// disables it.
	AlertFile string `yaml:"alert_file"`
}

// LoadFromFile reads the YAML config, then layers defaults and environment
// overrides on top. A missing file is fine; env-only deployments are common.
func LoadFromFile(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg = applyDefaults(cfg)
	cfg = applyEnv(cfg)
	return cfg, nil
}

func applyDefaults(cfg Config) Config {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":5000"
	}
	if cfg.HTTP.DefaultRecent == 0 {
		cfg.HTTP.DefaultRecent = 10
	}
	if cfg.Store.Table == "" {
		cfg.Store.Table = "TradingAlerts"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.AlertFile == "" {
		cfg.Log.AlertFile = "trading_alerts.log"
	}
	return cfg
}

func applyEnv(cfg Config) Config {
	if val := os.Getenv("HTTP_ADDR"); val != "" {
		cfg.HTTP.Addr = val
	}
	if val := os.Getenv("PORT"); val != "" {
		cfg.HTTP.Addr = ":" + val
	}
	if val := os.Getenv("DEFAULT_RECENT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.HTTP.DefaultRecent = n
		}
	}
	if val := os.Getenv("ALERTS_TABLE"); val != "" {
		cfg.Store.Table = val
	}
	if val := os.Getenv("AWS_REGION"); val != "" {
		cfg.Store.Region = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		cfg.Log.Format = val
	}
	if val := os.Getenv("ALERT_LOG_FILE"); val != "" {
		cfg.Log.AlertFile = val
	}
	return cfg
}
