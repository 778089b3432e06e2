package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`

	Universe struct {
		Mode      string `yaml:"mode" validate:"oneof=top100 full"`
		CacheFile string `yaml:"cache_file" validate:"required"`
		UseCache  bool   `yaml:"use_cache"`
		TopN      int    `yaml:"top_n" validate:"gt=0"`

		MinMarketCap    float64 `yaml:"min_market_cap" validate:"gte=0"`
		MinPrice        float64 `yaml:"min_price" validate:"gte=0"`
		MinDollarVolume float64 `yaml:"min_avg_volume" validate:"gte=0"`
	} `yaml:"universe"`

	Fetch struct {
		Source        string `yaml:"source" validate:"oneof=yahoo alpaca"`
		DelayMS       int    `yaml:"delay_ms" validate:"gte=0"`
		HistoryDays   int    `yaml:"history_days" validate:"gt=0"`
		AvgVolumeDays int    `yaml:"avg_volume_days" validate:"gt=0"`
		Alpaca        struct {
			APIKey    string `yaml:"api_key"`
			APISecret string `yaml:"api_secret"`
		} `yaml:"alpaca"`
	} `yaml:"fetch"`

	Thresholds struct {
		TrendMinDailyGain float64 `yaml:"trend_min_daily_gain"`
		Trend3dTotal      float64 `yaml:"trend_3d_total"`
		Panic1dDrop       float64 `yaml:"panic_1d_drop"`
		Panic3dDrop       float64 `yaml:"panic_3d_drop"`
		PanicVolumeMult   float64 `yaml:"panic_volume_multiplier"`
		Euphoria1dGain    float64 `yaml:"euphoria_1d_gain"`
		Euphoria5dGain    float64 `yaml:"euphoria_5d_gain"`
	} `yaml:"thresholds"`

	Output struct {
		ResultsDir string `yaml:"results_dir" validate:"required"`
		DataDir    string `yaml:"data_dir" validate:"required"`
		SaveCache  bool   `yaml:"save_cache"`
	} `yaml:"output"`

	Market struct {
		Timezone string `yaml:"timezone" validate:"required"`
	} `yaml:"market"`

	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults still apply.
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

	// Environment variable overrides
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("UNIVERSE_MODE"); v != "" {
		cfg.Universe.Mode = v
	}
	if v := os.Getenv("UNIVERSE_CACHE_FILE"); v != "" {
		cfg.Universe.CacheFile = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.Fetch.Source = v
	}
	if v := os.Getenv("SCAN_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.DelayMS = ms
		}
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Fetch.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Fetch.Alpaca.APISecret = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Universe.Mode == "" {
		c.Universe.Mode = "full"
	}
	if c.Universe.CacheFile == "" {
		c.Universe.CacheFile = "data/us_stock_universe.txt"
	}
	if c.Universe.TopN == 0 {
		c.Universe.TopN = 100
	}
	if c.Universe.MinMarketCap == 0 {
		c.Universe.MinMarketCap = 500_000_000
	}
	if c.Universe.MinPrice == 0 {
		c.Universe.MinPrice = 3.0
	}
	if c.Universe.MinDollarVolume == 0 {
		c.Universe.MinDollarVolume = 20_000_000
	}
	if c.Fetch.Source == "" {
		c.Fetch.Source = "yahoo"
	}
	if c.Fetch.DelayMS == 0 {
		c.Fetch.DelayMS = 500
	}
	if c.Fetch.HistoryDays == 0 {
		c.Fetch.HistoryDays = 30
	}
	if c.Fetch.AvgVolumeDays == 0 {
		c.Fetch.AvgVolumeDays = 20
	}
	if c.Thresholds.TrendMinDailyGain == 0 {
		c.Thresholds.TrendMinDailyGain = 5.0
	}
	if c.Thresholds.Trend3dTotal == 0 {
		c.Thresholds.Trend3dTotal = 15.0
	}
	if c.Thresholds.Panic1dDrop == 0 {
		c.Thresholds.Panic1dDrop = 8.0
	}
	if c.Thresholds.Panic3dDrop == 0 {
		c.Thresholds.Panic3dDrop = 15.0
	}
	if c.Thresholds.PanicVolumeMult == 0 {
		c.Thresholds.PanicVolumeMult = 1.5
	}
	if c.Thresholds.Euphoria1dGain == 0 {
		c.Thresholds.Euphoria1dGain = 8.0
	}
	if c.Thresholds.Euphoria5dGain == 0 {
		c.Thresholds.Euphoria5dGain = 20.0
	}
	if c.Output.ResultsDir == "" {
		c.Output.ResultsDir = "results"
	}
	if c.Output.DataDir == "" {
		c.Output.DataDir = "data"
	}
	if c.Market.Timezone == "" {
		c.Market.Timezone = "America/New_York"
	}
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if c.Fetch.Source == "alpaca" {
		if c.Fetch.Alpaca.APIKey == "" || c.Fetch.Alpaca.APISecret == "" {
			return fmt.Errorf("fetch.alpaca.api_key and api_secret are required for the alpaca source")
		}
	}
	if _, err := time.LoadLocation(c.Market.Timezone); err != nil {
		return fmt.Errorf("market.timezone: %w", err)
	}
	return nil
}

// Delay returns the fixed inter-request delay as a duration.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.Fetch.DelayMS) * time.Millisecond
}

// Location resolves the configured market timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Market.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ZerologLevel parses the configured log level, defaulting to info.
func (c *Config) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
