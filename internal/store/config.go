package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every knob for a pipeline run. There is no process-wide
// default state in the core packages; one Config value is threaded into
// each stage explicitly.
type Config struct {
	Data struct {
		Stories      string `yaml:"stories"`
		StoryIndex   string `yaml:"story_index"` // optional prebuilt index
		DailyPrices  string `yaml:"daily_prices"`
		MinuteQuotes string `yaml:"minute_quotes"`
		OutDir       string `yaml:"out_dir"`
		OutFormat    string `yaml:"out_format"` // csv or parquet
	} `yaml:"data"`
	Calendar struct {
		OriginTZ string `yaml:"origin_tz"`
		LocalTZ  string `yaml:"local_tz"`
	} `yaml:"calendar"`
	Portfolio struct {
		MinLegSize int `yaml:"min_leg_size"`
	} `yaml:"portfolio"`
	Performance struct {
		AnnualizationDays float64 `yaml:"annualization_days"`
	} `yaml:"performance"`
	Pipeline struct {
		Workers int `yaml:"workers"`
	} `yaml:"pipeline"`
	Sink struct {
		PostgresDSN string `yaml:"postgres_dsn"` // env PG_DSN overrides
	} `yaml:"sink"`
}

func (c *Config) Validate() error {
	if c.Data.Stories == "" {
		return errors.New("data.stories cannot be empty")
	}
	if c.Data.DailyPrices == "" {
		return errors.New("data.daily_prices cannot be empty")
	}
	if c.Data.MinuteQuotes == "" {
		return errors.New("data.minute_quotes cannot be empty")
	}
	if c.Data.OutFormat != "csv" && c.Data.OutFormat != "parquet" {
		return fmt.Errorf("data.out_format must be 'csv' or 'parquet', got '%s'", c.Data.OutFormat)
	}
	if c.Portfolio.MinLegSize < 1 {
		return fmt.Errorf("portfolio.min_leg_size must be >= 1, got %d", c.Portfolio.MinLegSize)
	}
	if c.Performance.AnnualizationDays <= 0 {
		return fmt.Errorf("performance.annualization_days must be > 0, got %.0f", c.Performance.AnnualizationDays)
	}
	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be >= 1, got %d", c.Pipeline.Workers)
	}
	return nil
}

// LoadConfig reads and validates a YAML config, applying defaults for
// unset fields.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Data.OutDir == "" {
		c.Data.OutDir = "_data/out"
	}
	if c.Data.OutFormat == "" {
		c.Data.OutFormat = "csv"
	}
	if c.Calendar.OriginTZ == "" {
		c.Calendar.OriginTZ = "UTC"
	}
	if c.Calendar.LocalTZ == "" {
		c.Calendar.LocalTZ = "America/New_York"
	}
	if c.Portfolio.MinLegSize == 0 {
		c.Portfolio.MinLegSize = 2
	}
	if c.Performance.AnnualizationDays == 0 {
		c.Performance.AnnualizationDays = 252
	}
	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = 8
	}
	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		c.Sink.PostgresDSN = dsn
	}
}
