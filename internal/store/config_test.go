package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const minimalConfig = `
data:
  stories: _data/stories.csv
  daily_prices: _data/prices.csv
  minute_quotes: _data/quotes.csv
`

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Data.OutFormat != "csv" {
		t.Errorf("out_format = %s, want csv", cfg.Data.OutFormat)
	}
	if cfg.Calendar.OriginTZ != "UTC" || cfg.Calendar.LocalTZ != "America/New_York" {
		t.Errorf("calendar defaults = %s/%s", cfg.Calendar.OriginTZ, cfg.Calendar.LocalTZ)
	}
	if cfg.Portfolio.MinLegSize != 2 {
		t.Errorf("min_leg_size = %d, want 2", cfg.Portfolio.MinLegSize)
	}
	if cfg.Performance.AnnualizationDays != 252 {
		t.Errorf("annualization_days = %.0f, want 252", cfg.Performance.AnnualizationDays)
	}
	if cfg.Pipeline.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Pipeline.Workers)
	}
}

func TestLoadConfigRejectsMissingInputs(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
data:
  stories: _data/stories.csv
  minute_quotes: _data/quotes.csv
`))
	if err == nil || !strings.Contains(err.Error(), "daily_prices") {
		t.Errorf("expected daily_prices validation error, got %v", err)
	}
}

func TestLoadConfigRejectsUnknownOutFormat(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, minimalConfig+`  out_format: json
`))
	if err == nil || !strings.Contains(err.Error(), "out_format") {
		t.Errorf("expected out_format validation error, got %v", err)
	}
}

func TestLoadConfigRejectsBadLegSize(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, minimalConfig+`portfolio:
  min_leg_size: -1
`))
	if err == nil || !strings.Contains(err.Error(), "min_leg_size") {
		t.Errorf("expected min_leg_size validation error, got %v", err)
	}
}

func TestPostgresDSNEnvOverride(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://tests@localhost/eventdb")

	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Sink.PostgresDSN != "postgres://tests@localhost/eventdb" {
		t.Errorf("dsn = %s, want env override", cfg.Sink.PostgresDSN)
	}
}
