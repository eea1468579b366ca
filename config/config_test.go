package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Assessment.RecencyWindowYears != 20 {
		t.Errorf("expected default recency window 20, got %d", cfg.Assessment.RecencyWindowYears)
	}
	if cfg.Output.Format != "turtle" {
		t.Errorf("expected default format turtle, got %s", cfg.Output.Format)
	}
	if cfg.Output.Dir != "." {
		t.Errorf("expected default output dir ., got %s", cfg.Output.Dir)
	}
	if cfg.NATS.URL != "" {
		t.Error("expected NATS publishing disabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero recency window",
			modify:  func(c *Config) { c.Assessment.RecencyWindowYears = 0 },
			wantErr: true,
		},
		{
			name:    "negative recency window",
			modify:  func(c *Config) { c.Assessment.RecencyWindowYears = -5 },
			wantErr: true,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Output.Format = "rdfxml" },
			wantErr: true,
		},
		{
			name:    "missing output dir",
			modify:  func(c *Config) { c.Output.Dir = "" },
			wantErr: true,
		},
		{
			name:    "ntriples format",
			modify:  func(c *Config) { c.Output.Format = "ntriples" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
assessment:
  recency_window_years: 10
  boundaries_path: "/data/states.geojson"
scoring:
  use_cases_path: "/data/usecases.yaml"
  methods_path: "/data/methods.yaml"
output:
  dir: "/out"
  format: "jsonld"
nats:
  url: "nats://test:4222"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Assessment.RecencyWindowYears != 10 {
		t.Errorf("expected recency window 10, got %d", cfg.Assessment.RecencyWindowYears)
	}
	if cfg.Assessment.BoundariesPath != "/data/states.geojson" {
		t.Errorf("expected boundaries path /data/states.geojson, got %s", cfg.Assessment.BoundariesPath)
	}
	if cfg.Scoring.UseCasesPath != "/data/usecases.yaml" {
		t.Errorf("expected use cases path /data/usecases.yaml, got %s", cfg.Scoring.UseCasesPath)
	}
	if cfg.Output.Dir != "/out" {
		t.Errorf("expected output dir /out, got %s", cfg.Output.Dir)
	}
	if cfg.Output.Format != "jsonld" {
		t.Errorf("expected format jsonld, got %s", cfg.Output.Format)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Assessment: AssessmentConfig{
			BoundariesPath: "/override/states.geojson",
		},
		Output: OutputConfig{
			Dir: "/override/out",
		},
	}

	base.Merge(override)

	if base.Assessment.BoundariesPath != "/override/states.geojson" {
		t.Errorf("expected boundaries path /override/states.geojson, got %s", base.Assessment.BoundariesPath)
	}
	// Recency window should remain from base since override didn't set it
	if base.Assessment.RecencyWindowYears != 20 {
		t.Errorf("expected recency window to remain default, got %d", base.Assessment.RecencyWindowYears)
	}
	if base.Output.Dir != "/override/out" {
		t.Errorf("expected output dir /override/out, got %s", base.Output.Dir)
	}
	if base.Output.Format != "turtle" {
		t.Errorf("expected format to remain default, got %s", base.Output.Format)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Assessment.BoundariesPath = "/saved/states.geojson"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Assessment.BoundariesPath != "/saved/states.geojson" {
		t.Errorf("expected boundaries path /saved/states.geojson, got %s", loaded.Assessment.BoundariesPath)
	}
}
