package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nordique-ai/nordique/internal/core"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("Validate(Default()) = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{
			name:     "zero epsilon rejected",
			mutate:   func(c *Config) { c.Analysis.Epsilon = 0 },
			wantCode: core.CodeInvalidEpsilon,
		},
		{
			name:     "negative epsilon rejected",
			mutate:   func(c *Config) { c.Analysis.Epsilon = -0.5 },
			wantCode: core.CodeInvalidEpsilon,
		},
		{
			name:     "threshold above one rejected",
			mutate:   func(c *Config) { c.Analysis.SimilarityThreshold = 1.5 },
			wantCode: core.CodeInvalidThreshold,
		},
		{
			name:     "negative threshold rejected",
			mutate:   func(c *Config) { c.Analysis.SimilarityThreshold = -0.1 },
			wantCode: core.CodeInvalidThreshold,
		},
		{
			name:     "zero min length rejected",
			mutate:   func(c *Config) { c.Analysis.MinLength = 0 },
			wantCode: core.CodeInvalidMinLength,
		},
		{
			name:     "unknown log level rejected",
			mutate:   func(c *Config) { c.Log.Level = "verbose" },
			wantCode: core.CodeInvalidConfig,
		},
		{
			name:     "unknown log format rejected",
			mutate:   func(c *Config) { c.Log.Format = "xml" },
			wantCode: core.CodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var domErr *core.DomainError
			if !errors.As(err, &domErr) {
				t.Fatalf("Validate() error type %T, want *core.DomainError", err)
			}
			if domErr.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", domErr.Code, tt.wantCode)
			}
		})
	}
}

func TestPresetNames_SortedAndComplete(t *testing.T) {
	want := []string{"academique", "creatif", "standard", "strict"}
	if got := PresetNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("PresetNames() = %v, want %v", got, want)
	}
}

func TestGetPreset(t *testing.T) {
	p, ok := GetPreset("academique")
	if !ok {
		t.Fatal("GetPreset(academique) not found")
	}
	want := Preset{Epsilon: 0.05, SimilarityThreshold: 0.5, MinLength: 200}
	if p != want {
		t.Errorf("GetPreset(academique) = %+v, want %+v", p, want)
	}

	if _, ok := GetPreset("inexistant"); ok {
		t.Error("GetPreset(inexistant) found, want miss")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	if err := ApplyPreset(cfg, "strict"); err != nil {
		t.Fatalf("ApplyPreset() = %v", err)
	}
	if cfg.Analysis.Epsilon != 0.01 || cfg.Analysis.SimilarityThreshold != 0.6 || cfg.Analysis.MinLength != 150 {
		t.Errorf("analysis after preset = %+v", cfg.Analysis)
	}
}

func TestApplyPreset_Unknown(t *testing.T) {
	cfg := Default()
	err := ApplyPreset(cfg, "fantaisie")
	if err == nil {
		t.Fatal("ApplyPreset() = nil, want error")
	}
	var domErr *core.DomainError
	if !errors.As(err, &domErr) || domErr.Code != core.CodeUnknownPreset {
		t.Errorf("error = %v, want code %s", err, core.CodeUnknownPreset)
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nordique.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() = %v", err)
	}

	loaded, err := NewLoader().WithConfigFile(path).Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if !reflect.DeepEqual(loaded, Default()) {
		t.Errorf("loaded config = %+v, want defaults %+v", loaded, Default())
	}
}

func TestWriteDefault_RefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nordique.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("WriteDefault() = nil, want error for existing file")
	}
}

func TestLoader_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("analysis:\n  epsilon: 0.25\nserver:\n  addr: \":9999\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().WithConfigFile(path).Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Analysis.Epsilon != 0.25 {
		t.Errorf("epsilon = %v, want 0.25 from file", cfg.Analysis.Epsilon)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999 from file", cfg.Server.Addr)
	}
	// Untouched keys keep their defaults.
	if cfg.Analysis.MinLength != 100 {
		t.Errorf("min length = %d, want default 100", cfg.Analysis.MinLength)
	}
}
