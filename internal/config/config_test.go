package config

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid file backend config",
			config: Config{
				Port:          "8090",
				DataBackend:   "file",
				DataDirectory: "./data",
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				Port:        "8090",
				DataBackend: "memory",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:          "abc",
				DataBackend:   "file",
				DataDirectory: "./data",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:          "70000",
				DataBackend:   "memory",
			},
			wantErr:     true,
			errorString: "invalid port 70000",
		},
		{
			name: "invalid backend",
			config: Config{
				Port:        "8090",
				DataBackend: "redis",
			},
			wantErr:     true,
			errorString: "invalid data backend 'redis'",
		},
		{
			name: "file backend without directory",
			config: Config{
				Port:        "8090",
				DataBackend: "file",
			},
			wantErr:     true,
			errorString: "data directory cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigValidateSQLite(t *testing.T) {
	cfg := Config{
		Port:         "8090",
		DataBackend:  "sqlite",
		SQLiteDBPath: t.TempDir() + "/nested/cashflow.db",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.SQLiteDBPath = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty sqlite path")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8090" || cfg.DataBackend != "file" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
