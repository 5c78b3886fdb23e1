package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
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
				Port:               "8082",
				DataBackend:        "file",
				DataDir:            "./data",
				RateLimitPerMinute: 120,
				ShutdownTimeout:    30 * time.Second,
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				Port:               "8082",
				DataBackend:        "memory",
				RateLimitPerMinute: 1,
				ShutdownTimeout:    time.Second,
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:               "abc",
				DataBackend:        "memory",
				RateLimitPerMinute: 10,
				ShutdownTimeout:    time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:               "70000",
				DataBackend:        "memory",
				RateLimitPerMinute: 10,
				ShutdownTimeout:    time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 70000",
		},
		{
			name: "unknown backend",
			config: Config{
				Port:               "8082",
				DataBackend:        "redis",
				RateLimitPerMinute: 10,
				ShutdownTimeout:    time.Second,
			},
			wantErr:     true,
			errorString: "invalid data backend 'redis'",
		},
		{
			name: "file backend without data dir",
			config: Config{
				Port:               "8082",
				DataBackend:        "file",
				DataDir:            "",
				RateLimitPerMinute: 10,
				ShutdownTimeout:    time.Second,
			},
			wantErr:     true,
			errorString: "data directory cannot be empty",
		},
		{
			name: "sqlite backend without path",
			config: Config{
				Port:               "8082",
				DataBackend:        "sqlite",
				SQLiteDBPath:       "",
				RateLimitPerMinute: 10,
				ShutdownTimeout:    time.Second,
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "rate limit too low",
			config: Config{
				Port:               "8082",
				DataBackend:        "memory",
				RateLimitPerMinute: 0,
				ShutdownTimeout:    time.Second,
			},
			wantErr:     true,
			errorString: "invalid rate limit 0",
		},
		{
			name: "shutdown timeout too short",
			config: Config{
				Port:               "8082",
				DataBackend:        "memory",
				RateLimitPerMinute: 10,
				ShutdownTimeout:    100 * time.Millisecond,
			},
			wantErr:     true,
			errorString: "invalid shutdown timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
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

func TestConfig_ValidateCreatesSQLiteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := Config{
		Port:               "8082",
		DataBackend:        "sqlite",
		SQLiteDBPath:       filepath.Join(dir, "fatture.db"),
		RateLimitPerMinute: 10,
		ShutdownTimeout:    time.Second,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8082" {
		t.Errorf("default port = %q", cfg.Port)
	}
	if cfg.DataBackend != "file" {
		t.Errorf("default backend = %q", cfg.DataBackend)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Errorf("default rate limit = %d", cfg.RateLimitPerMinute)
	}
}
