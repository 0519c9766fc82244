package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a directory with no imagehost.yaml
	wd, _ := os.Getwd()
	os.Chdir(t.TempDir())
	defer os.Chdir(wd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.MaxFileSize != 10*1024*1024 {
		t.Errorf("MaxFileSize = %d, want %d", cfg.MaxFileSize, 10*1024*1024)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.PageSize)
	}
	if cfg.PublicBasePath != "/images" {
		t.Errorf("PublicBasePath = %q, want %q", cfg.PublicBasePath, "/images")
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	wd, _ := os.Getwd()
	os.Chdir(t.TempDir())
	defer os.Chdir(wd)

	os.Setenv("IMAGEHOST_PORT", "9090")
	os.Setenv("IMAGEHOST_PAGE_SIZE", "25")
	os.Setenv("IMAGEHOST_UPLOAD_DIR", "/srv/images")
	defer func() {
		os.Unsetenv("IMAGEHOST_PORT")
		os.Unsetenv("IMAGEHOST_PAGE_SIZE")
		os.Unsetenv("IMAGEHOST_UPLOAD_DIR")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.PageSize)
	}
	if cfg.UploadDir != "/srv/images" {
		t.Errorf("UploadDir = %q, want %q", cfg.UploadDir, "/srv/images")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"zero max size", func(c *Config) { c.MaxFileSize = 0 }, true},
		{"negative page size", func(c *Config) { c.PageSize = -1 }, true},
		{"empty upload dir", func(c *Config) { c.UploadDir = "" }, true},
		{"empty db path", func(c *Config) { c.DBPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:        8000,
				UploadDir:   "./images",
				DBPath:      "./imagehost.db",
				MaxFileSize: 1024,
				PageSize:    10,
			}
			tt.mutate(cfg)

			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
