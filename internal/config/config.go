package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries every runtime setting. It is loaded once at startup and
// handed to the services explicitly; nothing reads it as a global.
type Config struct {
	Port            int           `mapstructure:"port"`
	UploadDir       string        `mapstructure:"upload_dir"`
	DBPath          string        `mapstructure:"db_path"`
	MaxFileSize     int64         `mapstructure:"max_file_size"`
	PageSize        int           `mapstructure:"page_size"`
	PublicBasePath  string        `mapstructure:"public_base_path"`
	LogFile         string        `mapstructure:"log_file"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8000)
	v.SetDefault("upload_dir", "./images")
	v.SetDefault("db_path", "./imagehost.db")
	v.SetDefault("max_file_size", 10*1024*1024)
	v.SetDefault("page_size", 10)
	v.SetDefault("public_base_path", "/images")
	v.SetDefault("log_file", "./logs/app.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout", 5*time.Second)
}

// Load reads configuration from an optional imagehost.yaml in the working
// directory plus IMAGEHOST_* environment variables, over the defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("imagehost")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("imagehost")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything has a default.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("upload_dir cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path cannot be empty")
	}
	return nil
}
