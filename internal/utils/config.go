package utils

import (
	"EatBefore/pkg/expiry"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigPath = "config.yaml"
	ConfigPathEnv     = "EATBEFORE_CONFIG"

	StoreDriverBolt     = "bolt"
	StoreDriverPostgres = "postgres"
	StoreDriverS3       = "s3"
	StoreDriverMemory   = "memory"
)

type (
	Config struct {
		Server      ServerConfig      `yaml:"server"`
		Store       StoreConfig       `yaml:"store"`
		Recognition RecognitionConfig `yaml:"recognition"`
		Expiry      ExpiryConfig      `yaml:"expiry"`
		Grocery     GroceryConfig     `yaml:"grocery"`
		JWT         JWTConfig         `yaml:"jwt"`
		Logger      LoggerConfig      `yaml:"logger"`
		Timezone    string            `yaml:"timezone"`
	}

	ServerConfig struct {
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		RateLimit   int    `yaml:"rate_limit"`
		CORSOrigins string `yaml:"cors_origins"`
	}

	StoreConfig struct {
		Driver   string         `yaml:"driver"`
		Path     string         `yaml:"path"`
		Postgres PostgresConfig `yaml:"postgres"`
		S3       S3Config       `yaml:"s3"`
	}

	PostgresConfig struct {
		Host     string `yaml:"DB_HOST"`
		Port     string `yaml:"DB_PORT"`
		User     string `yaml:"DB_USER"`
		Password string `yaml:"DB_PASSWORD"`
		Name     string `yaml:"DB_NAME"`
	}

	S3Config struct {
		Bucket    string `yaml:"AWS_S3_BUCKET"`
		Region    string `yaml:"AWS_S3_REGION"`
		Prefix    string `yaml:"prefix"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"AWS_ACCESS_KEY"`
		SecretKey string `yaml:"AWS_SECRET_KEY"`
	}

	RecognitionConfig struct {
		Enabled bool          `yaml:"enabled"`
		APIKey  string        `yaml:"GEMINI_API_KEY"`
		Model   string        `yaml:"GEMINI_MODEL"`
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	}

	ExpiryConfig struct {
		UrgentDays int `yaml:"urgent_days"`
		SoonDays   int `yaml:"soon_days"`
	}

	GroceryConfig struct {
		RequireImage   bool          `yaml:"require_image"`
		SeedSampleData bool          `yaml:"seed_sample_data"`
		DraftTTL       time.Duration `yaml:"draft_ttl"`
	}

	JWTConfig struct {
		Secret string        `yaml:"JWT_SECRET"`
		TTL    time.Duration `yaml:"ttl"`
	}

	LoggerConfig struct {
		Level      string `yaml:"level"`
		Format     string `yaml:"format"`
		AccessLog  string `yaml:"access_log"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	}
)

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			RateLimit:   10,
			CORSOrigins: "*",
		},
		Store: StoreConfig{
			Driver: StoreDriverBolt,
			Path:   "./data/eatbefore.db",
			S3: S3Config{
				Region: "us-east-1",
				Prefix: "eatbefore/",
			},
		},
		Recognition: RecognitionConfig{
			Model:   "gemini-1.5-flash",
			BaseURL: "https://generativelanguage.googleapis.com",
			Timeout: 30 * time.Second,
		},
		Expiry: ExpiryConfig{
			UrgentDays: expiry.DefaultThresholds.Urgent,
			SoonDays:   expiry.DefaultThresholds.Soon,
		},
		Grocery: GroceryConfig{
			RequireImage:   true,
			SeedSampleData: true,
			DraftTTL:       time.Hour,
		},
		JWT: JWTConfig{
			TTL: 120 * time.Minute,
		},
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "json",
			AccessLog:  "./logs/app.log",
			MaxSizeMB:  64,
			MaxBackups: 7,
			MaxAgeDays: 7,
		},
		Timezone: "Local",
	}
}

// ConfigPath returns the file named by EATBEFORE_CONFIG, or config.yaml.
func ConfigPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return DefaultConfigPath
}

// LoadConfig reads path over the defaults. A missing config.yaml is not an
// error; a missing file that was asked for by name is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("error parsing YAML file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigPath:
	default:
		return nil, fmt.Errorf("error reading YAML file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnv lets secrets come from the environment instead of the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Recognition.APIKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("AWS_ACCESS_KEY"); v != "" {
		c.Store.S3.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_KEY"); v != "" {
		c.Store.S3.SecretKey = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Store.Postgres.Password = v
	}
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case StoreDriverBolt:
		if c.Store.Path == "" {
			return fmt.Errorf("store path is required for the bolt driver")
		}
	case StoreDriverPostgres:
		if c.Store.Postgres.Host == "" || c.Store.Postgres.User == "" || c.Store.Postgres.Name == "" {
			return fmt.Errorf("postgres host, user and database name are required for the postgres driver")
		}
	case StoreDriverS3:
		if c.Store.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for the s3 driver")
		}
		if c.Store.S3.Region == "" {
			return fmt.Errorf("S3 region is required for the s3 driver")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("invalid store driver: %q (must be bolt, postgres, s3 or memory)", c.Store.Driver)
	}

	if err := c.Thresholds().Validate(); err != nil {
		return fmt.Errorf("invalid expiry thresholds: %w", err)
	}

	if c.Grocery.DraftTTL < 0 {
		return fmt.Errorf("draft ttl must not be negative")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT ttl must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	return nil
}

func (c *Config) Thresholds() expiry.Thresholds {
	return expiry.Thresholds{
		Urgent: c.Expiry.UrgentDays,
		Soon:   c.Expiry.SoonDays,
	}
}

// Location is the zone calendar dates are interpreted in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host,
		c.User,
		c.Password,
		c.Name,
		c.Port,
	)
}
