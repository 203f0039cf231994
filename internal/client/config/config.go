package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Token storage kinds.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
	StorageMemory = "memory"
)

// Config holds runtime settings for the userdesk console.
//
// Fields:
//   - BaseURL: root of the reqres-compatible API, without trailing slash.
//   - APIKey: optional static x-api-key header value.
//   - StorageKind: where the session token survives restarts.
//   - DataDir: directory for the token database or file.
//   - RequestTimeout: applies to every remote call; there are no retries.
//   - LogLevel: debug, info, warn or error.
//   - BulkConcurrency: parallel deletes in a bulk delete, 0 = unbounded.
type Config struct {
	BaseURL         string        `envconfig:"BASE_URL" validate:"required,url"`
	APIKey          string        `envconfig:"API_KEY"`
	StorageKind     string        `envconfig:"STORAGE" validate:"oneof=sqlite file memory"`
	DataDir         string        `envconfig:"DATA_DIR" validate:"required_unless=StorageKind memory"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" validate:"gt=0"`
	LogLevel        string        `envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	BulkConcurrency int           `envconfig:"BULK_CONCURRENCY" validate:"gte=0"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://reqres.in/api"
	c.StorageKind = StorageSQLite
	c.DataDir = defaultDataDir()
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.BulkConcurrency = 0
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "userdesk")
	}
	return ".userdesk"
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) TokenDBPath() string {
	return filepath.Join(c.DataDir, "userdesk.db")
}

func (c *Config) TokenFilePath() string {
	return filepath.Join(c.DataDir, "token")
}

// LoadConfig builds a Config from defaults, the environment, an optional
// JSON file and args (usually os.Args[1:]). Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
