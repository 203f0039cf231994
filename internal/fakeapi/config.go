package fakeapi

import (
	"flag"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime settings for the fake directory server.
//
// Fields:
//   - Addr: listen address.
//   - APIKey: when set, required in x-api-key.
//   - RequireToken: demand a bearer token on /users.
//   - RateLimit / RateWindow: per-IP limit; 0 disables it.
//   - PerPage: default page size.
type Config struct {
	Addr         string        `envconfig:"ADDR"`
	APIKey       string        `envconfig:"API_KEY"`
	RequireToken bool          `envconfig:"REQUIRE_TOKEN"`
	RateLimit    int           `envconfig:"RATE_LIMIT"`
	RateWindow   time.Duration `envconfig:"RATE_WINDOW"`
	PerPage      int           `envconfig:"PER_PAGE"`
	LogLevel     string        `envconfig:"LOG_LEVEL"`
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8081"
	c.RateLimit = 100
	c.RateWindow = time.Minute
	c.PerPage = DefaultPerPage
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then FAKEAPI_* environment variables, then
// args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := envconfig.Process("fakeapi", cfg); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("fakeapi", flag.ContinueOnError)
	fs.StringVar(&c.Addr, "a", c.Addr, "listen address")
	fs.StringVar(&c.APIKey, "k", c.APIKey, "required x-api-key value")
	fs.BoolVar(&c.RequireToken, "require-token", c.RequireToken, "require a bearer token on /users")
	fs.IntVar(&c.RateLimit, "r", c.RateLimit, "requests per window per IP, 0 disables")
	fs.IntVar(&c.PerPage, "p", c.PerPage, "users per page")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level")
	return fs.Parse(args)
}

// Options turns the config into server options.
func (c *Config) Options() []Option {
	opts := []Option{WithPerPage(c.PerPage), WithRateLimit(c.RateLimit, c.RateWindow)}
	if c.APIKey != "" {
		opts = append(opts, WithAPIKey(c.APIKey))
	}
	if c.RequireToken {
		opts = append(opts, WithRequireToken())
	}
	return opts
}
