package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/flagx"
)

var knownFlags = []string{"-a", "-k", "-s", "-d", "-t", "-l", "-b"}

// parseFlags populates Config fields from the flags this package owns; the
// rest of args is ignored (see flagx.FilterArgs).
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("userdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the directory API")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "API key sent as x-api-key")
	fs.StringVar(&cfg.StorageKind, "s", cfg.StorageKind, "token storage: sqlite, file or memory")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.BulkConcurrency, "b", cfg.BulkConcurrency, "bulk delete concurrency, 0 = one worker per id")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
