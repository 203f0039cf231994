package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userdesk/internal/flagx"
	"github.com/dmitrijs2005/userdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from zero values.
type JsonConfig struct {
	BaseURL         *string         `json:"base_url"`
	APIKey          *string         `json:"api_key"`
	StorageKind     *string         `json:"storage"`
	DataDir         *string         `json:"data_dir"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	LogLevel        *string         `json:"log_level"`
	BulkConcurrency *int            `json:"bulk_concurrency"`
}

// parseJson overlays cfg with the file named by -c/-config in args. Without
// either flag nothing changes.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.BaseURL, jc.BaseURL)
	setIf(&cfg.APIKey, jc.APIKey)
	setIf(&cfg.StorageKind, jc.StorageKind)
	setIf(&cfg.DataDir, jc.DataDir)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.BulkConcurrency, jc.BulkConcurrency)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
