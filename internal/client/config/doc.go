// Package config loads runtime configuration for the userdesk console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory (joho/godotenv), which never
//     overrides variables already set, then USERDESK_* environment
//     variables (kelseyhightower/envconfig).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the directory API
//	-k string   API key sent as x-api-key
//	-s string   token storage: sqlite, file or memory
//	-d string   data directory for the token store
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//	-b int      bulk delete concurrency, 0 = one worker per id
//
// Environment
//
//	USERDESK_BASE_URL, USERDESK_API_KEY, USERDESK_STORAGE, USERDESK_DATA_DIR,
//	USERDESK_REQUEST_TIMEOUT ("10s"), USERDESK_LOG_LEVEL, USERDESK_BULK_CONCURRENCY
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work.
// Missing keys keep their earlier value:
//
//	{
//	  "base_url": "https://reqres.in/api",
//	  "api_key": "reqres-free-v1",
//	  "storage": "sqlite",
//	  "data_dir": "/home/me/.config/userdesk",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "bulk_concurrency": 4
//	}
package config
