// Package config loads server settings from the environment with sane
// defaults for local development.
package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultMaxFileBytes = 10 << 20 // 10 MiB inline payload limit
)

type Config struct {
	Env      string
	HTTPAddr string

	// AllowedOrigins is the websocket origin allowlist; "*" allows all.
	AllowedOrigins []string

	// MaxFileBytes bounds the declared size of an inline file payload.
	MaxFileBytes int64
}

func Load() Config {
	cfg := Config{
		Env:          getEnv("APP_ENV", "dev"),
		HTTPAddr:     getEnv("HTTP_ADDR", defaultHTTPAddr),
		MaxFileBytes: getEnvInt64("MAX_FILE_BYTES", defaultMaxFileBytes),
	}
	cfg.AllowedOrigins = splitCSV(getEnv("ALLOWED_ORIGINS", "*"))
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = defaultMaxFileBytes
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func splitCSV(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
