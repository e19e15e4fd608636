package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/lennoxho/img-sort/pkg/pipeline"
)

// Cache backends selectable in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the optional imgsort.toml configuration. Every field has a
// sensible zero value, so a missing file (the common case) behaves like an
// empty one. Command-line flags always win over config values.
type Config struct {
	Metric     string   `toml:"metric"`
	Workers    int      `toml:"workers"`
	Bins       int      `toml:"bins"`
	Resize     int      `toml:"resize"`
	Extensions []string `toml:"extensions"`
	LinkMode   string   `toml:"link_mode"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the descriptor cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`   // file (default), redis, none
	RedisURL string `toml:"redis_url"` // e.g. redis://localhost:6379/0
	TTL      string `toml:"ttl"`       // Go duration, e.g. "720h"
}

// loadConfig reads the config file at path, or the default location
// (~/.config/imgsort/imgsort.toml) when path is empty. A missing default
// file yields a zero Config; a missing explicit path is an error.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, appName+".toml")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Cache.Backend != "" && cfg.Cache.Backend != CacheBackendFile &&
		cfg.Cache.Backend != CacheBackendRedis && cfg.Cache.Backend != CacheBackendNone {
		return cfg, fmt.Errorf("invalid cache backend %q (must be file, redis, or none)", cfg.Cache.Backend)
	}
	if cfg.Cache.Backend == CacheBackendRedis && cfg.Cache.RedisURL == "" {
		return cfg, fmt.Errorf("cache backend redis requires redis_url")
	}
	return cfg, nil
}

// applyConfig copies config values into opts for every option whose flag was
// not set on the command line.
func applyConfig(cmd *cobra.Command, cfg Config, opts *pipeline.Options) error {
	flags := cmd.Flags()

	if cfg.Metric != "" && !flags.Changed("metric") {
		opts.Metric = cfg.Metric
	}
	if cfg.Workers > 0 && !flags.Changed("workers") {
		opts.Workers = cfg.Workers
	}
	if cfg.Bins > 0 && !flags.Changed("bins") {
		opts.Bins = cfg.Bins
	}
	if cfg.Resize > 0 && !flags.Changed("resize") {
		opts.Resize = cfg.Resize
	}
	if len(cfg.Extensions) > 0 && !flags.Changed("ext") {
		opts.Extensions = cfg.Extensions
	}
	if cfg.LinkMode != "" && flags.Lookup("link") != nil && !flags.Changed("link") {
		opts.LinkMode = cfg.LinkMode
	}
	if cfg.Cache.TTL != "" {
		ttl, err := time.ParseDuration(cfg.Cache.TTL)
		if err != nil {
			return fmt.Errorf("invalid cache ttl %q: %w", cfg.Cache.TTL, err)
		}
		opts.CacheTTL = ttl
	}
	return nil
}
