package cli

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dashbridge/pkg/errors"
	"github.com/matzehuels/dashbridge/pkg/pipeline"
)

// Cache backends selectable in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Environment variables that override the config file.
const (
	envCacheBackend = "DASHBRIDGE_CACHE_BACKEND"
	envRedisURL     = "DASHBRIDGE_REDIS_URL"
)

// Config is the CLI configuration file:
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "72h"
//
//	[envelope]
//	id_prefix = "ops_"
//
//	[validate]
//	strict = true
type Config struct {
	Cache      CacheConfig    `toml:"cache"`
	Envelope   EnvelopeConfig `toml:"envelope"`
	Validation ValidateConfig `toml:"validate"`
}

// CacheConfig selects and configures the conversion cache.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
}

// EnvelopeConfig controls envelope ids derived from file names.
type EnvelopeConfig struct {
	IDPrefix string `toml:"id_prefix"`
}

// ValidateConfig sets validation defaults.
type ValidateConfig struct {
	Strict bool `toml:"strict"`
}

// Duration is a time.Duration written as a Go duration string ("72h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{pipeline.DefaultTTL},
		},
	}
}

// LoadConfig reads a TOML config file on top of [DefaultConfig]. Unknown
// keys are rejected so that typos do not pass silently.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config not found: %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ApplyEnv overrides cache settings from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(envCacheBackend); ok && v != "" {
		c.Cache.Backend = v
	}
	if v, ok := lookup(envRedisURL); ok && v != "" {
		c.Cache.RedisURL = v
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_url")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}
	if p := c.Envelope.IDPrefix; p != "" {
		if err := errors.ValidateEnvelopeID(p); err != nil {
			return err
		}
	}
	return nil
}
