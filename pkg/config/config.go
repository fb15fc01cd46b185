// Package config loads tileboard settings from a TOML file.
//
// A missing file is not an error: [Load] returns [Default] in that case.
// Values present in the file override the defaults field by field:
//
//	[images]
//	url = "http://localhost:8080/api/images"
//	cache_ttl = "1h"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[canvas]
//	cell_width = 8
//	cell_height = 16
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tileboard/pkg/errors"
)

// DefaultImagesURL is the image-list provider used when none is configured.
const DefaultImagesURL = "https://jsonplaceholder.typicode.com/photos"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration.
type Config struct {
	Images ImagesConfig `toml:"images"`
	Cache  CacheConfig  `toml:"cache"`
	Canvas CanvasConfig `toml:"canvas"`
	Serve  ServeConfig  `toml:"serve"`
}

// ImagesConfig configures the image-list provider.
type ImagesConfig struct {
	URL      string   `toml:"url"`
	Timeout  Duration `toml:"timeout"`
	CacheTTL Duration `toml:"cache_ttl"`
}

// CacheConfig selects and configures the response cache.
type CacheConfig struct {
	Backend     string `toml:"backend"`
	Dir         string `toml:"dir,omitempty"`
	RedisAddr   string `toml:"redis_addr"`
	RedisDB     int    `toml:"redis_db"`
	RedisPrefix string `toml:"redis_prefix"`
}

// CanvasConfig maps terminal cells to canvas units and sizes the headless
// board.
type CanvasConfig struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	HandleSize int     `toml:"handle_size"`
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
}

// ServeConfig configures the HTTP control surface.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "10s" in TOML.
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
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Images: ImagesConfig{
			URL:      DefaultImagesURL,
			Timeout:  Duration{10 * time.Second},
			CacheTTL: Duration{24 * time.Hour},
		},
		Cache: CacheConfig{
			Backend:     BackendFile,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "tileboard:",
		},
		Canvas: CanvasConfig{
			CellWidth:  10,
			CellHeight: 20,
			HandleSize: 1,
			Width:      800,
			Height:     600,
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Load reads path on top of [Default] and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.Images.URL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "images.url")
	}
	if c.Images.Timeout.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "images.timeout must be positive")
	}
	if c.Images.CacheTTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "images.cache_ttl cannot be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Canvas.CellWidth <= 0 || c.Canvas.CellHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas cell size must be positive")
	}
	if c.Canvas.HandleSize < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas.handle_size must be at least 1")
	}
	if err := errors.ValidateSize(c.Canvas.Width, c.Canvas.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "canvas size")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultPath returns $XDG_CONFIG_HOME/<app>/config.toml, falling back to
// ~/.config/<app>/config.toml.
func DefaultPath(app string) (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, app, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", app, "config.toml"), nil
}
