// Package config loads planforge settings.
//
// Settings are layered, later sources winning:
//
//  1. [Default]
//  2. A TOML file, by default $XDG_CONFIG_HOME/planforge/config.toml
//  3. Environment variables prefixed PLANFORGE_ (e.g. PLANFORGE_COUNTRY,
//     PLANFORGE_CACHE_BACKEND, PLANFORGE_SERVER_ADDR)
//  4. Command-line flags, applied by the CLI
//
// A missing default file is not an error; a missing explicit file is.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	perrors "github.com/matzehuels/planforge/pkg/errors"
	"github.com/matzehuels/planforge/pkg/generate"
	"github.com/matzehuels/planforge/pkg/pipeline"
	"github.com/matzehuels/planforge/pkg/render/plan"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "PLANFORGE"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds all application configuration.
type Config struct {
	Country      string   `toml:"country" split_words:"true"`
	BuildingType string   `toml:"building_type" split_words:"true"`
	Formats      []string `toml:"formats"`
	Scale        float64  `toml:"scale"`
	OffsetX      float64  `toml:"offset_x" split_words:"true"`
	OffsetY      float64  `toml:"offset_y" split_words:"true"`
	Minimums     string   `toml:"minimums"`
	Output       string   `toml:"output"`

	Cache      CacheConfig      `toml:"cache"`
	Server     ServerConfig     `toml:"server"`
	Generation GenerationConfig `toml:"generation"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"` // file backend; empty uses the XDG cache dir
	RedisAddr string        `toml:"redis_addr" split_words:"true"`
	TTL       time.Duration `toml:"ttl"` // artifact TTL; zero keeps the default
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// GenerationConfig holds generation stub configuration.
type GenerationConfig struct {
	Delay time.Duration `toml:"delay"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Country:      pipeline.DefaultCountry,
		BuildingType: string(pipeline.DefaultBuildingType),
		Formats:      []string{pipeline.FormatPNG},
		Scale:        plan.DefaultScale,
		Minimums:     pipeline.MinimumsFlat,
		Output:       "",
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Generation: GenerationConfig{
			Delay: generate.DefaultDelay,
		},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, "planforge", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "planforge", "config.toml"), nil
}

// Load builds a Config from the defaults, the TOML file at path (or the
// default path when empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if err := perrors.ValidateCountry(c.Country); err != nil {
		return err
	}
	if err := perrors.ValidateBuildingType(c.BuildingType); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if err := perrors.ValidateScale(c.Scale, plan.MinScale, plan.MaxScale); err != nil {
		return err
	}
	if c.Minimums != pipeline.MinimumsFlat && c.Minimums != pipeline.MinimumsCountry {
		return perrors.New(perrors.ErrCodeInvalidInput, "invalid minimums: %q (must be one of: flat, country)", c.Minimums)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return perrors.New(perrors.ErrCodeInvalidInput, "invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 || c.Generation.Delay < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "durations cannot be negative")
	}
	return nil
}

// Options returns pipeline options seeded from the configuration.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		BuildingType: c.BuildingType,
		Country:      c.Country,
		Formats:      append([]string(nil), c.Formats...),
		Scale:        c.Scale,
		OffsetX:      c.OffsetX,
		OffsetY:      c.OffsetY,
		Minimums:     c.Minimums,
	}
}
