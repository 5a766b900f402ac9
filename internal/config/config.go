// Package config loads squiggle configuration.
//
// Values are resolved in three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, by default $XDG_CONFIG_HOME/squiggle/config.toml
//  3. SQUIGGLE_* environment variables, optionally seeded from a .env file
//
// A missing config file is not an error; a malformed one is.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/squiggle/pkg/cache"
	"github.com/matzehuels/squiggle/pkg/errors"
)

const appName = "squiggle"

// Backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the full configuration tree.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Store  StoreConfig  `toml:"store"`
	Mongo  MongoConfig  `toml:"mongo"`
	NATS   NATSConfig   `toml:"nats"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

type CacheConfig struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type StoreConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type MongoConfig struct {
	URI        string   `toml:"uri"`
	Database   string   `toml:"database"`
	Collection string   `toml:"collection"`
	Timeout    Duration `toml:"timeout"`
}

type NATSConfig struct {
	URL     string   `toml:"url"`
	Subject string   `toml:"subject"`
	Queue   string   `toml:"queue"`
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{10 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Dir:     xdgDir("XDG_CACHE_HOME", ".cache"),
			TTL:     Duration{cache.TTLArtifact},
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: appName + ":",
		},
		Store: StoreConfig{
			Backend: StoreFile,
			Path:    filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "tokens.json"),
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "squiggle",
			Collection: "tokens",
			Timeout:    Duration{10 * time.Second},
		},
		NATS: NATSConfig{
			URL:     "nats://127.0.0.1:4222",
			Subject: appName,
			Queue:   appName + "-workers",
			Timeout: Duration{5 * time.Second},
		},
	}
}

// DefaultPath returns the config file location, following the XDG standard
// (~/.config/squiggle/config.toml).
func DefaultPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "config.toml")
}

// Load reads the file at path (DefaultPath if empty) over the defaults and
// applies environment overrides. A .env file in the working directory is
// loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil && (!os.IsNotExist(err) || explicit) {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if err == nil {
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend names and required fields.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreMemory, StoreFile, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "store.backend must be memory, file or mongo, got %q", c.Store.Backend)
	}
	if c.Cache.Backend == CacheFile && c.Cache.Dir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
	}
	if c.Store.Backend == StoreFile && c.Store.Path == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store.path is required for the file backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// Encode writes c as TOML, used by `squiggle config show`.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Config) applyEnv() error {
	setString(&c.Log.Level, "SQUIGGLE_LOG_LEVEL")
	setString(&c.Server.Addr, "SQUIGGLE_SERVER_ADDR")
	setString(&c.Cache.Backend, "SQUIGGLE_CACHE_BACKEND")
	setString(&c.Cache.Dir, "SQUIGGLE_CACHE_DIR")
	setString(&c.Redis.Addr, "SQUIGGLE_REDIS_ADDR")
	setString(&c.Redis.Password, "SQUIGGLE_REDIS_PASSWORD")
	setString(&c.Store.Backend, "SQUIGGLE_STORE_BACKEND")
	setString(&c.Store.Path, "SQUIGGLE_STORE_PATH")
	setString(&c.Mongo.URI, "SQUIGGLE_MONGO_URI")
	setString(&c.NATS.URL, "SQUIGGLE_NATS_URL")

	if v := os.Getenv("SQUIGGLE_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "SQUIGGLE_REDIS_DB")
		}
		c.Redis.DB = db
	}
	if v := os.Getenv("SQUIGGLE_CACHE_TTL"); v != "" {
		if err := c.Cache.TTL.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "SQUIGGLE_CACHE_TTL")
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// xdgDir returns $env/squiggle, falling back to ~/<fallback>/squiggle.
func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback, appName)
}
