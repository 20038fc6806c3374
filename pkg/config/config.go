// Package config loads bleprint settings from a TOML file.
//
// The file is looked up in this order:
//
//  1. the path passed to [Load] (the --config flag)
//  2. $BLEPRINT_CONFIG
//  3. $XDG_CONFIG_HOME/bleprint/config.toml
//  4. ~/.config/bleprint/config.toml
//
// A missing file at one of the implicit locations is not an error; every
// field has a default. Command-line flags override file values.
//
// Example:
//
//	log_level = "debug"
//
//	[parse]
//	identity  = "windowed"
//	window    = 3
//	pin_reuse = "type"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "postgres"
//	postgres_url = "postgres://localhost/bleprint"
//
//	[server]
//	addr = ":8080"
//	request_timeout = "30s"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/pipeline"
)

// EnvVar names the environment variable holding a config path.
const EnvVar = "BLEPRINT_CONFIG"

const appName = "bleprint"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Config is the full settings tree.
type Config struct {
	LogLevel string           `toml:"log_level"`
	Parse    pipeline.Options `toml:"parse"`
	Cache    Cache            `toml:"cache"`
	Store    Store            `toml:"store"`
	Server   Server           `toml:"server"`
}

// Cache selects where parse and render results are kept.
type Cache struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"` // file backend; empty means the XDG cache dir
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"` // key namespace
}

// Store selects where saved graphs live.
type Store struct {
	Backend         string `toml:"backend"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	PostgresURL     string `toml:"postgres_url"`
}

// Server configures `bleprint serve`.
type Server struct {
	Addr           string        `toml:"addr"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	MaxBodyBytes   int64         `toml:"max_body_bytes"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		Parse: pipeline.Options{
			Identity: pipeline.DefaultIdentity,
			PinReuse: pipeline.DefaultPinReuse,
		},
		Cache: Cache{Backend: CacheFile},
		Store: Store{Backend: StoreMemory},
		Server: Server{
			Addr:           ":8080",
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   errors.MaxTextSize,
		},
	}
}

// Path resolves the config file location. explicit reports whether the
// path was requested rather than implied.
func Path(flag string) (path string, explicit bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, true
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", appName, "config.toml"), false
}

// Load reads the config file chosen by [Path] on top of [Default].
func Load(flag string) (Config, error) {
	cfg := Default()
	path, explicit := Path(flag)
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
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
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate rejects unknown enum values.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid log_level %q", c.LogLevel)
	}
	if err := c.Parse.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_addr")
	}
	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store backend mongo requires mongo_uri")
		}
	case StorePostgres:
		if c.Store.PostgresURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store backend postgres requires postgres_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid store backend %q (must be one of: memory, mongo, postgres)", c.Store.Backend)
	}
	if c.Server.RequestTimeout < 0 || c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server limits must not be negative")
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
