// Package config loads procview settings from a TOML file and PROCVIEW_*
// environment variables.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults ([Default])
//  2. the first config file found: --config, ./procview.toml,
//     $XDG_CONFIG_HOME/procview/procview.toml
//  3. environment variables: PROCVIEW_ followed by the key path with dots
//     turned into underscores (PROCVIEW_STORE_REDIS_ADDR, PROCVIEW_CACHE_REDIS_ADDR),
//     plus the short names listed in env.go
//
// The layers are merged with koanf. Values that do not decode into their
// setting are reported as INVALID_CONFIG.
//
// Example file:
//
//	[server]
//	addr = ":9090"
//
//	[store]
//	backend = "redis"
//	[store.redis]
//	addr = "localhost:6379"
//	ttl = "720h"
//
//	[history]
//	limit = 200
//	blacklist = ["MOVE_VIEWPORT"]
//
//	[definitions]
//	base_url = "https://defs.example.com"
//	processing_type = "orders"
//	cache_ttl = "30m"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/matzehuels/procview/pkg/document"
	perrors "github.com/matzehuels/procview/pkg/errors"
	"github.com/matzehuels/procview/pkg/store"
	"github.com/matzehuels/procview/pkg/undo"
)

// FileName is the config file name searched for.
const FileName = "procview.toml"

// Config is the full procview configuration.
type Config struct {
	Server      Server      `toml:"server"`
	Store       Store       `toml:"store"`
	History     History     `toml:"history"`
	Definitions Definitions `toml:"definitions"`
	Cache       Cache       `toml:"cache"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type Server struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

type Store struct {
	Backend string `toml:"backend"` // memory, file, redis or mongo
	Dir     string `toml:"dir"`
	Redis   Redis  `toml:"redis"`
	Mongo   Mongo  `toml:"mongo"`
}

type Redis struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	TTL      Duration `toml:"ttl"`
}

type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// History configures the undo history of every editor.
type History struct {
	Limit     int      `toml:"limit"`
	Blacklist []string `toml:"blacklist"`
}

// Definitions points at the process-definition service.
type Definitions struct {
	BaseURL        string            `toml:"base_url"`
	ProcessingType string            `toml:"processing_type"`
	CatalogFile    string            `toml:"catalog_file"`
	CacheTTL       Duration          `toml:"cache_ttl"`
	Timeout        Duration          `toml:"timeout"`
	Headers        map[string]string `toml:"headers"`
}

// Cache configures the catalog cache.
type Cache struct {
	Backend   string `toml:"backend"` // file, redis or none
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Duration is a time.Duration written as a string ("90s", "1h").
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
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Store: Store{
			Backend: store.BackendFile,
			Mongo: Mongo{
				Database:   store.DefaultMongoDatabase,
				Collection: store.DefaultMongoCollection,
			},
		},
		History: History{
			Blacklist: slices.Clone(document.DefaultBlacklist),
		},
		Definitions: Definitions{
			CacheTTL: Duration{time.Hour},
			Timeout:  Duration{10 * time.Second},
		},
		Cache: Cache{Backend: "file"},
	}
}

// Load reads the configuration. An explicit path must exist; otherwise the
// search locations are tried and a missing file means defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults, err := toMap(Default())
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "encode defaults")
	}
	if err := k.Load(confmap.Provider(defaults, ""), nil); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "load defaults")
	}

	if path == "" {
		path = find()
	} else if _, err := os.Stat(path); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if path != "" {
		values, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(values, ""), nil); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "load %s", path)
		}
	}

	if err := k.Load(envProvider(k.Keys()), nil); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read environment")
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals the merged layers using the toml struct tags.
func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "toml",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	})
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "invalid setting")
	}
	return &cfg, nil
}

// toMap turns a Config into the nested map koanf merges, going through
// TOML so that the keys match the file format.
func toMap(c *Config) (map[string]any, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	m := map[string]any{}
	if _, err := toml.Decode(buf.String(), &m); err != nil {
		return nil, err
	}
	return m, nil
}

func find() string {
	candidates := []string{FileName}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, FileName))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "procview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "procview"), nil
}

// readFile checks the file strictly against Config, rejecting unknown keys
// and values of the wrong type, and returns its contents as a map.
func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	var check Config
	md, err := toml.Decode(string(data), &check)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, perrors.New(perrors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	values := map[string]any{}
	if _, err := toml.Decode(string(data), &values); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return values, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case store.BackendMemory, store.BackendFile:
	case store.BackendRedis:
		if c.Store.Redis.Addr == "" {
			return perrors.New(perrors.ErrCodeInvalidConfig, "store.redis.addr is required for the redis backend")
		}
	case store.BackendMongo:
		if c.Store.Mongo.URI == "" {
			return perrors.New(perrors.ErrCodeInvalidConfig, "store.mongo.uri is required for the mongo backend")
		}
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case "file", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return perrors.New(perrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis cache")
		}
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	if c.History.Limit < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "history.limit must not be negative")
	}
	for _, t := range c.History.Blacklist {
		if undo.IsReserved(t) {
			return perrors.New(perrors.ErrCodeInvalidConfig, "history.blacklist cannot contain %s", t)
		}
	}

	if c.Definitions.BaseURL != "" {
		if err := perrors.ValidateURL(c.Definitions.BaseURL); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "definitions.base_url")
		}
	}
	if c.Definitions.CacheTTL.Duration < 0 || c.Definitions.Timeout.Duration < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "definitions durations must not be negative")
	}
	return nil
}

// StoreConfig converts the store section for [store.Open].
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend:         c.Store.Backend,
		Dir:             c.Store.Dir,
		RedisAddr:       c.Store.Redis.Addr,
		RedisPassword:   c.Store.Redis.Password,
		RedisDB:         c.Store.Redis.DB,
		RedisTTL:        c.Store.Redis.TTL.Duration,
		MongoURI:        c.Store.Mongo.URI,
		MongoDatabase:   c.Store.Mongo.Database,
		MongoCollection: c.Store.Mongo.Collection,
	}
}

// EditorOptions returns the history settings as editor options.
func (c *Config) EditorOptions() document.Options {
	bl := c.History.Blacklist
	if bl == nil {
		bl = []string{}
	}
	return document.Options{Blacklist: bl, Limit: c.History.Limit}
}

// CacheDir returns the catalog cache directory, defaulting to
// $XDG_CACHE_HOME/procview.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "procview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "procview"), nil
}
