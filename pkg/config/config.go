// Package config loads podoc settings from a TOML file.
//
// Settings are looked up in this order: the path given with --config, then
// ./podoc.toml, then ~/.config/podoc/podoc.toml. Missing files fall back to
// [Default]; PODOC_* environment variables override file values.
//
//	[render]
//	locale = "en"
//	currency = "USD"
//	time_zone = "Asia/Singapore"
//
//	[assets]
//	dir = "./assets"
//	base_url = "https://cdn.example.com/logos/"
//
//	[server]
//	addr = ":8080"
//
//	[redis]
//	addr = "localhost:6379"
//	ttl = "24h"
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//	database = "procurement"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/format"
)

// FileName is the configuration file name looked up in the working and
// user config directories.
const FileName = "podoc.toml"

// Config is the complete podoc configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Assets AssetConfig  `toml:"assets"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// RenderConfig selects how amounts, dates and labels are printed.
type RenderConfig struct {
	Locale   string   `toml:"locale"`
	Currency string   `toml:"currency"`
	TimeZone string   `toml:"time_zone"`
	Terms    []string `toml:"terms"` // replaces the locale's default terms
}

// AssetConfig locates issuer logos. Local files are tried before BaseURL.
type AssetConfig struct {
	Dir     string `toml:"dir"`
	BaseURL string `toml:"base_url"`
}

// CacheConfig configures the CLI file cache.
type CacheConfig struct {
	Dir      string `toml:"dir"` // empty: ~/.cache/podoc
	Disabled bool   `toml:"disabled"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// RedisConfig configures the server's shared PDF cache. An empty Addr
// disables Redis and the server caches nothing.
type RedisConfig struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// MongoConfig configures order lookups for GET requests. An empty URI
// disables lookups.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Duration is a time.Duration written as a string ("30s", "24h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
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
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills every empty field with its default.
func (c *Config) SetDefaults() {
	if c.Render.Locale == "" {
		c.Render.Locale = string(format.DefaultLocale)
	}
	if c.Render.Currency == "" {
		c.Render.Currency = format.DefaultCurrency
	}
	if c.Render.TimeZone == "" {
		c.Render.TimeZone = format.DefaultTimeZone
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 15 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 60 * time.Second
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "podoc:"
	}
	if c.Redis.TTL.Duration == 0 {
		c.Redis.TTL.Duration = 24 * time.Hour
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "procurement"
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "purchase_orders"
	}
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	loc, err := format.ParseLocale(c.Render.Locale)
	if err != nil {
		return err
	}
	if _, err := format.New(format.Options{Locale: loc, Currency: c.Render.Currency, TimeZone: c.Render.TimeZone}); err != nil {
		return err
	}
	if c.Assets.BaseURL != "" {
		if err := errors.ValidateURL(c.Assets.BaseURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "assets.base_url")
		}
	}
	if c.Redis.DB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "redis.db must not be negative")
	}
	if c.Redis.TTL.Duration < 0 || c.Server.ReadTimeout.Duration < 0 || c.Server.WriteTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations must not be negative")
	}
	return nil
}

// Load reads the configuration at path, or searches the default locations
// when path is empty. Environment overrides are applied, then defaults,
// then the result is validated.
//
// An explicit path that does not exist is an error; a missing default file
// is not. Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (*Config, error) {
	c := &Config{}
	if path == "" {
		path = find()
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	if path != "" {
		md, err := toml.DecodeFile(path, c)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, keys[0].String())
		}
		c.Path = path
	}

	c.ApplyEnv(os.Getenv)
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyEnv overrides settings from PODOC_* variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Render.Locale, "PODOC_LOCALE")
	set(&c.Render.Currency, "PODOC_CURRENCY")
	set(&c.Render.TimeZone, "PODOC_TIME_ZONE")
	set(&c.Assets.Dir, "PODOC_ASSET_DIR")
	set(&c.Assets.BaseURL, "PODOC_ASSET_BASE_URL")
	set(&c.Server.Addr, "PODOC_ADDR")
	set(&c.Redis.Addr, "PODOC_REDIS_ADDR")
	set(&c.Redis.Password, "PODOC_REDIS_PASSWORD")
	set(&c.Mongo.URI, "PODOC_MONGO_URI")
	if v := getenv("PODOC_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
}

// UserPath returns ~/.config/podoc/podoc.toml.
func UserPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "podoc", FileName), nil
}

func find() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if p, err := UserPath(); err == nil {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
