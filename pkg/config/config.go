// Package config loads wordcloud settings from a TOML file.
//
// The default location follows the XDG base directory layout:
//
//	$XDG_CONFIG_HOME/wordcloud/config.toml   (~/.config/wordcloud/config.toml)
//
// A missing file is not an error; every field has a default. Example:
//
//	[canvas]
//	width = 1200
//	height = 800
//	rotation = "none"
//
//	[words]
//	max_weight = 12
//
//	[storage]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[render]
//	fps = 30
package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/kv"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/weights"
)

const (
	appName  = "wordcloud"
	fileName = "config.toml"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Defaults for the server and render loop.
const (
	DefaultAddr = ":8080"
	DefaultFPS  = 30
	MaxFPS      = 120
)

// Config is the full settings file.
type Config struct {
	Canvas  Canvas  `toml:"canvas"`
	Words   Words   `toml:"words"`
	Storage Storage `toml:"storage"`
	Server  Server  `toml:"server"`
	Render  Render  `toml:"render"`
}

// Canvas holds layout settings.
type Canvas struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	FontFamily string  `toml:"font_family"`
	Padding    float64 `toml:"padding"`
	MaxSteps   int     `toml:"max_steps"`
	Rotation   string  `toml:"rotation"`
	Seed       uint64  `toml:"seed"`
}

// Words holds weight store and command settings.
type Words struct {
	MaxWeight     int    `toml:"max_weight"`
	ResetBaseline int    `toml:"reset_baseline"`
	PrimaryKey    string `toml:"primary_key"`
	FallbackKey   string `toml:"fallback_key"`
}

// Storage selects and configures the durable backend.
type Storage struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	RedisPrefix     string `toml:"redis_prefix"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Server holds HTTP settings.
type Server struct {
	Addr string `toml:"addr"`
}

// Render holds render loop settings.
type Render struct {
	FPS       int     `toml:"fps"`
	GlowScale float64 `toml:"glow_scale"`
	Theme     string  `toml:"theme"` // fill color, #rrggbb
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// Path returns the default config file path.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// DataDir returns the default directory for the file backend.
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// Load reads path, or the default path when path is empty. A missing file
// yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	c := &Config{}
	if _, err := toml.DecodeFile(path, c); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse decodes TOML from data.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Encode returns c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// SetDefaults fills zero fields.
func (c *Config) SetDefaults() {
	if c.Canvas.Width == 0 {
		c.Canvas.Width = layout.DefaultWidth
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = layout.DefaultHeight
	}
	if c.Canvas.FontFamily == "" {
		c.Canvas.FontFamily = layout.DefaultFontFamily
	}
	if c.Canvas.MaxSteps == 0 {
		c.Canvas.MaxSteps = layout.DefaultMaxSteps
	}
	if c.Canvas.Rotation == "" {
		c.Canvas.Rotation = layout.RotateRandom.String()
	}
	if c.Words.MaxWeight == 0 {
		c.Words.MaxWeight = cloud.DefaultMaxWeight
	}
	if c.Words.PrimaryKey == "" {
		c.Words.PrimaryKey = weights.DefaultPrimaryKey
	}
	if c.Words.FallbackKey == "" {
		c.Words.FallbackKey = weights.DefaultFallbackKey
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.RedisAddr == "" {
		c.Storage.RedisAddr = "localhost:6379"
	}
	if c.Storage.RedisPrefix == "" {
		c.Storage.RedisPrefix = appName + ":"
	}
	if c.Storage.MongoURI == "" {
		c.Storage.MongoURI = "mongodb://localhost:27017"
	}
	if c.Storage.MongoDatabase == "" {
		c.Storage.MongoDatabase = appName
	}
	if c.Storage.MongoCollection == "" {
		c.Storage.MongoCollection = "kv"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Render.FPS == 0 {
		c.Render.FPS = DefaultFPS
	}
	if c.Render.GlowScale == 0 {
		c.Render.GlowScale = render.DefaultGlowScale
	}
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if err := errors.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[canvas]")
	}
	if _, err := layout.ParseRotation(c.Canvas.Rotation); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[canvas] rotation")
	}
	if c.Canvas.MaxSteps < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[canvas] max_steps must be positive")
	}
	if c.Words.MaxWeight < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "[words] max_weight must be at least 1")
	}
	if c.Words.ResetBaseline < 0 || c.Words.ResetBaseline > c.Words.MaxWeight {
		return errors.New(errors.ErrCodeInvalidConfig, "[words] reset_baseline must be between 0 and max_weight")
	}
	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "[storage] unknown backend %q", c.Storage.Backend)
	}
	if c.Render.FPS < 1 || c.Render.FPS > MaxFPS {
		return errors.New(errors.ErrCodeInvalidConfig, "[render] fps must be between 1 and %d", MaxFPS)
	}
	if c.Render.GlowScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[render] glow_scale must not be negative")
	}
	if c.Render.Theme != "" {
		if _, err := render.ParseHexColor(c.Render.Theme); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[render] theme")
		}
	}
	return nil
}

// =============================================================================
// Conversions
// =============================================================================

// LayoutOptions converts [canvas] to engine options.
func (c *Config) LayoutOptions() layout.Options {
	rot, _ := layout.ParseRotation(c.Canvas.Rotation)
	return layout.Options{
		Width:      c.Canvas.Width,
		Height:     c.Canvas.Height,
		FontFamily: c.Canvas.FontFamily,
		Padding:    c.Canvas.Padding,
		MaxSteps:   c.Canvas.MaxSteps,
		Rotation:   rot,
		Seed:       c.Canvas.Seed,
	}
}

// WeightOptions converts [words] to weight store options.
func (c *Config) WeightOptions() weights.Options {
	return weights.Options{PrimaryKey: c.Words.PrimaryKey, FallbackKey: c.Words.FallbackKey}
}

// CloudOptions converts [words] to command options.
func (c *Config) CloudOptions() cloud.Options {
	return cloud.Options{MaxWeight: c.Words.MaxWeight, ResetBaseline: c.Words.ResetBaseline}
}

// Theme returns the render theme, applying the configured fill color.
func (c *Config) Theme() render.Theme {
	theme := render.DefaultTheme
	if fill, err := render.ParseHexColor(c.Render.Theme); err == nil && c.Render.Theme != "" {
		theme.Fill = fill
	}
	return theme
}

// OpenStore connects the configured backend.
func (c *Config) OpenStore(ctx context.Context) (kv.Store, error) {
	switch c.Storage.Backend {
	case BackendMemory:
		return kv.NewMemoryStore(), nil
	case BackendNone:
		return kv.NewNullStore(), nil
	case BackendRedis:
		return kv.NewRedisStore(ctx, kv.RedisConfig{
			Addr:     c.Storage.RedisAddr,
			Password: c.Storage.RedisPassword,
			DB:       c.Storage.RedisDB,
			Prefix:   c.Storage.RedisPrefix,
		})
	case BackendMongo:
		return kv.NewMongoStore(ctx, kv.MongoConfig{
			URI:        c.Storage.MongoURI,
			Database:   c.Storage.MongoDatabase,
			Collection: c.Storage.MongoCollection,
		})
	default:
		dir := c.Storage.Dir
		if dir == "" {
			d, err := DataDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve data dir")
			}
			dir = d
		}
		return kv.NewFileStore(dir)
	}
}
