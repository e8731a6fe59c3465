// Package config loads the visionary configuration from YAML, environment
// variables and defaults.
package config

import (
	"fmt"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/japaniel/visionary/pkg/vision"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Tagger   TaggerConfig   `mapstructure:"tagger"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
}

type ServerConfig struct {
	Addr        string `mapstructure:"addr" validate:"required"`
	ReleaseMode bool   `mapstructure:"release_mode"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type TaggerConfig struct {
	Language string `mapstructure:"language" validate:"oneof=en ja"`
}

type EngineConfig struct {
	AlwaysIncludeThemes []string `mapstructure:"always_include_themes" validate:"dive,theme"`
	MaxReferences       int      `mapstructure:"max_references" validate:"min=1,max=20"`
	ReferencesPerTheme  int      `mapstructure:"references_per_theme" validate:"min=1,max=4"`
	MinPoints           int      `mapstructure:"min_points" validate:"min=1,max=10"`
}

// Options converts the engine section into engine options.
func (c EngineConfig) Options() (vision.Options, error) {
	opts := vision.Options{
		MaxReferences:      c.MaxReferences,
		ReferencesPerTheme: c.ReferencesPerTheme,
		MinPoints:          c.MinPoints,
	}
	for _, name := range c.AlwaysIncludeThemes {
		t, err := vision.ParseTheme(name)
		if err != nil {
			return vision.Options{}, err
		}
		opts.AlwaysIncludeThemes = append(opts.AlwaysIncludeThemes, t)
	}
	return opts, nil
}

type IngestConfig struct {
	Workers         int `mapstructure:"workers" validate:"min=1,max=64"`
	BatchSize       int `mapstructure:"batch_size" validate:"min=1"`
	FlushIntervalMS int `mapstructure:"flush_interval_ms" validate:"min=1"`
}

// FlushInterval returns the batch writer flush interval.
func (c IngestConfig) FlushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMS) * time.Millisecond
}

type FetchConfig struct {
	TimeoutSeconds int   `mapstructure:"timeout_seconds" validate:"min=1"`
	MaxBodyBytes   int64 `mapstructure:"max_body_bytes" validate:"min=1024"`
	RetryAttempts  uint  `mapstructure:"retry_attempts" validate:"min=1,max=10"`
}

// Timeout returns the per-request fetch timeout.
func (c FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/visionary")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.addr", ":5001")
	v.SetDefault("server.release_mode", false)
	v.SetDefault("database.path", "visions.db")
	v.SetDefault("tagger.language", "en")
	v.SetDefault("engine.max_references", vision.DefaultMaxReferences)
	v.SetDefault("engine.references_per_theme", vision.DefaultReferencesPerTheme)
	v.SetDefault("engine.min_points", vision.DefaultMinPoints)
	v.SetDefault("ingest.workers", 4)
	v.SetDefault("ingest.batch_size", 50)
	v.SetDefault("ingest.flush_interval_ms", 100)
	v.SetDefault("fetch.timeout_seconds", 30)
	v.SetDefault("fetch.max_body_bytes", 10<<20)
	v.SetDefault("fetch.retry_attempts", 3)

	if err := v.BindEnv("database.path", "VISIONARY_DB"); err != nil {
		return nil, fmt.Errorf("failed to bind VISIONARY_DB environment variable: %w", err)
	}
	if err := v.BindEnv("server.addr", "VISIONARY_ADDR"); err != nil {
		return nil, fmt.Errorf("failed to bind VISIONARY_ADDR environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, translate(err, loader.translator)
	}

	return &cfg, nil
}

// Load is NewConfigLoader(configFile) followed by Load.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
