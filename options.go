package rx

import (
	log "github.com/sirupsen/logrus"

	"github.com/coregx/rx/charindex"
	"github.com/coregx/rx/engine"
)

// Config controls how patterns are compiled and how results are measured.
//
// Example:
//
//	cfg := rx.DefaultConfig()
//	cfg.Engine = engine.Stdlib
//	re, err := rx.Compile(`\w+`, rx.WithConfig(cfg))
type Config struct {
	// Flags passed to the engine.
	// Default: engine.IgnoreCase
	Flags engine.Flags

	// Engine compiling the pattern.
	// Default: engine.Auto
	Engine engine.Kind

	// Granularity of the logical characters ranges are measured in.
	// Default: charindex.Graphemes
	Granularity charindex.Granularity

	// Logger receives compile diagnostics.
	// Default: the logrus standard logger with module=rx
	Logger *log.Entry
}

// DefaultConfig returns the default configuration: case-insensitive, engine
// chosen automatically, grapheme-cluster ranges.
func DefaultConfig() Config {
	return Config{
		Flags:       engine.IgnoreCase,
		Engine:      engine.Auto,
		Granularity: charindex.Graphemes,
		Logger:      log.WithField("module", "rx"),
	}
}

// CaseSensitive reports whether the configuration matches letters
// case-sensitively.
func (c Config) CaseSensitive() bool {
	return c.Flags&engine.IgnoreCase == 0
}

// Option customizes a Config.
type Option func(*Config)

func newConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultConfig().Logger
	}
	return cfg
}

// WithConfig replaces the whole configuration. Options after it still apply.
func WithConfig(c Config) Option {
	return func(cfg *Config) {
		*cfg = c
	}
}

// WithCaseSensitive selects case-sensitive (true) or case-insensitive
// (false) matching, leaving the other flags untouched.
func WithCaseSensitive(sensitive bool) Option {
	return func(cfg *Config) {
		if sensitive {
			cfg.Flags &^= engine.IgnoreCase
		} else {
			cfg.Flags |= engine.IgnoreCase
		}
	}
}

// WithFlags replaces the engine flags, including case sensitivity.
func WithFlags(flags engine.Flags) Option {
	return func(cfg *Config) {
		cfg.Flags = flags
	}
}

// WithEngine selects the engine.
func WithEngine(kind engine.Kind) Option {
	return func(cfg *Config) {
		cfg.Engine = kind
	}
}

// WithGranularity selects what counts as one character in match ranges.
func WithGranularity(g charindex.Granularity) Option {
	return func(cfg *Config) {
		cfg.Granularity = g
	}
}

// WithLogger sets the logger for compile diagnostics.
func WithLogger(logger *log.Entry) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}
