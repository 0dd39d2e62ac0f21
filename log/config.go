package log

import (
	"errors"
	"io"
	"os"

	"github.com/lixenwraith/config"
)

// Config holds the logger settings in file form. The zero-value sink "none"
// keeps logging disabled, matching an unconfigured logger.
type Config struct {
	Ident string `toml:"ident"` // Prefix prepended to every record
	Level string `toml:"level"` // Level names joined by '|', or "disabled"
	Sink  string `toml:"sink"`  // "none", "file" or "syslog"
	File  string `toml:"file"`  // Path, "stdout" or "stderr"; used when sink = "file"
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Ident: defaultIdent,
	Level: "disabled",
	Sink:  "none",
	File:  "",
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// Clone returns a copy of the configuration
func (c *Config) Clone() *Config {
	copied := *c
	return &copied
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if _, err := ParseMask(c.Level); err != nil {
		return err
	}

	sink, err := ParseSink(c.Sink)
	if err != nil {
		return err
	}

	if sink == SinkSyslog && (c.Ident == "" || c.Ident == defaultIdent) {
		return fmtErrorf("syslog sink requires an ident")
	}

	return nil
}

// ApplyConfig translates a validated configuration into setter calls. When
// the file field names a path, the logger opens it in append mode and owns
// that one stream, closing it on the next sink change. Streams installed
// through SetSink directly are never closed by the logger.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	mask, _ := ParseMask(cfg.Level)
	sink, _ := ParseSink(cfg.Sink)

	l.mu.Lock()
	defer l.mu.Unlock()

	if cfg.Ident != "" {
		l.ident = cfg.Ident
	}

	var w io.Writer
	var owned io.Closer
	if sink == SinkFile {
		switch cfg.File {
		case "":
			// Valid but mute: the stream must be installed with SetSink.
		case "stdout":
			w = os.Stdout
		case "stderr":
			w = os.Stderr
		default:
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmtErrorf("failed to open log file '%s': %w", cfg.File, err)
			}
			w = f
			owned = f
		}
	}

	if err := l.setSink(sink, w); err != nil {
		if owned != nil {
			_ = owned.Close()
		}
		return err
	}
	l.owned = owned
	l.mask = mask

	return nil
}

// NewConfigFromFile loads configuration from a TOML file under the [log]
// table and returns a validated Config. A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	fields := []struct {
		key string
		dst *string
	}{
		{"log.ident", &cfg.Ident},
		{"log.level", &cfg.Level},
		{"log.sink", &cfg.Sink},
		{"log.file", &cfg.File},
	}
	for _, f := range fields {
		val, found := loader.Get(f.key)
		if !found {
			continue // Use default value
		}
		s, ok := val.(string)
		if !ok {
			return nil, fmtErrorf("config key %s must be a string, got %T", f.key, val)
		}
		*f.dst = s
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
